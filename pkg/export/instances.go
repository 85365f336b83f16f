// Package export hands the finished dataset to downstream consumers: a
// golearn instance set for the modeling phase and a CSV rendering for
// everything else.
package export

import (
	"fmt"
	"math"

	"github.com/sjwhitworth/golearn/base"

	"github.com/admitrisk/riskprep-go/pkg/table"
)

// nominalMissingLevel is the explicit level used for missing nominal cells
// in the exported instance set; golearn has no first-class missing marker.
const nominalMissingLevel = "__missing__"

// ToInstances converts the assembled table into golearn DenseInstances
// with the target bound as the class attribute. Numeric columns become
// float attributes (missing cells as NaN, for the fitted imputation steps
// to fill); every other column becomes a categorical attribute with
// missing cells mapped to an explicit level.
func ToInstances(t table.Table, target string) (*base.DenseInstances, error) {
	targetCol, ok := t.Column(target)
	if !ok {
		return nil, &table.SchemaError{Column: target, Reason: "target column is absent"}
	}

	inst := base.NewDenseInstances()

	type boundColumn struct {
		col     table.Column
		attr    base.Attribute
		spec    base.AttributeSpec
		numeric bool
	}
	bound := make([]boundColumn, 0, t.NumCols())

	for _, col := range t.Columns() {
		if col.Name == target {
			continue
		}
		b := boundColumn{col: col, numeric: isNumericColumn(col)}
		if b.numeric {
			b.attr = base.NewFloatAttribute(col.Name)
		} else {
			cat := base.NewCategoricalAttribute()
			cat.SetName(col.Name)
			b.attr = cat
		}
		b.spec = inst.AddAttribute(b.attr)
		bound = append(bound, b)
	}

	classAttr := base.NewCategoricalAttribute()
	classAttr.SetName(target)
	classSpec := inst.AddAttribute(classAttr)
	// Register the level order up front so the negative class keeps the
	// first system value regardless of row order.
	for _, level := range targetCol.Levels {
		classAttr.GetSysValFromString(level)
	}
	if err := inst.AddClassAttribute(classAttr); err != nil {
		return nil, fmt.Errorf("failed to bind class attribute: %w", err)
	}

	rows := t.NumRows()
	if err := inst.Extend(rows); err != nil {
		return nil, fmt.Errorf("failed to size instance set: %w", err)
	}

	for i := 0; i < rows; i++ {
		for _, b := range bound {
			v := b.col.Values[i]
			if b.numeric {
				f, ok := v.AsFloat()
				if !ok {
					f = math.NaN()
				}
				inst.Set(b.spec, i, base.PackFloatToBytes(f))
				continue
			}
			s := v.String()
			if v.IsMissing() {
				s = nominalMissingLevel
			}
			inst.Set(b.spec, i, b.attr.GetSysValFromString(s))
		}
		label := targetCol.Values[i].String()
		inst.Set(classSpec, i, classAttr.GetSysValFromString(label))
	}

	return inst, nil
}

// isNumericColumn mirrors the recipe's role predicate: all non-missing
// values numeric, at least one observed, no fixed level set.
func isNumericColumn(col table.Column) bool {
	if col.IsCategorical() {
		return false
	}
	seen := false
	for _, v := range col.Values {
		switch v.Kind() {
		case table.KindMissing:
			continue
		case table.KindInt, table.KindReal:
			seen = true
		default:
			return false
		}
	}
	return seen
}
