// Package assemble projects the fully engineered table onto the final
// modeling column set and fixes the target's categorical encoding.
package assemble

import (
	"strconv"
	"strings"

	"github.com/admitrisk/riskprep-go/pkg/table"
)

// Config configures the dataset assembler.
type Config struct {
	// Columns is the explicit output column list, in order. The target
	// column is appended separately and must not be listed here.
	Columns []string `yaml:"columns"`
	// Prefixes pulls in every column whose name starts with one of these
	// prefixes (the SDOH flag family), after the explicit list.
	Prefixes []string `yaml:"prefixes"`
	// Exclude names columns the prefix rule must skip, such as the raw
	// free-text column the flag family was derived from.
	Exclude []string `yaml:"exclude"`
	// TargetColumn is the classification target.
	TargetColumn string `yaml:"target_column"`
	// NegativeLabel and PositiveLabel are the only recognized target
	// values, and fix the categorical level order (negative class first).
	NegativeLabel string `yaml:"negative_label"`
	PositiveLabel string `yaml:"positive_label"`
}

// Assembler selects the final column set and recodes the target into an
// ordered two-level categorical. Any target value outside the two
// recognized labels is a SchemaError: it signals an incompatible extract,
// not a row-level quality issue.
type Assembler struct {
	cfg Config
}

// New creates an assembler.
func New(cfg Config) *Assembler {
	return &Assembler{cfg: cfg}
}

// Name returns the stage name.
func (a *Assembler) Name() string { return "assemble" }

// Apply returns the projected table with the recoded target as its last
// column.
func (a *Assembler) Apply(t table.Table) (table.Table, error) {
	selected := make([]string, 0, len(a.cfg.Columns)+4)
	chosen := make(map[string]bool)
	for _, name := range a.cfg.Columns {
		selected = append(selected, name)
		chosen[name] = true
	}
	excluded := make(map[string]bool, len(a.cfg.Exclude))
	for _, name := range a.cfg.Exclude {
		excluded[name] = true
	}
	for _, name := range t.Names() {
		if chosen[name] || excluded[name] || name == a.cfg.TargetColumn {
			continue
		}
		for _, p := range a.cfg.Prefixes {
			if strings.HasPrefix(name, p) {
				selected = append(selected, name)
				chosen[name] = true
				break
			}
		}
	}
	selected = append(selected, a.cfg.TargetColumn)

	out, err := t.Select(selected...)
	if err != nil {
		return table.Table{}, err
	}

	target, _ := out.Column(a.cfg.TargetColumn)
	recoded := table.Column{
		Name:   target.Name,
		Values: make([]table.Value, len(target.Values)),
		Levels: []string{a.cfg.NegativeLabel, a.cfg.PositiveLabel},
	}
	for i, v := range target.Values {
		label := v.String()
		if label != a.cfg.NegativeLabel && label != a.cfg.PositiveLabel {
			return table.Table{}, &table.SchemaError{
				Column: target.Name,
				Reason: "target value " + strconv.Quote(label) + " is not a recognized class label",
			}
		}
		recoded.Values[i] = table.Text(label)
	}
	return out.WithColumn(recoded)
}
