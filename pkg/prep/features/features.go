// Package features implements the per-domain feature derivation
// sub-transforms of the admission-risk preparation pipeline. Every
// sub-transform is a pure Table -> Table function that adds derived
// columns; none removes or reorders rows, so each is independently
// testable on a minimal table carrying only its input columns.
package features

import "github.com/admitrisk/riskprep-go/pkg/table"

func requireColumns(t table.Table, names ...string) error {
	for _, n := range names {
		if !t.Has(n) {
			return &table.SchemaError{Column: n, Reason: "required input column is absent"}
		}
	}
	return nil
}

// flagColumn builds a 0/1 integer column of the given length from a
// per-row predicate.
func flagColumn(name string, rows int, pred func(row int) bool) table.Column {
	col := table.Column{Name: name, Values: make([]table.Value, rows)}
	for i := 0; i < rows; i++ {
		if pred(i) {
			col.Values[i] = table.Int(1)
		} else {
			col.Values[i] = table.Int(0)
		}
	}
	return col
}
