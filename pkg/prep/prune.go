package prep

import "github.com/admitrisk/riskprep-go/pkg/table"

// ColumnPruner removes explicitly named columns deemed unusable, such as a
// field that lacks a valid computation base in this extract. Naming a
// column that does not exist is a SchemaError.
type ColumnPruner struct {
	columns []string
}

// NewColumnPruner creates a pruner for the given column names.
func NewColumnPruner(columns []string) *ColumnPruner {
	return &ColumnPruner{columns: columns}
}

// Name returns the stage name.
func (p *ColumnPruner) Name() string { return "prune" }

// Apply returns a new table without the configured columns.
func (p *ColumnPruner) Apply(t table.Table) (table.Table, error) {
	if len(p.columns) == 0 {
		return t, nil
	}
	return t.Drop(p.columns...)
}
