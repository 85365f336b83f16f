package table

import "fmt"

// Column is a named, ordered sequence of cell values. A non-nil Levels slice
// marks the column as an ordered categorical with that fixed level order.
type Column struct {
	Name   string
	Values []Value
	Levels []string
}

// IsCategorical reports whether the column carries a fixed level set.
func (c Column) IsCategorical() bool { return c.Levels != nil }

// clone returns a deep copy of the column.
func (c Column) clone() Column {
	out := Column{Name: c.Name}
	out.Values = make([]Value, len(c.Values))
	copy(out.Values, c.Values)
	if c.Levels != nil {
		out.Levels = make([]string, len(c.Levels))
		copy(out.Levels, c.Levels)
	}
	return out
}

// Table is an ordered set of equal-length named columns. Tables are treated
// as immutable values: every transformation constructs a new Table, so each
// pipeline stage stays auditable on its own.
type Table struct {
	cols  []Column
	index map[string]int
}

// New creates a table from the given columns. All columns must share the
// same length and names must be unique.
func New(cols ...Column) (Table, error) {
	t := Table{index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if len(cols) > 0 && len(c.Values) != len(cols[0].Values) {
			return Table{}, fmt.Errorf("column %q has %d rows, want %d", c.Name, len(c.Values), len(cols[0].Values))
		}
		if _, dup := t.index[c.Name]; dup {
			return Table{}, fmt.Errorf("duplicate column name %q", c.Name)
		}
		t.index[c.Name] = len(t.cols)
		t.cols = append(t.cols, c.clone())
	}
	return t, nil
}

// MustNew is New for test fixtures and literals; it panics on invalid input.
func MustNew(cols ...Column) Table {
	t, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// NumRows returns the row count (zero for an empty table).
func (t Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Values)
}

// NumCols returns the column count.
func (t Table) NumCols() int { return len(t.cols) }

// Names returns the column names in order.
func (t Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Has reports whether a column exists.
func (t Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column.
func (t Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// Columns returns all columns in order.
func (t Table) Columns() []Column {
	out := make([]Column, len(t.cols))
	copy(out, t.cols)
	return out
}

// WithColumn returns a new table with the column appended, or replaced in
// place when a column of the same name already exists.
func (t Table) WithColumn(c Column) (Table, error) {
	if t.NumCols() > 0 && len(c.Values) != t.NumRows() {
		return Table{}, fmt.Errorf("column %q has %d rows, want %d", c.Name, len(c.Values), t.NumRows())
	}
	out := t.shallowClone()
	if i, ok := out.index[c.Name]; ok {
		out.cols[i] = c.clone()
		return out, nil
	}
	out.index[c.Name] = len(out.cols)
	out.cols = append(out.cols, c.clone())
	return out, nil
}

// Drop returns a new table without the named columns. A name that does not
// exist is a SchemaError: pruning a column assumed to exist is a programmer
// error and must be loud.
func (t Table) Drop(names ...string) (Table, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if !t.Has(n) {
			return Table{}, &SchemaError{Column: n, Reason: "cannot drop: column does not exist"}
		}
		drop[n] = true
	}
	var kept []Column
	for _, c := range t.cols {
		if !drop[c.Name] {
			kept = append(kept, c)
		}
	}
	return New(kept...)
}

// Select returns a new table containing only the named columns, in the given
// order. Absent names are a SchemaError.
func (t Table) Select(names ...string) (Table, error) {
	var kept []Column
	for _, n := range names {
		c, ok := t.Column(n)
		if !ok {
			return Table{}, &SchemaError{Column: n, Reason: "cannot select: column does not exist"}
		}
		kept = append(kept, c)
	}
	return New(kept...)
}

func (t Table) shallowClone() Table {
	out := Table{
		cols:  make([]Column, len(t.cols)),
		index: make(map[string]int, len(t.index)),
	}
	copy(out.cols, t.cols)
	for k, v := range t.index {
		out.index[k] = v
	}
	return out
}
