package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_RowCountInvariant tests that uneven columns are rejected
func TestNew_RowCountInvariant(t *testing.T) {
	_, err := New(
		Column{Name: "a", Values: []Value{Int(1), Int(2)}},
		Column{Name: "b", Values: []Value{Text("x")}},
	)
	require.Error(t, err)
}

// TestNew_DuplicateNames tests that duplicate column names are rejected
func TestNew_DuplicateNames(t *testing.T) {
	_, err := New(
		Column{Name: "a", Values: []Value{Int(1)}},
		Column{Name: "a", Values: []Value{Int(2)}},
	)
	require.Error(t, err)
}

// TestWithColumn_Immutable tests that WithColumn leaves the receiver untouched
func TestWithColumn_Immutable(t *testing.T) {
	base := MustNew(Column{Name: "a", Values: []Value{Int(1), Int(2)}})

	out, err := base.WithColumn(Column{Name: "b", Values: []Value{Text("x"), Text("y")}})
	require.NoError(t, err)

	assert.Equal(t, 1, base.NumCols())
	assert.Equal(t, 2, out.NumCols())
	assert.False(t, base.Has("b"))
	assert.True(t, out.Has("b"))
}

// TestWithColumn_Replace tests in-place replacement by name
func TestWithColumn_Replace(t *testing.T) {
	base := MustNew(Column{Name: "a", Values: []Value{Int(1), Int(2)}})

	out, err := base.WithColumn(Column{Name: "a", Values: []Value{Int(3), Int(4)}})
	require.NoError(t, err)

	col, ok := out.Column("a")
	require.True(t, ok)
	v, _ := col.Values[0].AsInt()
	assert.Equal(t, int64(3), v)
	assert.Equal(t, 1, out.NumCols())
}

// TestDrop_MissingColumnIsSchemaError tests the pruning contract
func TestDrop_MissingColumnIsSchemaError(t *testing.T) {
	base := MustNew(Column{Name: "a", Values: []Value{Int(1)}})

	_, err := base.Drop("nope")
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))
}

// TestDrop_RemovesColumn tests a successful drop
func TestDrop_RemovesColumn(t *testing.T) {
	base := MustNew(
		Column{Name: "a", Values: []Value{Int(1)}},
		Column{Name: "b", Values: []Value{Int(2)}},
	)

	out, err := base.Drop("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, out.Names())
	assert.True(t, base.Has("a"))
}

// TestSelect_OrderAndSchemaError tests projection ordering and failure
func TestSelect_OrderAndSchemaError(t *testing.T) {
	base := MustNew(
		Column{Name: "a", Values: []Value{Int(1)}},
		Column{Name: "b", Values: []Value{Int(2)}},
		Column{Name: "c", Values: []Value{Int(3)}},
	)

	out, err := base.Select("c", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, out.Names())

	_, err = base.Select("z")
	assert.True(t, IsSchemaError(err))
}

// TestValue_MissingDistinctFromSentinelText tests that the missing marker
// never compares equal to literal text
func TestValue_MissingDistinctFromSentinelText(t *testing.T) {
	assert.False(t, Missing().Equal(Text("unknown")))
	assert.False(t, Missing().Equal(Text("")))
	assert.True(t, Missing().IsMissing())
	assert.False(t, Text("unknown").IsMissing())
}

// TestValue_AsFloat tests numeric coercion across kinds
func TestValue_AsFloat(t *testing.T) {
	f, ok := Int(7).AsFloat()
	require.True(t, ok)
	assert.Equal(t, 7.0, f)

	f, ok = Text("3.5").AsFloat()
	require.True(t, ok)
	assert.Equal(t, 3.5, f)

	_, ok = Text("high").AsFloat()
	assert.False(t, ok)

	_, ok = Missing().AsFloat()
	assert.False(t, ok)
}
