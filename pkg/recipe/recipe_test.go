package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admitrisk/riskprep-go/pkg/table"
)

func assembled() table.Table {
	return table.MustNew(
		table.Column{Name: "bp_category", Values: []table.Value{table.Text("Normal"), table.Text("Elevated")}},
		table.Column{Name: "bmi", Values: []table.Value{table.Real(24), table.Missing()}},
		table.Column{Name: "is_on_statin", Values: []table.Value{table.Int(1), table.Int(0)}},
		table.Column{Name: "admitted", Values: []table.Value{table.Text("no"), table.Text("yes")}, Levels: []string{"no", "yes"}},
	)
}

// TestBuild_StepOrderIsFixed tests the invariant step sequence
func TestBuild_StepOrderIsFixed(t *testing.T) {
	spec, err := Build(assembled(), "admitted")
	require.NoError(t, err)

	var ops []Op
	for _, s := range spec.Steps {
		ops = append(ops, s.Op)
	}
	assert.Equal(t, []Op{OpImputeMedian, OpImputeMode, OpEncodeDummy, OpNormalize, OpDropZeroVariance}, ops)
}

// TestBuild_StepOrderIndependentOfColumnOrder tests that reordering input
// columns does not change the step sequence
func TestBuild_StepOrderIndependentOfColumnOrder(t *testing.T) {
	reordered := table.MustNew(
		table.Column{Name: "is_on_statin", Values: []table.Value{table.Int(1), table.Int(0)}},
		table.Column{Name: "admitted", Values: []table.Value{table.Text("no"), table.Text("yes")}, Levels: []string{"no", "yes"}},
		table.Column{Name: "bmi", Values: []table.Value{table.Real(24), table.Missing()}},
		table.Column{Name: "bp_category", Values: []table.Value{table.Text("Normal"), table.Text("Elevated")}},
	)

	a, err := Build(assembled(), "admitted")
	require.NoError(t, err)
	b, err := Build(reordered, "admitted")
	require.NoError(t, err)
	assert.Equal(t, a.Steps, b.Steps)
}

// TestBuild_RoleClassification tests numeric vs nominal predictor binding
// and target exclusion
func TestBuild_RoleClassification(t *testing.T) {
	spec, err := Build(assembled(), "admitted")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"bmi", "is_on_statin"}, spec.NumericPredictors)
	assert.ElementsMatch(t, []string{"bp_category"}, spec.NominalPredictors)
	assert.Equal(t, "admitted", spec.Outcome)
	assert.NotContains(t, spec.NumericPredictors, "admitted")
	assert.NotContains(t, spec.NominalPredictors, "admitted")
}

// TestBuild_MixedColumnIsNominal tests that a column with any textual
// value is bound to the nominal role
func TestBuild_MixedColumnIsNominal(t *testing.T) {
	tab := table.MustNew(
		table.Column{Name: "mixed", Values: []table.Value{table.Int(1), table.Text("two")}},
		table.Column{Name: "admitted", Values: []table.Value{table.Text("no"), table.Text("yes")}, Levels: []string{"no", "yes"}},
	)

	spec, err := Build(tab, "admitted")
	require.NoError(t, err)
	assert.Equal(t, []string{"mixed"}, spec.NominalPredictors)
	assert.Empty(t, spec.NumericPredictors)
}

// TestBuild_RequiresPredictors tests the only build-time error case
func TestBuild_RequiresPredictors(t *testing.T) {
	tab := table.MustNew(
		table.Column{Name: "admitted", Values: []table.Value{table.Text("no")}, Levels: []string{"no", "yes"}},
	)

	_, err := Build(tab, "admitted")
	assert.Error(t, err)
}

// TestBuild_AbsentTargetIsSchemaError tests target presence validation
func TestBuild_AbsentTargetIsSchemaError(t *testing.T) {
	tab := table.MustNew(table.Column{Name: "bmi", Values: []table.Value{table.Real(24)}})

	_, err := Build(tab, "admitted")
	require.Error(t, err)
	assert.True(t, table.IsSchemaError(err))
}
