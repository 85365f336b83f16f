// Package recipe builds the declarative preprocessing specification handed
// to the downstream modeling phase. The spec is a value object: it names an
// ordered list of transform steps keyed by column-role predicates, and is
// fitted and applied elsewhere so the same transforms hit training and
// future data consistently.
package recipe

import (
	"fmt"

	"github.com/admitrisk/riskprep-go/pkg/table"
)

// Role classifies columns for transform selection.
type Role string

const (
	// RoleNumericPredictor covers predictor columns whose non-missing
	// values are all numeric.
	RoleNumericPredictor Role = "numeric_predictor"
	// RoleNominalPredictor covers every other predictor column.
	RoleNominalPredictor Role = "nominal_predictor"
	// RoleAllPredictors covers both predictor roles.
	RoleAllPredictors Role = "all_predictors"
)

// Op identifies a preprocessing operation.
type Op string

const (
	OpImputeMedian     Op = "impute_median"
	OpImputeMode       Op = "impute_mode"
	OpEncodeDummy      Op = "encode_dummy"
	OpNormalize        Op = "normalize"
	OpDropZeroVariance Op = "drop_zero_variance"
)

// Step is one named transform in the spec, bound to a column role rather
// than to literal column names so the spec survives small schema drift.
type Step struct {
	Name string
	Op   Op
	Role Role
}

// Spec is the terminal preprocessing artifact. Step order is fixed:
// imputation runs before encoding, encoding before normalization, and the
// zero-variance filter last, because each later step assumes the earlier
// ones have removed missingness or stabilized the column set.
type Spec struct {
	Steps []Step

	// Outcome and the predictor lists record the role binding observed at
	// build time; the role predicates in Steps are what a downstream
	// fitter applies to structurally similar tables.
	Outcome           string
	NumericPredictors []string
	NominalPredictors []string
}

// Build constructs the spec from the assembled table. The target column is
// excluded from both predictor roles. At least one predictor column is
// required; there are no other build-time error cases.
func Build(t table.Table, target string) (*Spec, error) {
	if !t.Has(target) {
		return nil, &table.SchemaError{Column: target, Reason: "target column is absent"}
	}

	var numeric, nominal []string
	for _, col := range t.Columns() {
		if col.Name == target {
			continue
		}
		if isNumeric(col) {
			numeric = append(numeric, col.Name)
		} else {
			nominal = append(nominal, col.Name)
		}
	}
	if len(numeric)+len(nominal) == 0 {
		return nil, fmt.Errorf("assembled table has no predictor columns")
	}

	return &Spec{
		Steps: []Step{
			{Name: "impute-numeric", Op: OpImputeMedian, Role: RoleNumericPredictor},
			{Name: "impute-nominal", Op: OpImputeMode, Role: RoleNominalPredictor},
			{Name: "encode-nominal", Op: OpEncodeDummy, Role: RoleNominalPredictor},
			{Name: "normalize-numeric", Op: OpNormalize, Role: RoleNumericPredictor},
			{Name: "drop-zero-variance", Op: OpDropZeroVariance, Role: RoleAllPredictors},
		},
		Outcome:           target,
		NumericPredictors: numeric,
		NominalPredictors: nominal,
	}, nil
}

// isNumeric reports whether every non-missing value in the column is
// numeric (int or real kind). An all-missing column is not numeric: with
// no observed values it can only be treated nominally.
func isNumeric(col table.Column) bool {
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
