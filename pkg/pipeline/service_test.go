package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admitrisk/riskprep-go/pkg/config"
	"github.com/admitrisk/riskprep-go/pkg/recipe"
	"github.com/admitrisk/riskprep-go/pkg/table"
)

const rawExtract = `Patient ID,EHR Sex,Sex At Birth,Race,Ethnicity,Zip Code,SDOH Triggers,Household Income,Household Size,Blood Pressure,BMI,BMI Percentile,A1C,Active Med Count,Statin Med,ACE ARB Med,Admitted
P001,M,F,White,Hispanic,02139,no stable Housing and Food concerns,42000,4,118/76,24.5,55,5.5,6,atorvastatin,,no
P002,F,F,White,Non-Hispanic,60601,unknown,55000,0,135/78,31.2,60,7.1,3,,lisinopril,yes
P003,M,M,White,Non-Hispanic,946,,,2,145/95,17,40,5.2,,,,no
`

func runDefault(t *testing.T) *Result {
	t.Helper()
	svc := NewService(config.Default())
	loaderTable := loadRaw(t)
	res, err := svc.Run(loaderTable)
	require.NoError(t, err)
	return res
}

func loadRaw(t *testing.T) table.Table {
	t.Helper()
	svc := NewService(config.Default())
	tab, err := svc.loader.Load(strings.NewReader(rawExtract))
	require.NoError(t, err)
	return tab
}

// TestRun_EndToEnd tests the full default pipeline over a small extract
func TestRun_EndToEnd(t *testing.T) {
	res := runDefault(t)

	assert.NotEmpty(t, res.RunID)
	require.Len(t, res.Stages, 7)
	assert.Equal(t, 3, res.Table.NumRows())

	// Final column set: explicit list, sdoh_ prefix family, target last.
	names := res.Table.Names()
	assert.Contains(t, names, "gender_incongruence_flag")
	assert.Contains(t, names, "sdoh_housing_insecurity")
	assert.Contains(t, names, "bp_category")
	assert.Equal(t, "admitted", names[len(names)-1])
	assert.NotContains(t, names, "patient_id")
	assert.NotContains(t, names, "bmi_percentile")
	assert.NotContains(t, names, "blood_pressure")
	assert.NotContains(t, names, "sdoh_triggers", "raw free-text source is excluded from the prefix family")
}

// TestRun_DerivedValues spot-checks derived cells across domains
func TestRun_DerivedValues(t *testing.T) {
	res := runDefault(t)

	bp, _ := res.Table.Column("bp_category")
	wantBP := []string{"Normal", "Elevated", "Hypertension Stage 2"}
	for i, want := range wantBP {
		got, _ := bp.Values[i].AsText()
		assert.Equal(t, want, got, "row %d", i)
	}

	incongruence, _ := res.Table.Column("gender_incongruence_flag")
	v, _ := incongruence.Values[0].AsInt()
	assert.Equal(t, int64(1), v)
	v, _ = incongruence.Values[1].AsInt()
	assert.Equal(t, int64(0), v)

	housing, _ := res.Table.Column("sdoh_housing_insecurity")
	v, _ = housing.Values[0].AsInt()
	assert.Equal(t, int64(1), v)
	v, _ = housing.Values[1].AsInt()
	assert.Equal(t, int64(0), v, "sentinel triggers text must resolve to 0")

	perCapita, _ := res.Table.Column("income_per_capita")
	f, ok := perCapita.Values[0].AsFloat()
	require.True(t, ok)
	assert.Equal(t, 10500.0, f)
	assert.True(t, perCapita.Values[1].IsMissing(), "household size 0 guards the division")
	assert.True(t, perCapita.Values[2].IsMissing())

	zip3, _ := res.Table.Column("zip_3_digit")
	s, _ := zip3.Values[0].AsText()
	assert.Equal(t, "021", s, "leading zero must survive load and prefixing")
	s, _ = zip3.Values[2].AsText()
	assert.Equal(t, "946", s)

	poly, _ := res.Table.Column("is_polypharmacy_flag")
	v, _ = poly.Values[0].AsInt()
	assert.Equal(t, int64(1), v)
	v, _ = poly.Values[2].AsInt()
	assert.Equal(t, int64(0), v, "missing med count resolves to 0")
}

// TestRun_SpecStepOrder tests that the terminal artifact carries the fixed
// transform sequence
func TestRun_SpecStepOrder(t *testing.T) {
	res := runDefault(t)

	require.NotNil(t, res.Spec)
	var ops []recipe.Op
	for _, step := range res.Spec.Steps {
		ops = append(ops, step.Op)
	}
	assert.Equal(t, []recipe.Op{
		recipe.OpImputeMedian,
		recipe.OpImputeMode,
		recipe.OpEncodeDummy,
		recipe.OpNormalize,
		recipe.OpDropZeroVariance,
	}, ops)
	assert.Equal(t, "admitted", res.Spec.Outcome)
}

// TestRun_BadTargetLabelAborts tests that a schema error in assembly
// aborts the whole run
func TestRun_BadTargetLabelAborts(t *testing.T) {
	bad := strings.Replace(rawExtract, ",no\n", ",maybe\n", 1)
	svc := NewService(config.Default())
	tab, err := svc.loader.Load(strings.NewReader(bad))
	require.NoError(t, err)

	_, err = svc.Run(tab)
	require.Error(t, err)
	assert.True(t, table.IsSchemaError(err))
}

// TestRunFile tests the file entry point
func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extract.csv")
	require.NoError(t, os.WriteFile(path, []byte(rawExtract), 0o644))

	svc := NewService(config.Default())
	res, err := svc.RunFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Table.NumRows())
}
