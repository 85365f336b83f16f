package features

import (
	"github.com/admitrisk/riskprep-go/pkg/prep"
	"github.com/admitrisk/riskprep-go/pkg/table"
)

// LumpSpec names a categorical column and the catch-all label its rare
// levels collapse into.
type LumpSpec struct {
	Column     string `yaml:"column"`
	OtherLabel string `yaml:"other_label"`
}

// DemographicsConfig configures the demographic sub-transform.
type DemographicsConfig struct {
	EHRSexColumn     string     `yaml:"ehr_sex_column"`
	SexAtBirthColumn string     `yaml:"sex_at_birth_column"`
	PostalCodeColumn string     `yaml:"postal_code_column"`
	LumpThreshold    float64    `yaml:"lump_threshold"`
	Lump             []LumpSpec `yaml:"lump"`
}

// Demographics derives demographic features: the sex/gender incongruence
// flag, rare-level lumping on race and ethnicity, and the 3-digit postal
// code prefix.
type Demographics struct {
	cfg DemographicsConfig
}

// NewDemographics creates the demographics sub-transform.
func NewDemographics(cfg DemographicsConfig) *Demographics {
	return &Demographics{cfg: cfg}
}

// Name returns the stage name.
func (d *Demographics) Name() string { return "features/demographics" }

// Apply adds gender_incongruence_flag and zip_3_digit and lumps the
// configured categorical columns in the returned table.
func (d *Demographics) Apply(t table.Table) (table.Table, error) {
	required := []string{d.cfg.EHRSexColumn, d.cfg.SexAtBirthColumn, d.cfg.PostalCodeColumn}
	for _, l := range d.cfg.Lump {
		required = append(required, l.Column)
	}
	if err := requireColumns(t, required...); err != nil {
		return table.Table{}, err
	}

	ehrSex, _ := t.Column(d.cfg.EHRSexColumn)
	atBirth, _ := t.Column(d.cfg.SexAtBirthColumn)

	// Missing on either side resolves to 0: absence of evidence is treated
	// as "no incongruence detected", not propagated as missing.
	incongruence := flagColumn("gender_incongruence_flag", t.NumRows(), func(i int) bool {
		a := ehrSex.Values[i]
		b := atBirth.Values[i]
		if a.IsMissing() || b.IsMissing() {
			return false
		}
		return a.String() != b.String()
	})

	out, err := t.WithColumn(incongruence)
	if err != nil {
		return table.Table{}, err
	}

	for _, l := range d.cfg.Lump {
		col, _ := out.Column(l.Column)
		out, err = out.WithColumn(prep.LumpRareLevels(col, d.cfg.LumpThreshold, l.OtherLabel))
		if err != nil {
			return table.Table{}, err
		}
	}

	zip, _ := out.Column(d.cfg.PostalCodeColumn)
	zip3 := table.Column{Name: "zip_3_digit", Values: make([]table.Value, t.NumRows())}
	for i, v := range zip.Values {
		if v.IsMissing() {
			zip3.Values[i] = table.Missing()
			continue
		}
		r := []rune(v.String())
		if len(r) > 3 {
			r = r[:3]
		}
		zip3.Values[i] = table.Text(string(r))
	}
	return out.WithColumn(zip3)
}
