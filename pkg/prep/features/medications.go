package features

import "github.com/admitrisk/riskprep-go/pkg/table"

// MedicationsConfig configures the medication sub-transform.
type MedicationsConfig struct {
	ActiveCountColumn     string  `yaml:"active_count_column"`
	PolypharmacyThreshold float64 `yaml:"polypharmacy_threshold"`
	StatinColumn          string  `yaml:"statin_column"`
	ACEARBColumn          string  `yaml:"ace_arb_column"`
}

// Medications derives the polypharmacy flag and named-medication presence
// flags.
type Medications struct {
	cfg MedicationsConfig
}

// NewMedications creates the medications sub-transform.
func NewMedications(cfg MedicationsConfig) *Medications {
	return &Medications{cfg: cfg}
}

// Name returns the stage name.
func (m *Medications) Name() string { return "features/medications" }

// Apply adds is_polypharmacy_flag (active medication count strictly above
// the threshold; a missing or unparseable count resolves to 0) and
// is_on_statin / is_on_ace_arb (1 whenever the named-medication cell is
// non-missing).
func (m *Medications) Apply(t table.Table) (table.Table, error) {
	if err := requireColumns(t, m.cfg.ActiveCountColumn, m.cfg.StatinColumn, m.cfg.ACEARBColumn); err != nil {
		return table.Table{}, err
	}

	count, _ := t.Column(m.cfg.ActiveCountColumn)
	poly := flagColumn("is_polypharmacy_flag", t.NumRows(), func(i int) bool {
		n, ok := count.Values[i].AsFloat()
		return ok && n > m.cfg.PolypharmacyThreshold
	})

	statin, _ := t.Column(m.cfg.StatinColumn)
	onStatin := flagColumn("is_on_statin", t.NumRows(), func(i int) bool {
		return !statin.Values[i].IsMissing()
	})

	aceARB, _ := t.Column(m.cfg.ACEARBColumn)
	onACEARB := flagColumn("is_on_ace_arb", t.NumRows(), func(i int) bool {
		return !aceARB.Values[i].IsMissing()
	})

	out, err := t.WithColumn(poly)
	if err != nil {
		return table.Table{}, err
	}
	if out, err = out.WithColumn(onStatin); err != nil {
		return table.Table{}, err
	}
	return out.WithColumn(onACEARB)
}
