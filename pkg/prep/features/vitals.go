package features

import (
	"strings"

	"github.com/admitrisk/riskprep-go/pkg/table"
)

// Range is an inclusive physiologically plausible interval for a vital.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v lies within the inclusive bounds.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// VitalsConfig configures the vital-signs sub-transform.
type VitalsConfig struct {
	BloodPressureColumn string `yaml:"blood_pressure_column"`
	Separator           string `yaml:"separator"`
	BMIColumn           string `yaml:"bmi_column"`
	A1CColumn           string `yaml:"a1c_column"`
	SystolicRange       Range  `yaml:"systolic_range"`
	DiastolicRange      Range  `yaml:"diastolic_range"`
	BMIRange            Range  `yaml:"bmi_range"`
	A1CRange            Range  `yaml:"a1c_range"`
}

// Vitals splits the combined blood-pressure column, gates every vital
// against its plausible range (out-of-range becomes missing, the row is
// kept), and derives the blood-pressure and BMI categories plus pulse
// pressure.
type Vitals struct {
	cfg VitalsConfig
}

// NewVitals creates the vitals sub-transform.
func NewVitals(cfg VitalsConfig) *Vitals {
	return &Vitals{cfg: cfg}
}

// Name returns the stage name.
func (v *Vitals) Name() string { return "features/vitals" }

// bpRule is one ordered (predicate, label) entry of the blood-pressure
// decision table. Evaluation is strictly first-match-wins; the stage 1 and
// stage 2 predicates overlap under their OR logic and the ordering is what
// resolves them, a quirk carried over from the source rule set on purpose.
type bpRule struct {
	label string
	match func(sys, dia float64) bool
}

var bpRules = []bpRule{
	{"Normal", func(s, d float64) bool { return s < 120 && d < 80 }},
	{"Elevated", func(s, d float64) bool { return s < 130 || d < 80 }},
	{"Hypertension Stage 1", func(s, d float64) bool { return s < 140 || d < 90 }},
	{"Hypertension Stage 2", func(s, d float64) bool { return s >= 140 || d >= 90 }},
}

// bmiRule bins are likewise ordered, first match wins.
type bmiRule struct {
	label string
	below float64
}

var bmiRules = []bmiRule{
	{"Underweight", 18.5},
	{"Normal", 25},
	{"Overweight", 30},
}

const categoryOtherNA = "Other/NA"

// Apply adds systolic, diastolic, bp_category, bmi_category and
// pulse_pressure, and range-gates the BMI and A1C columns in the returned
// table. The combined blood-pressure column is retained for provenance.
func (v *Vitals) Apply(t table.Table) (table.Table, error) {
	if err := requireColumns(t, v.cfg.BloodPressureColumn, v.cfg.BMIColumn, v.cfg.A1CColumn); err != nil {
		return table.Table{}, err
	}

	sep := v.cfg.Separator
	if sep == "" {
		sep = "/"
	}

	combined, _ := t.Column(v.cfg.BloodPressureColumn)
	rows := t.NumRows()
	systolic := table.Column{Name: "systolic", Values: make([]table.Value, rows)}
	diastolic := table.Column{Name: "diastolic", Values: make([]table.Value, rows)}
	for i, cell := range combined.Values {
		systolic.Values[i] = table.Missing()
		diastolic.Values[i] = table.Missing()
		txt, ok := cell.AsText()
		if !ok {
			continue
		}
		parts := strings.SplitN(txt, sep, 2)
		if len(parts) != 2 {
			continue
		}
		systolic.Values[i] = gatedReal(strings.TrimSpace(parts[0]), v.cfg.SystolicRange)
		diastolic.Values[i] = gatedReal(strings.TrimSpace(parts[1]), v.cfg.DiastolicRange)
	}

	out, err := t.WithColumn(systolic)
	if err != nil {
		return table.Table{}, err
	}
	if out, err = out.WithColumn(diastolic); err != nil {
		return table.Table{}, err
	}

	bmiCol, _ := t.Column(v.cfg.BMIColumn)
	if out, err = out.WithColumn(gateColumn(bmiCol, v.cfg.BMIRange)); err != nil {
		return table.Table{}, err
	}
	a1cCol, _ := t.Column(v.cfg.A1CColumn)
	if out, err = out.WithColumn(gateColumn(a1cCol, v.cfg.A1CRange)); err != nil {
		return table.Table{}, err
	}

	gatedBMI, _ := out.Column(v.cfg.BMIColumn)

	bpCategory := table.Column{Name: "bp_category", Values: make([]table.Value, rows)}
	bmiCategory := table.Column{Name: "bmi_category", Values: make([]table.Value, rows)}
	pulse := table.Column{Name: "pulse_pressure", Values: make([]table.Value, rows)}
	for i := 0; i < rows; i++ {
		bpCategory.Values[i] = table.Text(classifyBP(systolic.Values[i], diastolic.Values[i]))
		bmiCategory.Values[i] = table.Text(classifyBMI(gatedBMI.Values[i]))

		s, okS := systolic.Values[i].AsFloat()
		d, okD := diastolic.Values[i].AsFloat()
		if okS && okD {
			pulse.Values[i] = table.Real(s - d)
		} else {
			pulse.Values[i] = table.Missing()
		}
	}

	if out, err = out.WithColumn(bpCategory); err != nil {
		return table.Table{}, err
	}
	if out, err = out.WithColumn(bmiCategory); err != nil {
		return table.Table{}, err
	}
	return out.WithColumn(pulse)
}

// gatedReal parses a numeric fragment and applies the range gate.
// Malformed text coerces to missing rather than failing the row.
func gatedReal(raw string, r Range) table.Value {
	v := table.Text(raw)
	f, ok := v.AsFloat()
	if !ok || !r.Contains(f) {
		return table.Missing()
	}
	return table.Real(f)
}

// gateColumn replaces out-of-range or unparseable values with missing.
func gateColumn(col table.Column, r Range) table.Column {
	out := table.Column{Name: col.Name, Values: make([]table.Value, len(col.Values))}
	for i, v := range col.Values {
		f, ok := v.AsFloat()
		if !ok || !r.Contains(f) {
			out.Values[i] = table.Missing()
			continue
		}
		out.Values[i] = v
	}
	return out
}

func classifyBP(sys, dia table.Value) string {
	s, okS := sys.AsFloat()
	d, okD := dia.AsFloat()
	if !okS || !okD {
		return categoryOtherNA
	}
	for _, rule := range bpRules {
		if rule.match(s, d) {
			return rule.label
		}
	}
	return categoryOtherNA
}

func classifyBMI(bmi table.Value) string {
	f, ok := bmi.AsFloat()
	if !ok {
		return categoryOtherNA
	}
	for _, rule := range bmiRules {
		if f < rule.below {
			return rule.label
		}
	}
	return "Obese"
}
