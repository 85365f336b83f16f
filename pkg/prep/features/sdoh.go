package features

import (
	"strings"

	"github.com/admitrisk/riskprep-go/pkg/table"
)

// KeywordFlag maps a derived flag column to the keywords that trigger it in
// the free-text SDOH triggers column.
type KeywordFlag struct {
	Column   string   `yaml:"column"`
	Keywords []string `yaml:"keywords"`
}

// SDOHConfig configures the social-determinants-of-health sub-transform.
type SDOHConfig struct {
	TriggersColumn      string        `yaml:"triggers_column"`
	IncomeColumn        string        `yaml:"income_column"`
	HouseholdSizeColumn string        `yaml:"household_size_column"`
	Flags               []KeywordFlag `yaml:"flags"`
}

// SDOH derives binary social-determinant flags from case-insensitive
// keyword matching against a free-text triggers column, plus per-capita
// household income.
type SDOH struct {
	cfg SDOHConfig
}

// NewSDOH creates the SDOH sub-transform.
func NewSDOH(cfg SDOHConfig) *SDOH {
	return &SDOH{cfg: cfg}
}

// Name returns the stage name.
func (s *SDOH) Name() string { return "features/sdoh" }

// Apply adds one 0/1 column per configured keyword flag and
// income_per_capita. A missing triggers cell resolves every flag to 0.
// income_per_capita is missing when the household size is missing, zero or
// negative (division guard), or when either operand fails to parse.
func (s *SDOH) Apply(t table.Table) (table.Table, error) {
	if err := requireColumns(t, s.cfg.TriggersColumn, s.cfg.IncomeColumn, s.cfg.HouseholdSizeColumn); err != nil {
		return table.Table{}, err
	}

	triggers, _ := t.Column(s.cfg.TriggersColumn)
	lowered := make([]string, t.NumRows())
	for i, v := range triggers.Values {
		if txt, ok := v.AsText(); ok {
			lowered[i] = strings.ToLower(txt)
		}
	}

	out := t
	var err error
	for _, flag := range s.cfg.Flags {
		flag := flag
		col := flagColumn(flag.Column, t.NumRows(), func(i int) bool {
			if triggers.Values[i].IsMissing() || lowered[i] == "" {
				return false
			}
			for _, kw := range flag.Keywords {
				if strings.Contains(lowered[i], strings.ToLower(kw)) {
					return true
				}
			}
			return false
		})
		out, err = out.WithColumn(col)
		if err != nil {
			return table.Table{}, err
		}
	}

	income, _ := t.Column(s.cfg.IncomeColumn)
	size, _ := t.Column(s.cfg.HouseholdSizeColumn)
	perCapita := table.Column{Name: "income_per_capita", Values: make([]table.Value, t.NumRows())}
	for i := 0; i < t.NumRows(); i++ {
		inc, okInc := income.Values[i].AsFloat()
		n, okN := size.Values[i].AsFloat()
		if !okInc || !okN || n <= 0 {
			perCapita.Values[i] = table.Missing()
			continue
		}
		perCapita.Values[i] = table.Real(inc / n)
	}
	return out.WithColumn(perCapita)
}
