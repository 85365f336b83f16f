// Package config holds the pipeline configuration surface: sentinel
// strings, clinical range bounds, keyword sets, thresholds and the final
// output column list. Everything the core treats as tunable lives here so
// the pipeline can be reused across similar extracts.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/admitrisk/riskprep-go/pkg/assemble"
	"github.com/admitrisk/riskprep-go/pkg/prep/features"
)

// Config is the full pipeline configuration.
type Config struct {
	// Sentinels are case-sensitive literal strings rewritten to the
	// missing marker during normalization.
	Sentinels []string `yaml:"sentinels"`

	// PruneColumns are dropped before feature derivation.
	PruneColumns []string `yaml:"prune_columns"`

	Demographics features.DemographicsConfig `yaml:"demographics"`
	SDOH         features.SDOHConfig         `yaml:"sdoh"`
	Vitals       features.VitalsConfig       `yaml:"vitals"`
	Medications  features.MedicationsConfig  `yaml:"medications"`

	Assemble assemble.Config `yaml:"assemble"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the pipeline logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// Default returns the configuration for the reference admission-risk
// extract. A config file only needs to override what differs.
func Default() *Config {
	return &Config{
		Sentinels: []string{"", "unknown", "refused", "not reported"},

		// The percentile field has no reference population in this
		// extract, so it has no valid computation base.
		PruneColumns: []string{"bmi_percentile"},

		Demographics: features.DemographicsConfig{
			EHRSexColumn:     "ehr_sex",
			SexAtBirthColumn: "sex_at_birth",
			PostalCodeColumn: "zip_code",
			LumpThreshold:    0.01,
			Lump: []features.LumpSpec{
				{Column: "race", OtherLabel: "other_race"},
				{Column: "ethnicity", OtherLabel: "other_ethnicity"},
			},
		},

		SDOH: features.SDOHConfig{
			TriggersColumn:      "sdoh_triggers",
			IncomeColumn:        "household_income",
			HouseholdSizeColumn: "household_size",
			Flags: []features.KeywordFlag{
				{Column: "sdoh_financial_strain", Keywords: []string{"fpl", "insurance", "financial"}},
				{Column: "sdoh_food_insecurity", Keywords: []string{"food", "nutrition"}},
				{Column: "sdoh_housing_insecurity", Keywords: []string{"housing"}},
				{Column: "sdoh_transportation_issue", Keywords: []string{"transportation"}},
			},
		},

		Vitals: features.VitalsConfig{
			BloodPressureColumn: "blood_pressure",
			Separator:           "/",
			BMIColumn:           "bmi",
			A1CColumn:           "a1c",
			SystolicRange:       features.Range{Min: 70, Max: 250},
			DiastolicRange:      features.Range{Min: 40, Max: 150},
			BMIRange:            features.Range{Min: 15, Max: 60},
			A1CRange:            features.Range{Min: 3.5, Max: 20},
		},

		Medications: features.MedicationsConfig{
			ActiveCountColumn:     "active_med_count",
			PolypharmacyThreshold: 5,
			StatinColumn:          "statin_med",
			ACEARBColumn:          "ace_arb_med",
		},

		Assemble: assemble.Config{
			Columns: []string{
				"gender_incongruence_flag",
				"race",
				"ethnicity",
				"zip_3_digit",
				"income_per_capita",
				"systolic",
				"diastolic",
				"bp_category",
				"pulse_pressure",
				"bmi",
				"bmi_category",
				"a1c",
				"is_polypharmacy_flag",
				"is_on_statin",
				"is_on_ace_arb",
			},
			Prefixes:      []string{"sdoh_"},
			Exclude:       []string{"sdoh_triggers"},
			TargetColumn:  "admitted",
			NegativeLabel: "no",
			PositiveLabel: "yes",
		},

		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
