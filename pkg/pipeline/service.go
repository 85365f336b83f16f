// Package pipeline wires the preparation stages into one ordered,
// single-pass batch run over an in-memory table.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/admitrisk/riskprep-go/pkg/assemble"
	"github.com/admitrisk/riskprep-go/pkg/config"
	"github.com/admitrisk/riskprep-go/pkg/ingest"
	"github.com/admitrisk/riskprep-go/pkg/prep"
	"github.com/admitrisk/riskprep-go/pkg/prep/features"
	"github.com/admitrisk/riskprep-go/pkg/recipe"
	"github.com/admitrisk/riskprep-go/pkg/table"
	"github.com/admitrisk/riskprep-go/utils"
)

// Stage is one pure table transformation in the run.
type Stage interface {
	Name() string
	Apply(table.Table) (table.Table, error)
}

// StageStat records what a stage did, for the run report.
type StageStat struct {
	Name     string
	Rows     int
	Cols     int
	Duration time.Duration
}

// Result is the output of a completed run: the analysis-ready table, the
// preprocessing spec for the modeling phase, and run metadata.
type Result struct {
	RunID  string
	Table  table.Table
	Spec   *recipe.Spec
	Stages []StageStat
}

// Service executes the preparation pipeline for one dataset version.
type Service struct {
	cfg    *config.Config
	loader *ingest.Loader
	logger *utils.Logger
}

// NewService creates a pipeline service for the given configuration.
func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg:    cfg,
		loader: ingest.NewLoader(),
		logger: utils.GetLogger(),
	}
}

// Stages returns the transformation sequence in execution order. The four
// feature sub-transforms share no outputs, so their relative order is
// irrelevant, but all of them run after normalization and pruning.
func (s *Service) Stages() []Stage {
	return []Stage{
		prep.NewNormalizer(s.cfg.Sentinels),
		prep.NewColumnPruner(s.cfg.PruneColumns),
		features.NewDemographics(s.cfg.Demographics),
		features.NewSDOH(s.cfg.SDOH),
		features.NewVitals(s.cfg.Vitals),
		features.NewMedications(s.cfg.Medications),
		assemble.New(s.cfg.Assemble),
	}
}

// RunFile loads the raw extract at path and runs the pipeline over it.
func (s *Service) RunFile(path string) (*Result, error) {
	raw, err := s.loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	s.logger.Info("loaded raw extract",
		utils.Stage("load"),
		utils.String("path", path),
		utils.Int("rows", raw.NumRows()),
		utils.Int("cols", raw.NumCols()))
	return s.Run(raw)
}

// Run executes every stage over the raw table and builds the preprocessing
// spec from the assembled result. A stage error aborts the whole run; there
// is no partial-success state.
func (s *Service) Run(raw table.Table) (*Result, error) {
	result := &Result{RunID: uuid.New().String()}
	current := raw

	for _, stage := range s.Stages() {
		start := time.Now()
		next, err := stage.Apply(current)
		if err != nil {
			s.logger.Error("stage failed", err, utils.Stage(stage.Name()))
			return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
		if next.NumRows() > current.NumRows() {
			return nil, fmt.Errorf("stage %s: row count grew from %d to %d", stage.Name(), current.NumRows(), next.NumRows())
		}
		if stage.Name() != "assemble" && next.NumRows() != current.NumRows() {
			return nil, fmt.Errorf("stage %s: row count changed from %d to %d", stage.Name(), current.NumRows(), next.NumRows())
		}
		current = next

		stat := StageStat{
			Name:     stage.Name(),
			Rows:     current.NumRows(),
			Cols:     current.NumCols(),
			Duration: time.Since(start),
		}
		result.Stages = append(result.Stages, stat)
		s.logger.Info("stage complete",
			utils.Stage(stat.Name),
			utils.Int("rows", stat.Rows),
			utils.Int("cols", stat.Cols))
	}

	spec, err := recipe.Build(current, s.cfg.Assemble.TargetColumn)
	if err != nil {
		return nil, fmt.Errorf("building preprocessing spec: %w", err)
	}

	result.Table = current
	result.Spec = spec
	s.logger.Info("run complete",
		utils.String("run_id", result.RunID),
		utils.Int("rows", current.NumRows()),
		utils.Int("cols", current.NumCols()))
	return result, nil
}
