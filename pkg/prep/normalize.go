// Package prep implements the schema-normalization stages of the
// admission-risk preparation pipeline: canonical column naming, sentinel
// null-harmonization, column pruning and rare-level lumping.
package prep

import (
	"github.com/admitrisk/riskprep-go/pkg/table"
)

// Normalizer standardizes column names and rewrites sentinel strings to the
// explicit missing marker across all text cells. Sentinels are matched
// case-sensitively and exactly; "Unknown" survives a sentinel list that
// names only "unknown".
type Normalizer struct {
	sentinels map[string]bool
}

// NewNormalizer creates a normalizer for the given sentinel strings.
func NewNormalizer(sentinels []string) *Normalizer {
	set := make(map[string]bool, len(sentinels))
	for _, s := range sentinels {
		set[s] = true
	}
	return &Normalizer{sentinels: set}
}

// Name returns the stage name.
func (n *Normalizer) Name() string { return "normalize" }

// Apply returns a new table with canonical column names and all sentinel
// text cells replaced by the missing marker. Every text column is scanned
// once against the full sentinel set, so no sentinel can mask another.
// Re-applying to an already-normalized table is a no-op.
func (n *Normalizer) Apply(t table.Table) (table.Table, error) {
	src := t.Columns()
	names := make([]string, len(src))
	for i, c := range src {
		names[i] = CleanName(c.Name)
	}
	names = uniqueNames(names)

	out := make([]table.Column, len(src))
	for i, c := range src {
		nc := table.Column{Name: names[i], Values: make([]table.Value, len(c.Values)), Levels: c.Levels}
		for j, v := range c.Values {
			if s, ok := v.AsText(); ok && n.sentinels[s] {
				nc.Values[j] = table.Missing()
				continue
			}
			nc.Values[j] = v
		}
		out[i] = nc
	}
	return table.New(out...)
}
