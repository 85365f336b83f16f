// Package profile computes per-column summaries of the assembled dataset
// for the console report and for spotting zero-variance predictors early.
package profile

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/admitrisk/riskprep-go/pkg/table"
)

// ColumnSummary describes one column of the assembled table.
type ColumnSummary struct {
	Name         string
	Role         string // "numeric", "nominal" or "target"
	Rows         int
	Missing      int
	Distinct     int
	Mean         float64 // numeric columns only
	Median       float64
	StdDev       float64
	ZeroVariance bool
}

// Summarize profiles every column of the table. The target column is
// reported with role "target" and no numeric moments.
func Summarize(t table.Table, target string) []ColumnSummary {
	out := make([]ColumnSummary, 0, t.NumCols())
	for _, col := range t.Columns() {
		s := ColumnSummary{Name: col.Name, Rows: len(col.Values)}

		distinct := make(map[string]bool)
		var xs []float64
		numeric := !col.IsCategorical()
		for _, v := range col.Values {
			if v.IsMissing() {
				s.Missing++
				continue
			}
			distinct[v.String()] = true
			if f, ok := v.AsFloat(); ok && v.Kind() != table.KindText {
				xs = append(xs, f)
			} else {
				numeric = false
			}
		}
		s.Distinct = len(distinct)

		switch {
		case col.Name == target:
			s.Role = "target"
			s.ZeroVariance = s.Distinct <= 1
		case numeric && len(xs) > 0:
			s.Role = "numeric"
			s.Mean = stat.Mean(xs, nil)
			s.StdDev = stat.StdDev(xs, nil)
			sorted := append([]float64(nil), xs...)
			sort.Float64s(sorted)
			s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
			s.ZeroVariance = stat.Variance(xs, nil) == 0
		default:
			s.Role = "nominal"
			s.ZeroVariance = s.Distinct <= 1
		}
		out = append(out, s)
	}
	return out
}
