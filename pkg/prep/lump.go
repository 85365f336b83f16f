package prep

import "github.com/admitrisk/riskprep-go/pkg/table"

// LumpRareLevels groups rare levels of a text column into a single
// catch-all label, bounding the level set regardless of input cardinality.
// A level is lumped when its frequency proportion among non-missing values
// is strictly below threshold; a level sitting exactly on the threshold is
// preserved verbatim. Missing cells pass through untouched.
func LumpRareLevels(col table.Column, threshold float64, otherLabel string) table.Column {
	counts := make(map[string]int)
	nonMissing := 0
	for _, v := range col.Values {
		if v.IsMissing() {
			continue
		}
		nonMissing++
		if s, ok := v.AsText(); ok {
			counts[s]++
		}
	}

	out := table.Column{Name: col.Name, Values: make([]table.Value, len(col.Values))}
	for i, v := range col.Values {
		out.Values[i] = v
		s, ok := v.AsText()
		if !ok || nonMissing == 0 {
			continue
		}
		if float64(counts[s])/float64(nonMissing) < threshold {
			out.Values[i] = table.Text(otherLabel)
		}
	}
	return out
}
