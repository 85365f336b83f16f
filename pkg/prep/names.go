package prep

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold strips diacritics so accented source headers fold to plain
// ASCII identifiers ("Pâtient Âge" -> "Patient Age").
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CleanName rewrites a raw header into canonical identifier form: ASCII,
// lowercase, non-alphanumeric runs collapsed to a single underscore,
// leading/trailing underscores trimmed. Applying it to an already-clean
// name is a no-op.
func CleanName(raw string) string {
	folded, _, err := transform.String(asciiFold, raw)
	if err != nil {
		folded = raw
	}

	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}

// uniqueNames resolves collisions after cleaning by suffixing duplicates
// with _2, _3, ... in encounter order. Collisions are expected (two raw
// headers can clean to the same identifier) and are never an error.
func uniqueNames(names []string) []string {
	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, n := range names {
		seen[n]++
		if seen[n] == 1 {
			out[i] = n
			continue
		}
		candidate := n + "_" + strconv.Itoa(seen[n])
		for seen[candidate] > 0 {
			seen[n]++
			candidate = n + "_" + strconv.Itoa(seen[n])
		}
		seen[candidate]++
		out[i] = candidate
	}
	return out
}
