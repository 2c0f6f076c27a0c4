package domain

import (
	"sort"
	"strings"
)

// NormalizeZIP extracts the first five digits from raw input.
// The second return value is false when fewer than five digits are present.
func NormalizeZIP(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == 5 {
			return b.String(), true
		}
	}
	return b.String(), false
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
