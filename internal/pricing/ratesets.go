// Package pricing holds the quote pricing rules: billable weight, rate set
// resolution, zone and rate lookup, accessorials and threshold checks.
package pricing

import (
	"sort"
	"strings"
)

// DefaultRateSet is the rate set every table must carry
const DefaultRateSet = "default"

// PreconfiguredRateSets are customer rate sets that are always offered,
// even before any rows have been loaded for them
var PreconfiguredRateSets = map[string]string{
	"agr":   "Anatomy Gifts Registry",
	"inin":  "Innoved Institute",
	"mdcr":  "MedCure",
	"utn":   "UTN",
	"meri":  "MERI",
	"swiba": "SWIBA",
	"lsa":   "Life Science Anotomical",
}

// NormalizeRateSet trims and lowercases a rate set identifier.
// Blank input maps to DefaultRateSet. Unknown sets are kept as-is.
func NormalizeRateSet(raw string) string {
	candidate := strings.ToLower(strings.TrimSpace(raw))
	if candidate == "" {
		return DefaultRateSet
	}
	return candidate
}

// OrderRateSets returns default first, then the remaining normalized sets sorted
func OrderRateSets(sets []string) []string {
	seen := map[string]struct{}{DefaultRateSet: {}}
	rest := make([]string, 0, len(sets))
	for _, s := range sets {
		n := NormalizeRateSet(s)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		rest = append(rest, n)
	}
	sort.Strings(rest)
	return append([]string{DefaultRateSet}, rest...)
}

// RateSetName returns the display name for a rate set code
func RateSetName(code string) string {
	if code == DefaultRateSet {
		return "Default"
	}
	if name, ok := PreconfiguredRateSets[code]; ok {
		return name
	}
	return strings.ToUpper(code)
}

// WithDefaultFallback runs lookup against rateSet and, when it finds no row
// and rateSet is not the default, once more against DefaultRateSet.
// Prices are never compared; the requested set always wins when it has a row.
func WithDefaultFallback[T any](rateSet string, lookup func(rateSet string) (T, bool, error)) (T, bool, error) {
	rateSet = NormalizeRateSet(rateSet)
	value, found, err := lookup(rateSet)
	if err != nil || found || rateSet == DefaultRateSet {
		return value, found, err
	}
	return lookup(DefaultRateSet)
}
