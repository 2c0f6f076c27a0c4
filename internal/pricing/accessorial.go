package pricing

import (
	"strings"

	"github.com/freightservices/quote-api/internal/domain"
)

// GuaranteeLineItem is the line item name a guarantee surcharge is stored under
const GuaranteeLineItem = "Guarantee"

// IsGuarantee reports whether an accessorial name denotes the guarantee surcharge
func IsGuarantee(name string) bool {
	return strings.Contains(strings.ToLower(name), "guarantee")
}

// Catalog is an immutable snapshot of the accessorial table in id order
type Catalog struct {
	entries []domain.Accessorial
	byKey   map[string]domain.Accessorial
}

// NewCatalog indexes accessorials by trimmed lowercase name. Nameless rows are skipped.
func NewCatalog(accessorials []domain.Accessorial) *Catalog {
	c := &Catalog{
		entries: make([]domain.Accessorial, 0, len(accessorials)),
		byKey:   make(map[string]domain.Accessorial, len(accessorials)),
	}
	for _, a := range accessorials {
		key := catalogKey(a.Name)
		if key == "" {
			continue
		}
		if _, dup := c.byKey[key]; dup {
			continue
		}
		c.entries = append(c.entries, a)
		c.byKey[key] = a
	}
	return c
}

// Len returns the number of named accessorials
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Lookup matches a selected name case-insensitively
func (c *Catalog) Lookup(name string) (domain.Accessorial, bool) {
	if c == nil {
		return domain.Accessorial{}, false
	}
	a, ok := c.byKey[catalogKey(name)]
	return a, ok
}

// Options lists selectable names in catalog order. Hotshot quotes never
// offer the guarantee surcharge.
func (c *Catalog) Options(quoteType domain.QuoteType) []string {
	names := []string{}
	if c == nil {
		return names
	}
	for _, a := range c.entries {
		if !quoteType.IsAir() && IsGuarantee(a.Name) {
			continue
		}
		names = append(names, a.Name)
	}
	return names
}

func catalogKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Breakdown is the result of applying accessorials to a linehaul price
type Breakdown struct {
	// Items maps line item name to charge, including "Guarantee" when applied
	Items map[string]float64
	// FlatTotal is the sum of flat accessorial charges
	FlatTotal float64
	// Guarantee is the percentage surcharge, 0 when not applied
	Guarantee float64
	// Total is FlatTotal + Guarantee and always equals the sum of Items
	Total float64
	// FinalPrice is basePrice + Total
	FinalPrice float64
}

// ApplyAccessorials prices the selected accessorials on top of basePrice,
// which is the linehaul plus beyond charge before any accessorials.
//
// Unknown names are dropped and duplicates count once. The guarantee is
// computed as basePrice * amount/100 on air quotes and ignored on hotshot
// quotes. Other percentage-flagged entries are charged as flat amounts.
func ApplyAccessorials(quoteType domain.QuoteType, selected []string, catalog *Catalog, basePrice float64) Breakdown {
	b := Breakdown{Items: map[string]float64{}}

	seen := make(map[string]struct{}, len(selected))
	var guarantee *domain.Accessorial
	for _, raw := range selected {
		key := catalogKey(raw)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		record, ok := catalog.Lookup(key)
		if !ok {
			continue
		}
		if IsGuarantee(record.Name) {
			if guarantee == nil {
				g := record
				guarantee = &g
			}
			continue
		}
		b.Items[record.Name] = record.Amount
		b.FlatTotal += record.Amount
	}

	b.Total = b.FlatTotal
	if guarantee != nil && quoteType.IsAir() {
		b.Guarantee = basePrice * (guarantee.Amount / 100.0)
		b.Items[GuaranteeLineItem] = b.Guarantee
		b.Total += b.Guarantee
	}
	b.FinalPrice = basePrice + b.Total
	return b
}
