package pricing_test

import (
	"testing"

	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/pricing"
	"github.com/stretchr/testify/assert"
)

func TestCheckThresholds(t *testing.T) {
	tests := []struct {
		name      string
		quoteType domain.QuoteType
		weight    float64
		total     float64
		want      string
	}{
		{"air just over 1200", domain.QuoteTypeAir, 1201, 100, pricing.ThresholdWarning},
		{"air just under 1200", domain.QuoteTypeAir, 1199, 100, ""},
		{"air exactly 1200", domain.QuoteTypeAir, 1200, 100, ""},
		{"hotshot 1201 is fine", domain.QuoteTypeHotshot, 1201, 100, ""},
		{"hotshot over 3000", domain.QuoteTypeHotshot, 3001, 100, pricing.ThresholdWarning},
		{"total over 6000", domain.QuoteTypeHotshot, 10, 6000.01, pricing.ThresholdWarning},
		{"total exactly 6000", domain.QuoteTypeHotshot, 10, 6000, ""},
		{"lowercase air", domain.QuoteType("air"), 1300, 0, pricing.ThresholdWarning},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, pricing.CheckThresholds(tc.quoteType, tc.weight, tc.total))
		})
	}
}

func TestCheckAirPieceLimit(t *testing.T) {
	tests := []struct {
		name      string
		quoteType domain.QuoteType
		actual    float64
		pieces    int
		dim       float64
		want      string
	}{
		{"901 over 3 pieces", domain.QuoteTypeAir, 901, 3, 0, pricing.AirPieceLimitWarning},
		{"900 over 3 pieces", domain.QuoteTypeAir, 900, 3, 0, ""},
		{"dim weight drives the check", domain.QuoteTypeAir, 100, 1, 301, pricing.AirPieceLimitWarning},
		{"hotshot never limited", domain.QuoteTypeHotshot, 5000, 1, 0, ""},
		{"zero pieces skipped", domain.QuoteTypeAir, 5000, 0, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, pricing.CheckAirPieceLimit(tc.quoteType, tc.actual, tc.pieces, tc.dim))
		})
	}
}

func TestWarningsAreDistinct(t *testing.T) {
	assert.NotEqual(t, pricing.ThresholdWarning, pricing.AirPieceLimitWarning)
	assert.Contains(t, pricing.ThresholdWarning, "800-651-0423")
	assert.Contains(t, pricing.AirPieceLimitWarning, "300 lbs each")
}
