package pricing_test

import (
	"testing"

	"github.com/freightservices/quote-api/internal/pricing"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeRateSet(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", "default"},
		{"   ", "default"},
		{"AGR", "agr"},
		{"  MdCr ", "mdcr"},
		{"unknown-set", "unknown-set"},
		{"default", "default"},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, pricing.NormalizeRateSet(tc.raw))
		})
	}
}

func TestOrderRateSets(t *testing.T) {
	got := pricing.OrderRateSets([]string{"utn", "AGR", "default", "agr", ""})
	assert.Equal(t, []string{"default", "agr", "utn"}, got)
}

func TestRateSetName(t *testing.T) {
	assert.Equal(t, "Default", pricing.RateSetName("default"))
	assert.Equal(t, "MedCure", pricing.RateSetName("mdcr"))
	assert.Equal(t, "ACME", pricing.RateSetName("acme"))
}
