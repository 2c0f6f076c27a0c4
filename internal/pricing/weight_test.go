package pricing_test

import (
	"testing"

	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/pricing"
	"github.com/stretchr/testify/assert"
)

func TestComputeBillableWeight(t *testing.T) {
	tests := []struct {
		name       string
		actual     float64
		l, w, h    float64
		override   float64
		pieces     int
		wantDim    float64
		wantBill   float64
		wantMethod domain.WeightMethod
	}{
		{
			name:       "no dimensions uses actual",
			actual:     500,
			pieces:     1,
			wantDim:    0,
			wantBill:   500,
			wantMethod: domain.WeightMethodActual,
		},
		{
			name:       "dimensional wins across pieces",
			actual:     600,
			l:          48,
			w:          40,
			h:          36,
			pieces:     2,
			wantDim:    (48.0 * 40.0 * 36.0 / 166.0) * 2,
			wantBill:   (48.0 * 40.0 * 36.0 / 166.0) * 2,
			wantMethod: domain.WeightMethodDimensional,
		},
		{
			name:       "actual wins over small dimensions",
			actual:     100,
			l:          10,
			w:          10,
			h:          10,
			pieces:     1,
			wantDim:    1000.0 / 166.0,
			wantBill:   100,
			wantMethod: domain.WeightMethodActual,
		},
		{
			name:       "override is used as-is",
			actual:     100,
			l:          48,
			w:          40,
			h:          36,
			override:   250,
			pieces:     3,
			wantDim:    250,
			wantBill:   250,
			wantMethod: domain.WeightMethodDimensional,
		},
		{
			name:       "missing dimension means no dim weight",
			actual:     40,
			l:          48,
			w:          0,
			h:          36,
			pieces:     2,
			wantDim:    0,
			wantBill:   40,
			wantMethod: domain.WeightMethodActual,
		},
		{
			name:       "tie with positive dim is dimensional",
			actual:     250,
			override:   250,
			pieces:     1,
			wantDim:    250,
			wantBill:   250,
			wantMethod: domain.WeightMethodDimensional,
		},
		{
			name:       "zero everything is actual",
			pieces:     1,
			wantMethod: domain.WeightMethodActual,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := pricing.ComputeBillableWeight(tc.actual, tc.l, tc.w, tc.h, tc.override, tc.pieces)
			assert.InDelta(t, tc.wantDim, got.Dimensional, 1e-9)
			assert.InDelta(t, tc.wantBill, got.Billable, 1e-9)
			assert.Equal(t, tc.wantMethod, got.Method)
		})
	}
}

func TestComputeBillableWeight_IsMaxOfActualAndDimensional(t *testing.T) {
	for actual := 0.0; actual <= 1500; actual += 125 {
		for dim := 0.0; dim <= 1500; dim += 125 {
			got := pricing.ComputeBillableWeight(actual, 0, 0, 0, dim, 1)
			want := actual
			if dim > want {
				want = dim
			}
			assert.Equal(t, want, got.Billable)
			if dim > 0 && dim >= actual {
				assert.Equal(t, domain.WeightMethodDimensional, got.Method)
			} else {
				assert.Equal(t, domain.WeightMethodActual, got.Method)
			}
		}
	}
}

func TestDimensionalWeight_ExampleShipment(t *testing.T) {
	dim := pricing.DimensionalWeight(48, 40, 36, 0, 2)
	assert.InDelta(t, 834.02, dim, 0.01)
}
