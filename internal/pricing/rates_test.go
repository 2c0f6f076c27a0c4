package pricing_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeHotshotRates struct {
	rows []domain.HotshotRate
}

func (f *fakeHotshotRates) HotshotZoneForMiles(_ context.Context, miles float64, rateSet string) (string, bool, error) {
	var candidates []domain.HotshotRate
	for _, r := range f.rows {
		if r.RateSet == rateSet && r.Miles >= miles {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return "", false, nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Miles < candidates[j].Miles })
	return candidates[0].Zone, true, nil
}

func (f *fakeHotshotRates) HotshotRateForZone(_ context.Context, zone, rateSet string) (*domain.HotshotRate, bool, error) {
	for i := range f.rows {
		if f.rows[i].Zone == zone && f.rows[i].RateSet == rateSet {
			return &f.rows[i], true, nil
		}
	}
	return nil, false, nil
}

type fixedDistance float64

func (d fixedDistance) Miles(_ context.Context, _, _ string) (float64, error) {
	return float64(d), nil
}

func hotshotTable() *fakeHotshotRates {
	return &fakeHotshotRates{rows: []domain.HotshotRate{
		{Miles: 100, Zone: "A", PerLb: 0.5, MinCharge: 150, FuelPct: 0.1, RateSet: "default"},
		{Miles: 500, Zone: "B", PerLb: 0.75, MinCharge: 250, FuelPct: 0.1, RateSet: "default"},
		{Miles: 1000, Zone: "C", PerLb: 1.0, MinCharge: 400, FuelPct: 0.1, RateSet: "default"},
		{Miles: 99999, Zone: "X", PerLb: 1.25, PerMile: 2.5, MinCharge: 500, FuelPct: 0.1, RateSet: "default"},
		{Miles: 500, Zone: "B", PerLb: 0.6, MinCharge: 200, FuelPct: 0.05, RateSet: "agr"},
	}}
}

func TestWithDefaultFallback(t *testing.T) {
	var calls []string
	lookup := func(set string) (string, bool, error) {
		calls = append(calls, set)
		if set == "default" {
			return "from-default", true, nil
		}
		return "", false, nil
	}

	v, found, err := pricing.WithDefaultFallback("ACME ", lookup)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "from-default", v)
	assert.Equal(t, []string{"acme", "default"}, calls)
}

func TestWithDefaultFallback_PrefersRequestedSet(t *testing.T) {
	calls := 0
	lookup := func(set string) (float64, bool, error) {
		calls++
		if set == "agr" {
			return 999, true, nil
		}
		return 1, true, nil
	}

	v, found, err := pricing.WithDefaultFallback("agr", lookup)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 999.0, v)
	assert.Equal(t, 1, calls)
}

func TestWithDefaultFallback_DefaultQueriedOnce(t *testing.T) {
	calls := 0
	_, found, err := pricing.WithDefaultFallback("", func(string) (int, bool, error) {
		calls++
		return 0, false, nil
	})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 1, calls)
}

func TestWithDefaultFallback_ErrorStops(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, _, err := pricing.WithDefaultFallback("agr", func(string) (int, bool, error) {
		calls++
		return 0, false, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestHotshotZoneForMiles(t *testing.T) {
	calc := pricing.NewHotshotCalculator(hotshotTable(), fixedDistance(0))
	ctx := context.Background()

	tests := []struct {
		name    string
		miles   float64
		rateSet string
		want    string
	}{
		{"smallest covering bracket", 80, "default", "A"},
		{"exact ceiling", 100, "default", "A"},
		{"next bracket", 100.1, "default", "B"},
		{"customer set row wins", 300, "agr", "B"},
		{"customer set covers short haul", 80, "agr", "B"},
		{"customer set falls back past its brackets", 750, "agr", "C"},
		{"unknown set equals default", 750, "nosuchset", "C"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			zone, err := calc.ZoneForMiles(ctx, tc.miles, tc.rateSet)
			require.NoError(t, err)
			assert.Equal(t, tc.want, zone)
		})
	}
}

func TestHotshotZoneForMiles_EmptyTableFallsBackToX(t *testing.T) {
	calc := pricing.NewHotshotCalculator(&fakeHotshotRates{}, fixedDistance(0))
	zone, err := calc.ZoneForMiles(context.Background(), 42, "default")
	require.NoError(t, err)
	assert.Equal(t, pricing.FallbackHotshotZone, zone)
}

func TestHotshotRateForZone_Missing(t *testing.T) {
	calc := pricing.NewHotshotCalculator(&fakeHotshotRates{}, fixedDistance(0))
	_, err := calc.RateForZone(context.Background(), "X", "agr")
	require.Error(t, err)
	assert.ErrorIs(t, err, pricing.ErrHotshotRateNotFound)
	assert.Contains(t, err.Error(), "zone X")
}

func TestHotshotQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("per pound above minimum", func(t *testing.T) {
		calc := pricing.NewHotshotCalculator(hotshotTable(), fixedDistance(587.3))
		res, err := calc.Quote(ctx, "30301", "60601", 500, "default")
		require.NoError(t, err)
		assert.Equal(t, "C", res.Zone)
		require.NotNil(t, res.Miles)
		assert.InDelta(t, 587.3, *res.Miles, 1e-9)
		// max(400, 500*1.0) = 500, fuel 50
		assert.InDelta(t, 550, res.Linehaul, 1e-9)
		assert.InDelta(t, 50.0, res.Details["fuel_surcharge"], 1e-9)
		assert.NotContains(t, res.Details, "zone")
	})

	t.Run("minimum charge", func(t *testing.T) {
		calc := pricing.NewHotshotCalculator(hotshotTable(), fixedDistance(50))
		res, err := calc.Quote(ctx, "30301", "30305", 10, "default")
		require.NoError(t, err)
		assert.Equal(t, "A", res.Zone)
		assert.InDelta(t, 165, res.Linehaul, 1e-9)
	})

	t.Run("catch-all zone prices by mile", func(t *testing.T) {
		calc := pricing.NewHotshotCalculator(hotshotTable(), fixedDistance(100000))
		res, err := calc.Quote(ctx, "30301", "99501", 100, "default")
		require.NoError(t, err)
		assert.Equal(t, "X", res.Zone)
		assert.InDelta(t, 100000*2.5*1.1, res.Linehaul, 1e-6)
	})

	t.Run("customer rate set", func(t *testing.T) {
		calc := pricing.NewHotshotCalculator(hotshotTable(), fixedDistance(300))
		res, err := calc.Quote(ctx, "30301", "35203", 1000, "AGR")
		require.NoError(t, err)
		assert.InDelta(t, 630, res.Linehaul, 1e-9)
	})
}

type fakeAirRates struct {
	zipZones  []domain.ZipZone
	costZones []domain.CostZone
	airCosts  []domain.AirCostZone
	beyond    []domain.BeyondRate
}

func (f *fakeAirRates) ZipZone(_ context.Context, zip, rateSet string) (*domain.ZipZone, bool, error) {
	for i := range f.zipZones {
		if f.zipZones[i].Zipcode == zip && f.zipZones[i].RateSet == rateSet {
			return &f.zipZones[i], true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeAirRates) CostZone(_ context.Context, concat, rateSet string) (*domain.CostZone, bool, error) {
	for i := range f.costZones {
		if f.costZones[i].Concat == concat && f.costZones[i].RateSet == rateSet {
			return &f.costZones[i], true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeAirRates) AirCostZone(_ context.Context, zone, rateSet string) (*domain.AirCostZone, bool, error) {
	for i := range f.airCosts {
		if f.airCosts[i].Zone == zone && f.airCosts[i].RateSet == rateSet {
			return &f.airCosts[i], true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeAirRates) BeyondRate(_ context.Context, zone, rateSet string) (*domain.BeyondRate, bool, error) {
	for i := range f.beyond {
		if f.beyond[i].Zone == zone && f.beyond[i].RateSet == rateSet {
			return &f.beyond[i], true, nil
		}
	}
	return nil, false, nil
}

func airTables() *fakeAirRates {
	return &fakeAirRates{
		zipZones: []domain.ZipZone{
			{Zipcode: "30301", DestZone: 3, Beyond: "N/A", RateSet: "default"},
			{Zipcode: "60601", DestZone: 5, Beyond: "B1", RateSet: "default"},
			{Zipcode: "85001", DestZone: 7, Beyond: "ZZ", RateSet: "default"},
		},
		costZones: []domain.CostZone{
			{Concat: "35", CostZone: "C2", RateSet: "default"},
			{Concat: "37", CostZone: "C4", RateSet: "default"},
		},
		airCosts: []domain.AirCostZone{
			{Zone: "C2", MinCharge: 200, PerLb: 1.5, WeightBreak: 100, RateSet: "default"},
			{Zone: "C2", MinCharge: 150, PerLb: 1.0, WeightBreak: 100, RateSet: "mdcr"},
			{Zone: "C4", MinCharge: 300, PerLb: 2.0, WeightBreak: 50, RateSet: "default"},
		},
		beyond: []domain.BeyondRate{
			{Zone: "B1", Rate: 75, RateSet: "default"},
		},
	}
}

func TestAirQuote(t *testing.T) {
	ctx := context.Background()
	calc := pricing.NewAirCalculator(airTables(), zap.NewNop())

	t.Run("over weight break with beyond", func(t *testing.T) {
		res, err := calc.Quote(ctx, "30301", "60601-1234", 300, "default")
		require.NoError(t, err)
		assert.Equal(t, "C2", res.Zone)
		assert.Nil(t, res.Miles)
		// 200 + (300-100)*1.5 = 500, beyond 0 + 75
		assert.InDelta(t, 575, res.Linehaul, 1e-9)
		assert.Equal(t, "35", res.Details["concat"])
		assert.InDelta(t, 75.0, res.Details["beyond_total"], 1e-9)
	})

	t.Run("under weight break is min charge", func(t *testing.T) {
		res, err := calc.Quote(ctx, "30301", "60601", 80, "default")
		require.NoError(t, err)
		assert.InDelta(t, 275, res.Linehaul, 1e-9)
	})

	t.Run("customer air cost row with default zip zones", func(t *testing.T) {
		res, err := calc.Quote(ctx, "30301", "60601", 300, "mdcr")
		require.NoError(t, err)
		assert.InDelta(t, 150+200*1.0+75, res.Linehaul, 1e-9)
	})

	t.Run("unknown beyond code prices at zero", func(t *testing.T) {
		res, err := calc.Quote(ctx, "30301", "85001", 50, "default")
		require.NoError(t, err)
		assert.InDelta(t, 300, res.Linehaul, 1e-9)
	})

	t.Run("unknown zip is a reference data error", func(t *testing.T) {
		_, err := calc.Quote(ctx, "99999", "60601", 50, "default")
		var refErr *domain.ReferenceDataError
		require.ErrorAs(t, err, &refErr)
		assert.Contains(t, refErr.Message, "99999")
	})

	t.Run("missing cost zone is a reference data error", func(t *testing.T) {
		_, err := calc.Quote(ctx, "60601", "30301", 50, "default")
		var refErr *domain.ReferenceDataError
		require.ErrorAs(t, err, &refErr)
		assert.Contains(t, refErr.Message, "53")
	})
}
