package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/freightservices/quote-api/internal/domain"
)

// FallbackHotshotZone is the catch-all zone used when no bracket covers the mileage
const FallbackHotshotZone = "X"

// ErrHotshotRateNotFound is returned when no rate row exists for a zone
var ErrHotshotRateNotFound = errors.New("hotshot rate not found")

// Result is the linehaul price produced by a rate calculator, before accessorials
type Result struct {
	Linehaul float64
	Zone     string
	Miles    *float64
	Details  map[string]interface{}
}

// HotshotRateSource queries a single rate set; fallback is applied by the calculator
type HotshotRateSource interface {
	HotshotZoneForMiles(ctx context.Context, miles float64, rateSet string) (string, bool, error)
	HotshotRateForZone(ctx context.Context, zone, rateSet string) (*domain.HotshotRate, bool, error)
}

// DistanceSource returns road-independent miles between two ZIP codes
type DistanceSource interface {
	Miles(ctx context.Context, origin, destination string) (float64, error)
}

// HotshotCalculator prices ground hotshot quotes by mileage bracket
type HotshotCalculator struct {
	rates    HotshotRateSource
	distance DistanceSource
}

func NewHotshotCalculator(rates HotshotRateSource, distance DistanceSource) *HotshotCalculator {
	return &HotshotCalculator{rates: rates, distance: distance}
}

// ZoneForMiles picks the smallest bracket whose miles ceiling covers the
// distance, falling back to the default set and then to zone "X"
func (c *HotshotCalculator) ZoneForMiles(ctx context.Context, miles float64, rateSet string) (string, error) {
	zone, found, err := WithDefaultFallback(rateSet, func(set string) (string, bool, error) {
		return c.rates.HotshotZoneForMiles(ctx, miles, set)
	})
	if err != nil {
		return "", fmt.Errorf("failed to resolve hotshot zone: %w", err)
	}
	if !found {
		return FallbackHotshotZone, nil
	}
	return zone, nil
}

// RateForZone returns the rate row for a zone with default fallback
func (c *HotshotCalculator) RateForZone(ctx context.Context, zone, rateSet string) (*domain.HotshotRate, error) {
	rate, found, err := WithDefaultFallback(rateSet, func(set string) (*domain.HotshotRate, bool, error) {
		return c.rates.HotshotRateForZone(ctx, zone, set)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load hotshot rate: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w for zone %s", ErrHotshotRateNotFound, zone)
	}
	return rate, nil
}

// Quote prices a hotshot shipment of the given billable weight
func (c *HotshotCalculator) Quote(ctx context.Context, origin, destination string, weight float64, rateSet string) (*Result, error) {
	miles, err := c.distance.Miles(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	zone, err := c.ZoneForMiles(ctx, miles, rateSet)
	if err != nil {
		return nil, err
	}
	rate, err := c.RateForZone(ctx, zone, rateSet)
	if err != nil {
		return nil, err
	}

	base := math.Max(rate.MinCharge, weight*rate.PerLb)
	if rate.PerMile > 0 {
		base = math.Max(base, miles*rate.PerMile)
	}
	fuel := base * rate.FuelPct
	linehaul := base + fuel

	return &Result{
		Linehaul: linehaul,
		Zone:     zone,
		Miles:    &miles,
		Details: map[string]interface{}{
			"per_lb":         rate.PerLb,
			"per_mile":       rate.PerMile,
			"min_charge":     rate.MinCharge,
			"fuel_pct":       rate.FuelPct,
			"fuel_surcharge": fuel,
			"base_rate":      base,
			"linehaul":       linehaul,
		},
	}, nil
}
