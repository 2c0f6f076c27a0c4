// Package geo computes mileage between ZIP code centroids.
package geo

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/freightservices/quote-api/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const metersPerMile = 1609.344

// ErrUnknownZIP is returned when a ZIP has no stored centroid
var ErrUnknownZIP = errors.New("zip code coordinates not found")

// CoordinateSource looks up the centroid of a five-digit ZIP
type CoordinateSource interface {
	FindByZip(ctx context.Context, zip string) (*domain.ZipCoordinate, error)
}

// DistanceCalculator returns great-circle miles between ZIP centroids
type DistanceCalculator struct {
	coords CoordinateSource
}

func NewDistanceCalculator(coords CoordinateSource) *DistanceCalculator {
	return &DistanceCalculator{coords: coords}
}

// Miles returns the haversine distance between origin and destination,
// rounded to a tenth of a mile
func (d *DistanceCalculator) Miles(ctx context.Context, origin, destination string) (float64, error) {
	from, err := d.point(ctx, origin)
	if err != nil {
		return 0, err
	}
	to, err := d.point(ctx, destination)
	if err != nil {
		return 0, err
	}
	return RoundTenth(geo.DistanceHaversine(from, to) / metersPerMile), nil
}

func (d *DistanceCalculator) point(ctx context.Context, zip string) (orb.Point, error) {
	normalized, ok := domain.NormalizeZIP(zip)
	if !ok {
		return orb.Point{}, fmt.Errorf("%w: %q", ErrUnknownZIP, zip)
	}
	c, err := d.coords.FindByZip(ctx, normalized)
	if err != nil {
		return orb.Point{}, err
	}
	if c == nil {
		return orb.Point{}, fmt.Errorf("%w: %s", ErrUnknownZIP, normalized)
	}
	return orb.Point{c.Longitude, c.Latitude}, nil
}

// RoundTenth rounds to one decimal place
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
