package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/freightservices/quote-api/internal/domain"
	"go.uber.org/zap"
)

// AirRateSource queries a single rate set of the air tables
type AirRateSource interface {
	ZipZone(ctx context.Context, zip, rateSet string) (*domain.ZipZone, bool, error)
	CostZone(ctx context.Context, concat, rateSet string) (*domain.CostZone, bool, error)
	AirCostZone(ctx context.Context, zone, rateSet string) (*domain.AirCostZone, bool, error)
	BeyondRate(ctx context.Context, zone, rateSet string) (*domain.BeyondRate, bool, error)
}

// AirCalculator prices air quotes from the zip zone, cost zone, air cost
// and beyond tables
type AirCalculator struct {
	rates  AirRateSource
	logger *zap.Logger
}

func NewAirCalculator(rates AirRateSource, logger *zap.Logger) *AirCalculator {
	return &AirCalculator{rates: rates, logger: logger}
}

// Quote prices an air shipment. Missing reference rows are returned as
// *domain.ReferenceDataError so the caller can report them to the user.
func (c *AirCalculator) Quote(ctx context.Context, origin, destination string, weight float64, rateSet string) (*Result, error) {
	originZone, err := c.zipZone(ctx, "Origin", origin, rateSet)
	if err != nil {
		return nil, err
	}
	destZone, err := c.zipZone(ctx, "Destination", destination, rateSet)
	if err != nil {
		return nil, err
	}

	concat := fmt.Sprintf("%d%d", originZone.DestZone, destZone.DestZone)
	costZone, found, err := WithDefaultFallback(rateSet, func(set string) (*domain.CostZone, bool, error) {
		return c.rates.CostZone(ctx, concat, set)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load cost zone: %w", err)
	}
	if !found {
		return nil, &domain.ReferenceDataError{Message: fmt.Sprintf("Cost zone not found for zone pair %s.", concat)}
	}

	airCost, found, err := WithDefaultFallback(rateSet, func(set string) (*domain.AirCostZone, bool, error) {
		return c.rates.AirCostZone(ctx, costZone.CostZone, set)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load air cost zone: %w", err)
	}
	if !found {
		return nil, &domain.ReferenceDataError{Message: fmt.Sprintf("Air cost zone %s not found.", costZone.CostZone)}
	}

	base := airCost.MinCharge
	if weight > airCost.WeightBreak {
		base = airCost.MinCharge + (weight-airCost.WeightBreak)*airCost.PerLb
	}

	originCharge, err := c.beyondCharge(ctx, originZone.Beyond, rateSet)
	if err != nil {
		return nil, err
	}
	destCharge, err := c.beyondCharge(ctx, destZone.Beyond, rateSet)
	if err != nil {
		return nil, err
	}
	beyondTotal := originCharge + destCharge
	linehaul := base + beyondTotal

	return &Result{
		Linehaul: linehaul,
		Zone:     costZone.CostZone,
		Miles:    nil,
		Details: map[string]interface{}{
			"origin_zone":   originZone.DestZone,
			"dest_zone":     destZone.DestZone,
			"concat":        concat,
			"min_charge":    airCost.MinCharge,
			"per_lb":        airCost.PerLb,
			"weight_break":  airCost.WeightBreak,
			"base_rate":     base,
			"origin_beyond": beyondCode(originZone.Beyond),
			"dest_beyond":   beyondCode(destZone.Beyond),
			"origin_charge": originCharge,
			"dest_charge":   destCharge,
			"beyond_total":  beyondTotal,
			"linehaul":      linehaul,
		},
	}, nil
}

func (c *AirCalculator) zipZone(ctx context.Context, label, zip, rateSet string) (*domain.ZipZone, error) {
	normalized, ok := domain.NormalizeZIP(zip)
	if !ok {
		return nil, &domain.ReferenceDataError{Message: fmt.Sprintf("%s ZIP code %s is not a valid ZIP code.", label, zip)}
	}
	zz, found, err := WithDefaultFallback(rateSet, func(set string) (*domain.ZipZone, bool, error) {
		return c.rates.ZipZone(ctx, normalized, set)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load zip zone: %w", err)
	}
	if !found {
		return nil, &domain.ReferenceDataError{Message: fmt.Sprintf("%s ZIP code %s not found in air zone table.", label, normalized)}
	}
	return zz, nil
}

// beyondCharge returns 0 for blank or N/A codes. Unknown codes also price at
// 0 but are logged so the table can be fixed.
func (c *AirCalculator) beyondCharge(ctx context.Context, code, rateSet string) (float64, error) {
	code = beyondCode(code)
	if code == "" {
		return 0, nil
	}
	rate, found, err := WithDefaultFallback(rateSet, func(set string) (*domain.BeyondRate, bool, error) {
		return c.rates.BeyondRate(ctx, code, set)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to load beyond rate: %w", err)
	}
	if !found {
		c.logger.Warn("Beyond zone not found, pricing at zero",
			zap.String("beyond_zone", code),
			zap.String("rate_set", rateSet),
		)
		return 0, nil
	}
	return rate.Rate, nil
}

func beyondCode(raw string) string {
	code := strings.TrimSpace(raw)
	if strings.EqualFold(code, "N/A") {
		return ""
	}
	return code
}
