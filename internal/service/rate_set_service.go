package service

import (
	"context"
	"fmt"

	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/mapper"
	"github.com/freightservices/quote-api/internal/pricing"
	"go.uber.org/zap"
)

// RateSetSource lists the rate_set values present in the rate tables
type RateSetSource interface {
	DistinctRateSets(ctx context.Context) ([]string, error)
}

// RateSetService lists the rate sets a quote can be priced against
type RateSetService struct {
	rates  RateSetSource
	logger *zap.Logger
}

func NewRateSetService(rates RateSetSource, logger *zap.Logger) *RateSetService {
	return &RateSetService{rates: rates, logger: logger}
}

// Available returns default first, then the sorted union of the
// preconfigured sets and every set found in the rate tables
func (s *RateSetService) Available(ctx context.Context) ([]domain.RateSetDTO, error) {
	found, err := s.rates.DistinctRateSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate sets: %w", err)
	}

	codes := make([]string, 0, len(found)+len(pricing.PreconfiguredRateSets))
	for code := range pricing.PreconfiguredRateSets {
		codes = append(codes, code)
	}
	codes = append(codes, found...)

	return mapper.ToRateSetDTOs(pricing.OrderRateSets(codes)), nil
}
