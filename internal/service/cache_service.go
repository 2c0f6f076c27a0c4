package service

import (
	"github.com/freightservices/quote-api/internal/metrics"
	"go.uber.org/zap"
)

// Cache names reported by invalidation
const (
	CacheAccessorials  = "accessorials"
	CacheAirRateTables = "air_rate_tables"
	CacheZipValidation = "zip_validation"
)

// Invalidator is any cache with a manual reset
type Invalidator interface {
	Invalidate()
}

// CacheService resets the reference data caches after admin edits
type CacheService struct {
	accessorials Invalidator
	airTables    Invalidator
	zips         Invalidator
	logger       *zap.Logger
}

func NewCacheService(accessorials, airTables, zips Invalidator, logger *zap.Logger) *CacheService {
	return &CacheService{
		accessorials: accessorials,
		airTables:    airTables,
		zips:         zips,
		logger:       logger,
	}
}

func (s *CacheService) ClearAccessorialCache() bool {
	return s.clear(CacheAccessorials, s.accessorials)
}

func (s *CacheService) ClearAirRateCache() bool {
	return s.clear(CacheAirRateTables, s.airTables)
}

func (s *CacheService) ClearZipCache() bool {
	return s.clear(CacheZipValidation, s.zips)
}

// InvalidateAll clears every configured cache and returns the names cleared
func (s *CacheService) InvalidateAll() []string {
	cleared := []string{}
	if s.ClearAccessorialCache() {
		cleared = append(cleared, CacheAccessorials)
	}
	if s.ClearAirRateCache() {
		cleared = append(cleared, CacheAirRateTables)
	}
	if s.ClearZipCache() {
		cleared = append(cleared, CacheZipValidation)
	}
	return cleared
}

func (s *CacheService) clear(name string, cache Invalidator) bool {
	if cache == nil {
		return false
	}
	cache.Invalidate()
	metrics.CacheInvalidationsTotal.WithLabelValues(name).Inc()
	s.logger.Info("Cache invalidated", zap.String("cache", name))
	return true
}
