package geocode

import (
	"context"
	"fmt"
	"strconv"

	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/metrics"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Reason explains a ZIP validation outcome
type Reason string

const (
	ReasonOK            Reason = "ok"
	ReasonNotFound      Reason = "not_found"
	ReasonInvalidFormat Reason = "invalid_format"
	ReasonPlacesError   Reason = "places_error"
	ReasonFormatOnly    Reason = "format_only"
)

// DefaultCacheSize bounds the number of cached Places answers
const DefaultCacheSize = 1024

// PostalCodeLookup returns prediction primary texts for a ZIP
type PostalCodeLookup interface {
	PostalCodePredictions(ctx context.Context, zip, apiKey string) ([]string, error)
}

type cacheKey struct {
	zip    string
	apiKey string
}

type cachedResult struct {
	valid  bool
	reason Reason
}

// ZipValidator confirms that a ZIP is a real U.S. postal code. Without an API
// key it only checks the format. Provider failures fail closed.
type ZipValidator struct {
	places PostalCodeLookup
	apiKey string
	cache  *lru.Cache[cacheKey, cachedResult]
	logger *zap.Logger
}

// NewZipValidator creates a validator with an owned LRU of Places answers
func NewZipValidator(places PostalCodeLookup, apiKey string, cacheSize int, logger *zap.Logger) (*ZipValidator, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, cachedResult](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create zip cache: %w", err)
	}
	return &ZipValidator{
		places: places,
		apiKey: apiKey,
		cache:  cache,
		logger: logger,
	}, nil
}

// Validate reports whether zip is valid and why.
// Only ok and not_found answers are cached so a provider outage never pins a ZIP.
func (v *ZipValidator) Validate(ctx context.Context, zip string) (bool, Reason) {
	normalized, ok := domain.NormalizeZIP(zip)
	if !ok {
		v.record(ReasonInvalidFormat, false)
		return false, ReasonInvalidFormat
	}
	if v.apiKey == "" || v.places == nil {
		v.record(ReasonFormatOnly, false)
		return true, ReasonFormatOnly
	}

	key := cacheKey{zip: normalized, apiKey: v.apiKey}
	if hit, found := v.cache.Get(key); found {
		v.record(hit.reason, true)
		return hit.valid, hit.reason
	}

	texts, err := v.places.PostalCodePredictions(ctx, normalized, v.apiKey)
	if err != nil {
		v.logger.Warn("ZIP validation failed closed",
			zap.String("zip", normalized),
			zap.Error(err),
		)
		v.record(ReasonPlacesError, false)
		return false, ReasonPlacesError
	}

	result := cachedResult{valid: false, reason: ReasonNotFound}
	for _, text := range texts {
		if candidate, ok := domain.NormalizeZIP(text); ok && candidate == normalized {
			result = cachedResult{valid: true, reason: ReasonOK}
			break
		}
	}
	v.cache.Add(key, result)
	v.record(result.reason, false)
	return result.valid, result.reason
}

// Invalidate drops every cached answer
func (v *ZipValidator) Invalidate() {
	v.cache.Purge()
}

// Len returns the number of cached answers
func (v *ZipValidator) Len() int {
	return v.cache.Len()
}

func (v *ZipValidator) record(reason Reason, cached bool) {
	metrics.ZipValidationsTotal.WithLabelValues(string(reason), strconv.FormatBool(cached)).Inc()
}
