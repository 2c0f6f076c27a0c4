package service

import (
	"context"
	"strings"
	"sync"

	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/pricing"
	"go.uber.org/zap"
)

// RowChecker reports whether a table exists and has rows for any of the rate sets
type RowChecker interface {
	HasRows(ctx context.Context, model interface{}, rateSets ...string) (bool, error)
}

var requiredAirTables = []struct {
	label string
	model interface{}
}{
	{"ZipZone", &domain.ZipZone{}},
	{"CostZone", &domain.CostZone{}},
	{"AirCostZone", &domain.AirCostZone{}},
}

// AirTableChecker caches which air rate tables are missing or empty per rate set
type AirTableChecker struct {
	rows   RowChecker
	logger *zap.Logger
	mu     sync.RWMutex
	cache  map[string][]string
}

func NewAirTableChecker(rows RowChecker, logger *zap.Logger) *AirTableChecker {
	return &AirTableChecker{
		rows:   rows,
		logger: logger,
		cache:  make(map[string][]string),
	}
}

// Missing returns the labels of required air tables with no rows for the
// rate set or the default set. Both outcomes are cached until Invalidate.
// Query failures count as missing and are not cached.
func (c *AirTableChecker) Missing(ctx context.Context, rateSet string) []string {
	rateSet = pricing.NormalizeRateSet(rateSet)

	c.mu.RLock()
	missing, ok := c.cache[rateSet]
	c.mu.RUnlock()
	if ok {
		return missing
	}

	sets := []string{rateSet}
	if rateSet != pricing.DefaultRateSet {
		sets = append(sets, pricing.DefaultRateSet)
	}

	missing = []string{}
	cacheable := true
	for _, table := range requiredAirTables {
		has, err := c.rows.HasRows(ctx, table.model, sets...)
		if err != nil {
			c.logger.Error("Failed to inspect air rate table",
				zap.String("table", table.label),
				zap.String("rate_set", rateSet),
				zap.Error(err),
			)
			cacheable = false
			has = false
		}
		if !has {
			missing = append(missing, table.label)
		}
	}

	if cacheable {
		c.mu.Lock()
		c.cache[rateSet] = missing
		c.mu.Unlock()
	}
	return missing
}

// Check returns a ReferenceDataError naming the missing tables, if any
func (c *AirTableChecker) Check(ctx context.Context, rateSet string) error {
	missing := c.Missing(ctx, rateSet)
	if len(missing) == 0 {
		return nil
	}
	msg := "Air rate table(s) missing or empty: " + strings.Join(missing, ", ")
	c.logger.Error(msg, zap.String("rate_set", pricing.NormalizeRateSet(rateSet)))
	return &domain.ReferenceDataError{Message: msg}
}

// Invalidate drops every cached result
func (c *AirTableChecker) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string][]string)
	c.mu.Unlock()
}
