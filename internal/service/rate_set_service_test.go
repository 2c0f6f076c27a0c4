package service_test

import (
	"context"
	"testing"

	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/repository"
	"github.com/freightservices/quote-api/internal/service"
	"github.com/freightservices/quote-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRateSetService_Available(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedHotshotRates(t, db)
	require.NoError(t, db.Create(&domain.BeyondRate{Zone: "B9", Rate: 10, RateSet: "zeta"}).Error)

	svc := service.NewRateSetService(repository.NewRateRepository(db), zap.NewNop())
	sets, err := svc.Available(context.Background())
	require.NoError(t, err)

	codes := make([]string, len(sets))
	for i, s := range sets {
		codes[i] = s.Code
	}
	assert.Equal(t, []string{"default", "agr", "inin", "lsa", "mdcr", "meri", "swiba", "utn", "zeta"}, codes)
	assert.Equal(t, domain.RateSetDTO{Code: "agr", Name: "Anatomy Gifts Registry"}, sets[1])
	assert.Equal(t, "ZETA", sets[len(sets)-1].Name)
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate() { c.calls++ }

func TestCacheService(t *testing.T) {
	accessorials := &countingInvalidator{}
	airTables := &countingInvalidator{}
	zips := &countingInvalidator{}
	svc := service.NewCacheService(accessorials, airTables, zips, zap.NewNop())

	assert.True(t, svc.ClearZipCache())
	assert.Equal(t, []string{service.CacheAccessorials, service.CacheAirRateTables, service.CacheZipValidation}, svc.InvalidateAll())
	assert.Equal(t, 1, accessorials.calls)
	assert.Equal(t, 1, airTables.calls)
	assert.Equal(t, 2, zips.calls)

	empty := service.NewCacheService(nil, nil, nil, zap.NewNop())
	assert.False(t, empty.ClearAccessorialCache())
	assert.Empty(t, empty.InvalidateAll())
}
