package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/freightservices/quote-api/internal/domain"
	"gorm.io/gorm"
)

// RateRepository reads the hotshot and air rate tables. Every lookup is
// scoped to one rate set; callers decide on default fallback.
type RateRepository struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) *RateRepository {
	return &RateRepository{db: db}
}

// firstRow runs query.First and maps a missing row to found=false
func firstRow[T any](query *gorm.DB) (*T, bool, error) {
	var row T
	err := query.First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &row, true, nil
}

// HotshotZoneForMiles returns the zone of the smallest bracket with miles >= requested
func (r *RateRepository) HotshotZoneForMiles(ctx context.Context, miles float64, rateSet string) (string, bool, error) {
	row, found, err := firstRow[domain.HotshotRate](r.db.WithContext(ctx).
		Where("rate_set = ? AND miles >= ?", rateSet, miles).
		Order("miles ASC"))
	if err != nil || !found {
		return "", found, err
	}
	return row.Zone, true, nil
}

func (r *RateRepository) HotshotRateForZone(ctx context.Context, zone, rateSet string) (*domain.HotshotRate, bool, error) {
	return firstRow[domain.HotshotRate](r.db.WithContext(ctx).
		Where("zone = ? AND rate_set = ?", zone, rateSet).
		Order("miles ASC"))
}

func (r *RateRepository) ZipZone(ctx context.Context, zip, rateSet string) (*domain.ZipZone, bool, error) {
	return firstRow[domain.ZipZone](r.db.WithContext(ctx).
		Where("zipcode = ? AND rate_set = ?", zip, rateSet).
		Order("id ASC"))
}

func (r *RateRepository) CostZone(ctx context.Context, concat, rateSet string) (*domain.CostZone, bool, error) {
	return firstRow[domain.CostZone](r.db.WithContext(ctx).
		Where("concat = ? AND rate_set = ?", concat, rateSet).
		Order("id ASC"))
}

func (r *RateRepository) AirCostZone(ctx context.Context, zone, rateSet string) (*domain.AirCostZone, bool, error) {
	return firstRow[domain.AirCostZone](r.db.WithContext(ctx).
		Where("zone = ? AND rate_set = ?", zone, rateSet).
		Order("id ASC"))
}

func (r *RateRepository) BeyondRate(ctx context.Context, zone, rateSet string) (*domain.BeyondRate, bool, error) {
	return firstRow[domain.BeyondRate](r.db.WithContext(ctx).
		Where("zone = ? AND rate_set = ?", zone, rateSet).
		Order("up_to_miles ASC"))
}

// HasRows reports whether the table behind model exists and holds at least
// one row for any of the given rate sets
func (r *RateRepository) HasRows(ctx context.Context, model interface{}, rateSets ...string) (bool, error) {
	db := r.db.WithContext(ctx)
	if !db.Migrator().HasTable(model) {
		return false, nil
	}
	var count int64
	if err := db.Model(model).Where("rate_set IN ?", rateSets).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DistinctRateSets returns every non-empty rate_set value found in the rate tables
func (r *RateRepository) DistinctRateSets(ctx context.Context) ([]string, error) {
	models := []interface{}{
		&domain.HotshotRate{},
		&domain.AirCostZone{},
		&domain.ZipZone{},
		&domain.CostZone{},
		&domain.BeyondRate{},
	}

	seen := map[string]struct{}{}
	db := r.db.WithContext(ctx)
	for _, model := range models {
		if !db.Migrator().HasTable(model) {
			continue
		}
		var values []string
		if err := db.Model(model).Distinct("rate_set").Pluck("rate_set", &values).Error; err != nil {
			return nil, err
		}
		for _, v := range values {
			if v != "" {
				seen[v] = struct{}{}
			}
		}
	}

	sets := make([]string, 0, len(seen))
	for s := range seen {
		sets = append(sets, s)
	}
	sort.Strings(sets)
	return sets, nil
}

// Seed helpers used by tests and the reference data loader

func (r *RateRepository) CreateHotshotRates(ctx context.Context, rows []domain.HotshotRate) error {
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *RateRepository) CreateZipZones(ctx context.Context, rows []domain.ZipZone) error {
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *RateRepository) CreateCostZones(ctx context.Context, rows []domain.CostZone) error {
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *RateRepository) CreateAirCostZones(ctx context.Context, rows []domain.AirCostZone) error {
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *RateRepository) CreateBeyondRates(ctx context.Context, rows []domain.BeyondRate) error {
	return r.db.WithContext(ctx).Create(&rows).Error
}
