// Package testutil provides in-memory databases and reference data for tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/freightservices/quote-api/internal/database"
	"github.com/freightservices/quote-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory SQLite database with every table migrated
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open sqlite test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// EnableForeignKeys turns on SQLite foreign key enforcement for the single test connection
func EnableForeignKeys(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
}

// SeedAccessorials inserts a small catalog in display order
func SeedAccessorials(t *testing.T, db *gorm.DB) []domain.Accessorial {
	t.Helper()
	rows := []domain.Accessorial{
		{Name: "Liftgate", Amount: 75},
		{Name: "Residential", Amount: 35},
		{Name: "Guarantee", Amount: 25, IsPercentage: true},
		{Name: "Inside Delivery", Amount: 50},
	}
	require.NoError(t, db.Create(&rows).Error)
	return rows
}

// SeedHotshotRates loads default brackets plus an "agr" table covering short hauls only
func SeedHotshotRates(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []domain.HotshotRate{
		{Miles: 100, Zone: "A", PerLb: 0.5, MinCharge: 150, FuelPct: 0.1, RateSet: "default"},
		{Miles: 500, Zone: "B", PerLb: 0.9, MinCharge: 300, FuelPct: 0.1, RateSet: "default"},
		{Miles: 1000, Zone: "C", PerLb: 1.2, MinCharge: 450, FuelPct: 0.1, RateSet: "default"},
		{Miles: 99999, Zone: "X", PerLb: 1.5, PerMile: 2.5, MinCharge: 600, FuelPct: 0.1, RateSet: "default"},
		{Miles: 100, Zone: "A", PerLb: 0.4, MinCharge: 120, FuelPct: 0.1, RateSet: "agr"},
	}
	require.NoError(t, db.Create(&rows).Error)
}

// SeedAirRates loads a minimal set of air tables for the default rate set
func SeedAirRates(t *testing.T, db *gorm.DB) {
	t.Helper()
	zips := []domain.ZipZone{
		{Zipcode: "30301", DestZone: 3, Beyond: "N/A", RateSet: "default"},
		{Zipcode: "60601", DestZone: 5, Beyond: "B1", RateSet: "default"},
		{Zipcode: "10001", DestZone: 1, Beyond: "", RateSet: "default"},
	}
	costZones := []domain.CostZone{
		{Concat: "35", CostZone: "C7", RateSet: "default"},
		{Concat: "53", CostZone: "C7", RateSet: "default"},
		{Concat: "31", CostZone: "C2", RateSet: "default"},
	}
	airCosts := []domain.AirCostZone{
		{Zone: "C7", MinCharge: 400, PerLb: 1.25, WeightBreak: 100, RateSet: "default"},
		{Zone: "C2", MinCharge: 250, PerLb: 0.75, WeightBreak: 100, RateSet: "default"},
	}
	beyond := []domain.BeyondRate{
		{Zone: "B1", Rate: 60, UpToMiles: 25, RateSet: "default"},
	}
	require.NoError(t, db.Create(&zips).Error)
	require.NoError(t, db.Create(&costZones).Error)
	require.NoError(t, db.Create(&airCosts).Error)
	require.NoError(t, db.Create(&beyond).Error)
}

// SeedZipCoordinates loads centroids for the ZIPs used in tests
func SeedZipCoordinates(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []domain.ZipCoordinate{
		{Zip: "30301", Latitude: 33.7490, Longitude: -84.3880},
		{Zip: "30303", Latitude: 33.7525, Longitude: -84.3915},
		{Zip: "60601", Latitude: 41.8858, Longitude: -87.6181},
		{Zip: "10001", Latitude: 40.7506, Longitude: -73.9972},
	}
	require.NoError(t, db.Create(&rows).Error)
}

// CreateTestUser inserts a user with the given role
func CreateTestUser(t *testing.T, db *gorm.DB, email string, role domain.UserRole) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:   email,
		Name:    "Test User",
		Company: "Test Co",
		Role:    role,
		RateSet: "default",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
