package repository

import (
	"context"
	"errors"

	"github.com/freightservices/quote-api/internal/domain"
	"gorm.io/gorm"
)

type ZipCoordinateRepository struct {
	db *gorm.DB
}

func NewZipCoordinateRepository(db *gorm.DB) *ZipCoordinateRepository {
	return &ZipCoordinateRepository{db: db}
}

// FindByZip returns nil without error when the ZIP has no centroid
func (r *ZipCoordinateRepository) FindByZip(ctx context.Context, zip string) (*domain.ZipCoordinate, error) {
	var coord domain.ZipCoordinate
	err := r.db.WithContext(ctx).First(&coord, "zip = ?", zip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coord, nil
}

func (r *ZipCoordinateRepository) CreateBatch(ctx context.Context, coords []domain.ZipCoordinate) error {
	if len(coords) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&coords, 500).Error
}
