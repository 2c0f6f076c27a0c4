package repository

import (
	"context"

	"github.com/freightservices/quote-api/internal/domain"
	"gorm.io/gorm"
)

type AccessorialRepository struct {
	db *gorm.DB
}

func NewAccessorialRepository(db *gorm.DB) *AccessorialRepository {
	return &AccessorialRepository{db: db}
}

func (r *AccessorialRepository) Create(ctx context.Context, accessorial *domain.Accessorial) error {
	return r.db.WithContext(ctx).Create(accessorial).Error
}

// List returns the catalog in id order, which is the display order
func (r *AccessorialRepository) List(ctx context.Context) ([]domain.Accessorial, error) {
	var accessorials []domain.Accessorial
	err := r.db.WithContext(ctx).Order("id ASC").Find(&accessorials).Error
	return accessorials, err
}
