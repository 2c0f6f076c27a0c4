package repository

import (
	"context"
	"fmt"

	"github.com/freightservices/quote-api/internal/domain"
	"gorm.io/gorm"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Create inserts a quote in its own transaction. A clash on quote_id is
// reported as ErrDuplicateKey.
func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("User").Create(quote).Error
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: quote_id %s", ErrDuplicateKey, quote.QuoteID)
	}
	return err
}

// GetByQuoteID returns gorm.ErrRecordNotFound when no quote has the public id
func (r *QuoteRepository) GetByQuoteID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).Where("quote_id = ?", quoteID).First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// List returns quotes newest first. A nil userID lists every quote.
func (r *QuoteRepository) List(ctx context.Context, userID *uint, page, pageSize int) ([]domain.Quote, int64, error) {
	var quotes []domain.Quote
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Quote{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(pageSize).Find(&quotes).Error
	return quotes, total, err
}
