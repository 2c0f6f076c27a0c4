package repository

import (
	"context"
	"time"

	"github.com/freightservices/quote-api/internal/domain"
	"gorm.io/gorm"
)

type EmailQuoteRequestRepository struct {
	db *gorm.DB
}

func NewEmailQuoteRequestRepository(db *gorm.DB) *EmailQuoteRequestRepository {
	return &EmailQuoteRequestRepository{db: db}
}

func (r *EmailQuoteRequestRepository) Create(ctx context.Context, req *domain.EmailQuoteRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// ListByQuoteID returns requests for a quote, newest first
func (r *EmailQuoteRequestRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]domain.EmailQuoteRequest, error) {
	var requests []domain.EmailQuoteRequest
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&requests).Error
	return requests, err
}

type EmailDispatchLogRepository struct {
	db *gorm.DB
}

func NewEmailDispatchLogRepository(db *gorm.DB) *EmailDispatchLogRepository {
	return &EmailDispatchLogRepository{db: db}
}

func (r *EmailDispatchLogRepository) Create(ctx context.Context, entry *domain.EmailDispatchLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CountSince counts dispatches for a feature and user since the given time
func (r *EmailDispatchLogRepository) CountSince(ctx context.Context, feature string, userID *uint, since time.Time) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.EmailDispatchLog{}).
		Where("feature = ? AND created_at >= ?", feature, since)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	err := query.Count(&count).Error
	return count, err
}
