package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/freightservices/quote-api/internal/auth"
	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/mapper"
	"github.com/freightservices/quote-api/internal/pricing"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetQuote loads a stored quote. The price is never recomputed; only the
// threshold flag is re-derived from the stored weight and total.
func (s *QuoteService) GetQuote(ctx context.Context, quoteID string) (*QuoteResult, error) {
	quote, err := s.quoteRepo.GetByQuoteID(ctx, strings.TrimSpace(quoteID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}

	meta := domain.ParseQuoteMetadata(quote.QuoteMetadata)
	return &QuoteResult{
		Quote:            quote,
		Metadata:         meta,
		ExceedsThreshold: pricing.CheckThresholds(quote.QuoteType, quote.Weight, quote.Total) != "",
	}, nil
}

// GetQuoteDetail returns the re-display view with the caller's email permissions
func (s *QuoteService) GetQuoteDetail(ctx context.Context, quoteID string) (*domain.QuoteDetailResponse, error) {
	result, err := s.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	detail := mapper.ToQuoteDetailResponse(result.Quote, result.Metadata)
	detail.QuoteEmailSMTPEnabled = s.mailEnabled()
	if userCtx, ok := auth.FromContext(ctx); ok {
		detail.CanRequestBookingEmail = true
		detail.CanSendQuoteEmail = detail.QuoteEmailSMTPEnabled && s.accountFor(ctx, userCtx).HasMailPrivileges()
	}
	return &detail, nil
}

// LookupQuote validates a typed quote id before loading it
func (s *QuoteService) LookupQuote(ctx context.Context, rawQuoteID string) (*domain.QuoteDetailResponse, error) {
	quoteID := strings.TrimSpace(rawQuoteID)
	if _, err := uuid.Parse(quoteID); err != nil {
		return nil, ErrInvalidQuoteID
	}
	return s.GetQuoteDetail(ctx, quoteID)
}

// ListQuotes returns the caller's quotes newest first. Super admins see every quote.
func (s *QuoteService) ListQuotes(ctx context.Context, page, pageSize int) (*domain.PaginatedResponse, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}

	var owner *uint
	if !userCtx.IsSuperAdmin() {
		owner = userCtx.UserIDPtr()
		if owner == nil {
			return nil, ErrUserContextRequired
		}
	}

	quotes, total, err := s.quoteRepo.List(ctx, owner, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	dtos := make([]domain.QuoteSummaryDTO, len(quotes))
	for i := range quotes {
		dtos[i] = mapper.ToQuoteSummaryDTO(&quotes[i])
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// accountFor loads the caller's account, falling back to the token claims
// when the account row is missing
func (s *QuoteService) accountFor(ctx context.Context, userCtx *auth.UserContext) *domain.User {
	if userCtx.UserID != 0 {
		user, err := s.userRepo.GetByID(ctx, userCtx.UserID)
		if err == nil {
			return user
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("Failed to load account", zap.Uint("user_id", userCtx.UserID), zap.Error(err))
		}
	}
	return &domain.User{
		ID:      userCtx.UserID,
		Email:   userCtx.Email,
		Name:    userCtx.DisplayName,
		Role:    userCtx.Role,
		RateSet: userCtx.RateSet,
	}
}
