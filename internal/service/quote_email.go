package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/freightservices/quote-api/internal/auth"
	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/logger"
	"github.com/freightservices/quote-api/internal/mail"
	"github.com/freightservices/quote-api/internal/mapper"
	"github.com/freightservices/quote-api/internal/metrics"
	"go.uber.org/zap"
)

// EmailRequestKind selects the booking or volume pricing request workflow
type EmailRequestKind string

const (
	EmailRequestBooking EmailRequestKind = "booking"
	EmailRequestVolume  EmailRequestKind = "volume"
)

type emailRequestTemplate struct {
	adminFee      float64
	heading       string
	intro         string
	subjectPrefix string
}

var emailRequestTemplates = map[EmailRequestKind]emailRequestTemplate{
	EmailRequestBooking: {
		adminFee:      15.0,
		heading:       "Email Booking Request",
		intro:         "I'd like to go ahead and book the following quote",
		subjectPrefix: "New Booking request",
	},
	EmailRequestVolume: {
		adminFee:      0,
		heading:       "Email Volume Pricing Request",
		intro:         "I'd like to move forward with volume pricing for the following quote",
		subjectPrefix: "Volume pricing request",
	},
}

func (s *QuoteService) mailEnabled() bool {
	return s.mailer != nil && s.mailer.Enabled()
}

// EmailQuoteToUser sends a plain-text copy of a stored quote to the caller.
// Only accounts with mail privileges may use it, and only when SMTP is on.
func (s *QuoteService) EmailQuoteToUser(ctx context.Context, quoteID string, returnQuote bool) (*domain.EmailSelfResponse, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}
	if !s.mailEnabled() {
		return nil, ErrMailDisabled
	}

	account := s.accountFor(ctx, userCtx)
	if !account.HasMailPrivileges() {
		return nil, ErrMailPrivilegesRequired
	}
	recipient := strings.TrimSpace(account.Email)
	if recipient == "" {
		return nil, fmt.Errorf("%w: account has no email address", ErrInvalidInput)
	}

	result, err := s.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	quote := result.Quote

	msg := &mail.Message{
		To:      recipient,
		Subject: mail.QuoteCopySubject(quote.QuoteID),
		Body:    mail.QuoteCopyBody(quote, result.Metadata, returnQuote, s.mailCfg.QuoteToolURL, s.mailCfg.UnsubscribeURL),
		Feature: mail.FeatureQuoteCopy,
		Headers: mail.QuoteCopyHeaders(s.mailCfg.UnsubscribeURL),
	}

	log := logger.WithUser(logger.WithQuote(s.logger, quote), account.ID, recipient)
	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.EmailsSentTotal.WithLabelValues(mail.FeatureQuoteCopy, metrics.OutcomeFailed).Inc()
		log.Error("Failed to send quote copy", zap.Error(err))
		return nil, ErrEmailSendFailed
	}
	metrics.EmailsSentTotal.WithLabelValues(mail.FeatureQuoteCopy, metrics.OutcomeSent).Inc()

	entry := &domain.EmailDispatchLog{
		Feature:   mail.FeatureQuoteCopy,
		UserID:    userCtx.UserIDPtr(),
		Recipient: recipient,
	}
	if err := s.dispatchRepo.Create(ctx, entry); err != nil {
		log.Warn("Failed to record email dispatch", zap.Error(err))
	}

	return &domain.EmailSelfResponse{
		Message:   fmt.Sprintf(MsgQuoteEmailSentTmpl, recipient),
		Recipient: recipient,
	}, nil
}

// EmailRequestForm returns the pre-filled booking or volume pricing request for a quote
func (s *QuoteService) EmailRequestForm(ctx context.Context, quoteID string, kind EmailRequestKind) (*domain.EmailRequestFormDTO, error) {
	tmpl, ok := emailRequestTemplates[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown email request kind %q", ErrInvalidInput, kind)
	}

	result, err := s.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	form := &domain.EmailRequestFormDTO{
		QuoteID:          result.Quote.QuoteID,
		Quote:            mapper.ToQuoteAPIResponse(result.Quote, result.Metadata),
		AccessorialNames: strings.Join(result.Metadata.AccessorialNames(), ", "),
		AdminFee:         tmpl.adminFee,
		TotalWithFee:     result.Quote.Total + tmpl.adminFee,
		PageHeading:      tmpl.heading,
		EmailIntroLine:   tmpl.intro,
		SubjectPrefix:    tmpl.subjectPrefix,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		account := s.accountFor(ctx, userCtx)
		form.UserName = account.Name
		form.UserCompany = account.Company
	}
	return form, nil
}

// CreateEmailRequest stores the shipper and consignee details of a booking request
func (s *QuoteService) CreateEmailRequest(ctx context.Context, quoteID string, req *domain.CreateEmailQuoteRequest) (*domain.EmailQuoteRequestDTO, error) {
	result, err := s.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	totalWeight := req.TotalWeight
	if totalWeight == 0 {
		totalWeight = result.Quote.Weight
	}

	record := &domain.EmailQuoteRequest{
		QuoteID:             result.Quote.QuoteID,
		ShipperName:         strings.TrimSpace(req.ShipperName),
		ShipperAddress:      strings.TrimSpace(req.ShipperAddress),
		ShipperContact:      strings.TrimSpace(req.ShipperContact),
		ShipperPhone:        strings.TrimSpace(req.ShipperPhone),
		ConsigneeName:       strings.TrimSpace(req.ConsigneeName),
		ConsigneeAddress:    strings.TrimSpace(req.ConsigneeAddress),
		ConsigneeContact:    strings.TrimSpace(req.ConsigneeContact),
		ConsigneePhone:      strings.TrimSpace(req.ConsigneePhone),
		TotalWeight:         totalWeight,
		SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
	}
	if err := s.emailRequestRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save email request: %w", err)
	}

	s.logger.Info("Email request saved",
		zap.String("quote_id", record.QuoteID),
		zap.Uint("request_id", record.ID),
	)
	dto := mapper.ToEmailQuoteRequestDTO(record)
	return &dto, nil
}

// IsMailError reports whether err came from the quote email workflow
func IsMailError(err error) bool {
	return errors.Is(err, ErrMailDisabled) || errors.Is(err, ErrMailPrivilegesRequired) || errors.Is(err, ErrEmailSendFailed)
}
