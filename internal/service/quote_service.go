package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/freightservices/quote-api/internal/auth"
	"github.com/freightservices/quote-api/internal/config"
	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/geo"
	"github.com/freightservices/quote-api/internal/geocode"
	"github.com/freightservices/quote-api/internal/logger"
	"github.com/freightservices/quote-api/internal/mail"
	"github.com/freightservices/quote-api/internal/metrics"
	"github.com/freightservices/quote-api/internal/pricing"
	"github.com/freightservices/quote-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ZipChecker validates a US ZIP code
type ZipChecker interface {
	Validate(ctx context.Context, zip string) (bool, geocode.Reason)
}

// QuoteResult is a persisted or re-loaded quote with its parsed metadata
type QuoteResult struct {
	Quote            *domain.Quote
	Metadata         domain.QuoteMetadata
	ExceedsThreshold bool
}

// QuoteService runs the quote pipeline: validation, billable weight, rate
// lookup, accessorials, threshold checks and persistence
type QuoteService struct {
	quoteRepo        *repository.QuoteRepository
	userRepo         *repository.UserRepository
	emailRequestRepo *repository.EmailQuoteRequestRepository
	dispatchRepo     *repository.EmailDispatchLogRepository
	zips             ZipChecker
	catalog          *AccessorialCatalog
	airTables        *AirTableChecker
	hotshot          *pricing.HotshotCalculator
	air              *pricing.AirCalculator
	mailer           mail.Sender
	mailCfg          config.MailConfig
	logger           *zap.Logger
}

// NewQuoteService creates a new QuoteService instance
func NewQuoteService(
	quoteRepo *repository.QuoteRepository,
	userRepo *repository.UserRepository,
	emailRequestRepo *repository.EmailQuoteRequestRepository,
	dispatchRepo *repository.EmailDispatchLogRepository,
	zips ZipChecker,
	catalog *AccessorialCatalog,
	airTables *AirTableChecker,
	hotshot *pricing.HotshotCalculator,
	air *pricing.AirCalculator,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo:        quoteRepo,
		userRepo:         userRepo,
		emailRequestRepo: emailRequestRepo,
		dispatchRepo:     dispatchRepo,
		zips:             zips,
		catalog:          catalog,
		airTables:        airTables,
		hotshot:          hotshot,
		air:              air,
		logger:           logger,
	}
}

// SetMailSender enables the quote email features
func (s *QuoteService) SetMailSender(sender mail.Sender, cfg config.MailConfig) {
	s.mailer = sender
	s.mailCfg = cfg
}

// quoteInput is the validated input shared by the form and API paths
type quoteInput struct {
	quoteType    domain.QuoteType
	origin       string
	destination  string
	actualWeight float64
	pieces       int
	length       float64
	width        float64
	height       float64
	dimOverride  float64
	accessorials []string
	rateSet      string
	userID       *uint
	userEmail    string
	requestIP    string
	warnings     []string
}

// CreateQuoteFromForm handles the interactive quote form. Every independent
// input problem is collected and returned together as *domain.ValidationErrors.
// The air piece limit blocks the quote on this path.
func (s *QuoteService) CreateQuoteFromForm(ctx context.Context, req *domain.QuoteFormRequest, clientIP string) (*QuoteResult, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	var errs []string

	quoteType := domain.QuoteTypeAir
	typeValid := true
	if strings.TrimSpace(req.QuoteType) != "" {
		quoteType, typeValid = domain.ParseQuoteType(req.QuoteType)
		if !typeValid {
			quoteType = domain.QuoteTypeAir
			errs = append(errs, "Quote type must be Hotshot or Air.")
		}
	}

	origin, destination, zipErrs := s.validateZIPs(ctx, req.OriginZIP(), req.DestinationZIP())
	errs = append(errs, zipErrs...)

	weightActual := 0.0
	if raw := strings.TrimSpace(string(req.WeightActual)); raw == "" {
		errs = append(errs, "Actual weight is required and must be a number.")
	} else if v, err := strconv.ParseFloat(raw, 64); err != nil || !isFinite(v) {
		errs = append(errs, "Actual weight is required and must be a number.")
	} else if v < 0 {
		errs = append(errs, "Actual weight must be non-negative.")
	} else {
		weightActual = v
	}

	pieces := 1
	if raw := strings.TrimSpace(string(req.Pieces)); raw != "" {
		if v, err := strconv.Atoi(raw); err != nil {
			errs = append(errs, "Pieces must be a whole number.")
		} else if v < 1 {
			errs = append(errs, "Pieces must be at least 1.")
		} else {
			pieces = v
		}
	}

	parseDim := func(label string, value domain.FormValue) float64 {
		raw := strings.TrimSpace(string(value))
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !isFinite(v) {
			errs = append(errs, label+" must be a number.")
			return 0
		}
		if v < 0 {
			errs = append(errs, label+" must be non-negative.")
			return 0
		}
		return v
	}
	length := parseDim("Length", req.Length)
	width := parseDim("Width", req.Width)
	height := parseDim("Height", req.Height)

	dimOverride := 0.0
	if raw := strings.TrimSpace(string(req.WeightDim)); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		switch {
		case err != nil || !isFinite(v):
			errs = append(errs, "Dimensional weight must be a number.")
		case v < 0:
			errs = append(errs, "Dimensional weight must be non-negative.")
		default:
			dimOverride = v
		}
	}

	if typeValid {
		bw := pricing.ComputeBillableWeight(weightActual, length, width, height, dimOverride, pieces)
		if msg := pricing.CheckAirPieceLimit(quoteType, weightActual, pieces, bw.Dimensional); msg != "" {
			errs = append(errs, msg)
		}
	}

	if len(errs) > 0 {
		metrics.QuotesTotal.WithLabelValues(string(quoteType), metrics.OutcomeInvalid).Inc()
		return nil, &domain.ValidationErrors{Messages: errs}
	}

	override := ""
	if userCtx.IsSuperAdmin() {
		override = req.RateSet
	}
	acct := s.resolveAccount(ctx, userCtx.UserIDPtr(), userCtx.Email, userCtx.RateSet, override)
	if acct.unknown {
		// Session for a deleted account; the quote keeps only the claim email
		s.logger.Warn("Quote user not found, saving quote without account",
			zap.Uint("user_id", userCtx.UserID),
		)
	}

	return s.priceAndPersist(ctx, &quoteInput{
		quoteType:    quoteType,
		origin:       origin,
		destination:  destination,
		actualWeight: weightActual,
		pieces:       pieces,
		length:       length,
		width:        width,
		height:       height,
		dimOverride:  dimOverride,
		accessorials: req.Accessorials,
		rateSet:      acct.rateSet,
		userID:       acct.userID,
		userEmail:    acct.email,
		requestIP:    clientIP,
	})
}

// CreateQuote handles the JSON API. quote_type must be exactly Hotshot or Air
// (blank means Hotshot). The air piece limit is recorded as a warning here.
func (s *QuoteService) CreateQuote(ctx context.Context, req *domain.CreateQuoteAPIRequest, clientIP string) (*QuoteResult, error) {
	quoteType := domain.QuoteTypeHotshot
	switch req.QuoteType {
	case "":
	case string(domain.QuoteTypeHotshot), string(domain.QuoteTypeAir):
		quoteType = domain.QuoteType(req.QuoteType)
	default:
		return nil, ErrInvalidQuoteType
	}

	var errs []string
	origin, destination, zipErrs := s.validateZIPs(ctx, req.Origin, req.Destination)
	errs = append(errs, zipErrs...)

	if req.Weight < 0 || !isFinite(req.Weight) {
		errs = append(errs, "Actual weight must be non-negative.")
	}
	pieces := 1
	if req.Pieces != nil {
		if *req.Pieces < 1 {
			errs = append(errs, "Pieces must be at least 1.")
		} else {
			pieces = *req.Pieces
		}
	}
	for _, dim := range []struct {
		label string
		value float64
	}{
		{"Length", req.Length},
		{"Width", req.Width},
		{"Height", req.Height},
		{"Dimensional weight", req.DimWeight},
	} {
		if dim.value < 0 || !isFinite(dim.value) {
			errs = append(errs, dim.label+" must be non-negative.")
		}
	}

	if len(errs) > 0 {
		metrics.QuotesTotal.WithLabelValues(string(quoteType), metrics.OutcomeInvalid).Inc()
		return nil, &domain.ValidationErrors{Messages: errs}
	}

	bw := pricing.ComputeBillableWeight(req.Weight, req.Length, req.Width, req.Height, req.DimWeight, pieces)
	var warnings []string
	if msg := pricing.CheckAirPieceLimit(quoteType, req.Weight, pieces, bw.Dimensional); msg != "" {
		warnings = append(warnings, msg)
	}

	acct := s.resolveAccount(ctx, req.UserID, req.UserEmail, "", req.RateSet)
	if acct.unknown {
		metrics.QuotesTotal.WithLabelValues(string(quoteType), metrics.OutcomeInvalid).Inc()
		return nil, &domain.ValidationErrors{Messages: []string{MsgUnknownUserID}}
	}

	return s.priceAndPersist(ctx, &quoteInput{
		quoteType:    quoteType,
		origin:       origin,
		destination:  destination,
		actualWeight: req.Weight,
		pieces:       pieces,
		length:       req.Length,
		width:        req.Width,
		height:       req.Height,
		dimOverride:  req.DimWeight,
		accessorials: req.Accessorials,
		rateSet:      acct.rateSet,
		userID:       acct.userID,
		userEmail:    acct.email,
		requestIP:    clientIP,
		warnings:     warnings,
	})
}

// validateZIPs checks both ZIPs without short-circuiting and returns their
// normalized forms
func (s *QuoteService) validateZIPs(ctx context.Context, rawOrigin, rawDestination string) (string, string, []string) {
	var errs []string
	check := func(label, raw string) string {
		valid, reason := s.zips.Validate(ctx, raw)
		if valid {
			normalized, _ := domain.NormalizeZIP(raw)
			return normalized
		}
		if reason == geocode.ReasonInvalidFormat {
			errs = append(errs, label+" ZIP must include at least 5 digits.")
		} else {
			errs = append(errs, label+" ZIP could not be validated with Google Places.")
		}
		return strings.TrimSpace(raw)
	}
	origin := check("Origin", rawOrigin)
	destination := check("Destination", rawDestination)
	return origin, destination, errs
}

type quoteAccount struct {
	rateSet string
	email   string
	userID  *uint
	// unknown is set when userID names no account; userID is then nil
	unknown bool
}

// resolveAccount picks the rate set (override, then account, then claim) and
// the account and email stored on the quote
func (s *QuoteService) resolveAccount(ctx context.Context, userID *uint, email, claimRateSet, override string) quoteAccount {
	acct := quoteAccount{rateSet: claimRateSet, email: email, userID: userID}
	if userID != nil {
		user, err := s.userRepo.GetByID(ctx, *userID)
		switch {
		case err == nil:
			acct.rateSet = user.RateSet
			if acct.email == "" {
				acct.email = user.Email
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			acct.userID = nil
			acct.unknown = true
		default:
			s.logger.Warn("Failed to load quote user, using default rate set",
				zap.Uint("user_id", *userID),
				zap.Error(err),
			)
		}
	}
	if strings.TrimSpace(override) != "" {
		acct.rateSet = override
	}
	acct.rateSet = pricing.NormalizeRateSet(acct.rateSet)
	return acct
}

func (s *QuoteService) priceAndPersist(ctx context.Context, in *quoteInput) (*QuoteResult, error) {
	bw := pricing.ComputeBillableWeight(in.actualWeight, in.length, in.width, in.height, in.dimOverride, in.pieces)
	rateSet := pricing.NormalizeRateSet(in.rateSet)

	result, err := s.lookupRate(ctx, in, bw.Billable, rateSet)
	if err != nil {
		var refErr *domain.ReferenceDataError
		if errors.As(err, &refErr) {
			metrics.QuotesTotal.WithLabelValues(string(in.quoteType), metrics.OutcomeReferenceError).Inc()
		} else {
			metrics.QuotesTotal.WithLabelValues(string(in.quoteType), metrics.OutcomeFailed).Inc()
		}
		return nil, err
	}

	catalog, err := s.catalog.Get(ctx)
	if err != nil {
		metrics.QuotesTotal.WithLabelValues(string(in.quoteType), metrics.OutcomeFailed).Inc()
		return nil, err
	}
	breakdown := pricing.ApplyAccessorials(in.quoteType, in.accessorials, catalog, result.Linehaul)
	total := breakdown.FinalPrice

	warnings := append([]string{}, in.warnings...)
	if len(in.warnings) > 0 {
		metrics.QuoteThresholdWarningsTotal.WithLabelValues(string(in.quoteType), "piece_limit").Inc()
	}
	threshold := pricing.CheckThresholds(in.quoteType, bw.Billable, total)
	if threshold != "" {
		warnings = append(warnings, threshold)
		metrics.QuoteThresholdWarningsTotal.WithLabelValues(string(in.quoteType), "threshold").Inc()
	}

	meta := domain.NewQuoteMetadata(breakdown.Items, result.Miles, in.pieces, result.Details)
	metaJSON, err := meta.JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode quote metadata: %w", err)
	}

	quote := &domain.Quote{
		QuoteID:       uuid.NewString(),
		QuoteType:     in.quoteType,
		Origin:        in.origin,
		Destination:   in.destination,
		Pieces:        in.pieces,
		Length:        in.length,
		Width:         in.width,
		Height:        in.height,
		ActualWeight:  in.actualWeight,
		DimWeight:     bw.Dimensional,
		Weight:        bw.Billable,
		WeightMethod:  bw.Method,
		RateSet:       rateSet,
		Zone:          result.Zone,
		Total:         total,
		QuoteMetadata: metaJSON,
		Warnings:      strings.Join(warnings, "\n"),
		UserID:        in.userID,
		UserEmail:     in.userEmail,
		RequestIP:     in.requestIP,
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		metrics.QuotesTotal.WithLabelValues(string(in.quoteType), metrics.OutcomeFailed).Inc()
		if errors.Is(err, repository.ErrDuplicateKey) {
			s.logger.Warn("Quote id collision", zap.String("quote_id", quote.QuoteID))
			return nil, ErrQuoteIDConflict
		}
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	metrics.QuotesTotal.WithLabelValues(string(in.quoteType), metrics.OutcomeCreated).Inc()
	logger.WithQuote(s.logger, quote).Info("Quote created",
		zap.String("zone", quote.Zone),
		zap.Float64("weight", quote.Weight),
		zap.Float64("total", quote.Total),
		zap.Int("warnings", len(warnings)),
	)

	return &QuoteResult{
		Quote:            quote,
		Metadata:         meta,
		ExceedsThreshold: threshold != "",
	}, nil
}

func (s *QuoteService) lookupRate(ctx context.Context, in *quoteInput, billable float64, rateSet string) (*pricing.Result, error) {
	if in.quoteType.IsAir() {
		if err := s.airTables.Check(ctx, rateSet); err != nil {
			return nil, err
		}
		return s.air.Quote(ctx, in.origin, in.destination, billable, rateSet)
	}

	result, err := s.hotshot.Quote(ctx, in.origin, in.destination, billable, rateSet)
	if err != nil {
		if errors.Is(err, geo.ErrUnknownZIP) || errors.Is(err, pricing.ErrHotshotRateNotFound) {
			s.logger.Warn("Hotshot quote calculation failed",
				zap.String("origin", in.origin),
				zap.String("destination", in.destination),
				zap.String("rate_set", rateSet),
				zap.Error(err),
			)
			return nil, &domain.ReferenceDataError{Message: "Hotshot quote calculation failed: " + err.Error()}
		}
		return nil, err
	}
	return result, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
