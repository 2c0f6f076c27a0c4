package logger

import (
	"fmt"
	"strings"

	"github.com/freightservices/quote-api/internal/config"
	"github.com/freightservices/quote-api/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the service logger. Every entry carries the service name
// and deployment environment so quote logs from staging and production can
// share one sink.
func NewLogger(cfg *config.LoggingConfig, appCfg *config.AppConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if strings.EqualFold(cfg.Format, "json") || appCfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "timestamp"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
	zapCfg.InitialFields = map[string]interface{}{
		"service":     appCfg.Name,
		"environment": appCfg.Environment,
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}

// ParseLevel maps a configured level name to a zap level, defaulting to info
func ParseLevel(name string) zapcore.Level {
	level, err := zapcore.ParseLevel(strings.TrimSpace(name))
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// WithQuote adds the quote id, mode and rate set to logger
func WithQuote(logger *zap.Logger, quote *domain.Quote) *zap.Logger {
	return logger.With(
		zap.String("quote_id", quote.QuoteID),
		zap.String("quote_type", string(quote.QuoteType)),
		zap.String("rate_set", quote.RateSet),
	)
}

// WithUser adds the account that owns a request to logger
func WithUser(logger *zap.Logger, userID uint, email string) *zap.Logger {
	return logger.With(
		zap.Uint("user_id", userID),
		zap.String("user_email", email),
	)
}
