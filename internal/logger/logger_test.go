package logger_test

import (
	"testing"

	"github.com/freightservices/quote-api/internal/config"
	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, logger.ParseLevel(" WARN "))
	assert.Equal(t, zapcore.InfoLevel, logger.ParseLevel("verbose"))
	assert.Equal(t, zapcore.InfoLevel, logger.ParseLevel(""))
}

func TestNewLogger_Level(t *testing.T) {
	log, err := logger.NewLogger(
		&config.LoggingConfig{Level: "warn", Format: "json"},
		&config.AppConfig{Name: "quote-api", Environment: "staging"},
	)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestWithQuoteAndUser(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	quote := &domain.Quote{QuoteID: "q-1", QuoteType: domain.QuoteTypeAir, RateSet: "agr"}
	logger.WithUser(logger.WithQuote(base, quote), 7, "shipper@example.com").Info("Quote created")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "q-1", fields["quote_id"])
	assert.Equal(t, "Air", fields["quote_type"])
	assert.Equal(t, "agr", fields["rate_set"])
	assert.Equal(t, uint64(7), fields["user_id"])
	assert.Equal(t, "shipper@example.com", fields["user_email"])
}
