package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/freightservices/quote-api/internal/auth"
	"github.com/freightservices/quote-api/internal/config"
	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/geo"
	"github.com/freightservices/quote-api/internal/geocode"
	"github.com/freightservices/quote-api/internal/http/handler"
	"github.com/freightservices/quote-api/internal/http/middleware"
	"github.com/freightservices/quote-api/internal/http/router"
	"github.com/freightservices/quote-api/internal/pricing"
	"github.com/freightservices/quote-api/internal/repository"
	"github.com/freightservices/quote-api/internal/service"
	"github.com/freightservices/quote-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	testAPIToken  = "test-api-token"
	testJWTSecret = "test-jwt-secret"
)

// formatOnlyZips accepts any well-formed ZIP
type formatOnlyZips struct{}

func (formatOnlyZips) Validate(_ context.Context, zip string) (bool, geocode.Reason) {
	if _, ok := domain.NormalizeZIP(zip); !ok {
		return false, geocode.ReasonInvalidFormat
	}
	return true, geocode.ReasonOK
}

type testServer struct {
	handler   http.Handler
	db        *gorm.DB
	validator *auth.JWTValidator
}

func newTestConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Name: "quote-api-test", Environment: "development"},
		ApiKey: config.ApiKeyConfig{Value: testAPIToken},
		Auth:   config.AuthConfig{JWTSecret: testJWTSecret},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"https://quote.example.com"},
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		},
		Security: config.SecurityConfig{
			ContentTypeNosniff: true,
			FrameOptions:       "DENY",
		},
		RateLimit: config.RateLimitConfig{Enabled: false, RequestsPerMinute: 100, ApiQuotePerMinute: 30},
	}
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.SeedAccessorials(t, db)
	testutil.SeedHotshotRates(t, db)
	testutil.SeedAirRates(t, db)
	testutil.SeedZipCoordinates(t, db)

	cfg := newTestConfig()
	logger := zap.NewNop()

	rateRepo := repository.NewRateRepository(db)
	userRepo := repository.NewUserRepository(db)
	catalog := service.NewAccessorialCatalog(repository.NewAccessorialRepository(db), logger)
	airTables := service.NewAirTableChecker(rateRepo, logger)
	distance := geo.NewDistanceCalculator(repository.NewZipCoordinateRepository(db))

	quoteService := service.NewQuoteService(
		repository.NewQuoteRepository(db),
		userRepo,
		repository.NewEmailQuoteRequestRepository(db),
		repository.NewEmailDispatchLogRepository(db),
		formatOnlyZips{},
		catalog,
		airTables,
		pricing.NewHotshotCalculator(rateRepo, distance),
		pricing.NewAirCalculator(rateRepo, logger),
		logger,
	)

	rt := router.NewRouter(
		cfg,
		logger,
		db,
		auth.NewMiddleware(cfg, logger),
		middleware.NewRateLimiter(&cfg.RateLimit, logger),
		handler.NewQuoteHandler(quoteService, catalog, logger),
		handler.NewEmailHandler(quoteService, logger),
		handler.NewAdminHandler(
			service.NewRateSetService(rateRepo, logger),
			service.NewCacheService(catalog, airTables, nil, logger),
			logger,
		),
		handler.NewAuthHandler(userRepo, logger),
	)

	return &testServer{
		handler:   rt.Setup(),
		db:        db,
		validator: auth.NewJWTValidator(&cfg.Auth),
	}
}

func (s *testServer) tokenFor(t *testing.T, user *domain.User) string {
	t.Helper()
	token, err := s.validator.IssueToken(&auth.UserContext{
		UserID:      user.ID,
		DisplayName: user.Name,
		Email:       user.Email,
		Role:        user.Role,
		RateSet:     user.RateSet,
	}, time.Hour)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, target, body, authorization string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "body: %s", w.Body.String())
}

func TestRouter_Health(t *testing.T) {
	s := setupServer(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))

	w = s.do(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var ready map[string]interface{}
	decodeBody(t, w, &ready)
	assert.Equal(t, "healthy", ready["status"])
}

func TestRouter_QuoteAPI(t *testing.T) {
	s := setupServer(t)
	bearer := "Bearer " + testAPIToken

	t.Run("token is required", func(t *testing.T) {
		w := s.do(jsonRequest(http.MethodPost, "/api/quote", `{}`, ""))
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = s.do(jsonRequest(http.MethodPost, "/api/quote", `{}`, "Bearer wrong"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	var created domain.QuoteAPIResponse
	t.Run("creates a hotshot quote", func(t *testing.T) {
		body := `{"origin":"30301","destination":"30303","weight":200,"accessorials":["Liftgate"]}`
		w := s.do(jsonRequest(http.MethodPost, "/api/quote", body, bearer))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		decodeBody(t, w, &created)
		assert.Equal(t, domain.QuoteTypeHotshot, created.QuoteType)
		assert.InDelta(t, 240.0, created.Total, 1e-9)
		assert.Equal(t, map[string]float64{"Liftgate": 75}, created.Metadata.Accessorials)
	})

	t.Run("bare token is accepted and quote is readable", func(t *testing.T) {
		require.NotEmpty(t, created.QuoteID)
		w := s.do(jsonRequest(http.MethodGet, "/api/quote/"+created.QuoteID, "", testAPIToken))
		require.Equal(t, http.StatusOK, w.Code)

		var got domain.QuoteAPIResponse
		decodeBody(t, w, &got)
		assert.Equal(t, created.QuoteID, got.QuoteID)
		assert.InDelta(t, created.Total, got.Total, 1e-9)
	})

	t.Run("unknown quote", func(t *testing.T) {
		w := s.do(jsonRequest(http.MethodGet, "/api/quote/00000000-0000-4000-8000-000000000000", "", bearer))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Quote not found"}`, w.Body.String())
	})

	t.Run("quote type must match exactly", func(t *testing.T) {
		body := `{"quote_type":"air","origin":"30301","destination":"60601","weight":100}`
		w := s.do(jsonRequest(http.MethodPost, "/api/quote", body, bearer))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid quote_type"}`, w.Body.String())
	})

	t.Run("field validation", func(t *testing.T) {
		body := `{"origin":"30301","destination":"30303","weight":10,"user_email":"not-an-email"}`
		w := s.do(jsonRequest(http.MethodPost, "/api/quote", body, bearer))
		require.Equal(t, http.StatusBadRequest, w.Code)

		var apiErr domain.APIError
		decodeBody(t, w, &apiErr)
		assert.Contains(t, apiErr.Errors, "user_email")
	})

	t.Run("input problems are joined", func(t *testing.T) {
		body := `{"origin":"30301","destination":"30303","weight":-5,"height":-1}`
		w := s.do(jsonRequest(http.MethodPost, "/api/quote", body, bearer))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Actual weight must be non-negative. Height must be non-negative."}`, w.Body.String())
	})

	t.Run("unknown user id", func(t *testing.T) {
		body := `{"user_id":424242,"origin":"30301","destination":"30303","weight":100}`
		w := s.do(jsonRequest(http.MethodPost, "/api/quote", body, bearer))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Unknown user_id."}`, w.Body.String())
	})

	t.Run("invalid json", func(t *testing.T) {
		w := s.do(jsonRequest(http.MethodPost, "/api/quote", `{"origin":`, bearer))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRouter_QuoteForm(t *testing.T) {
	s := setupServer(t)
	user := testutil.CreateTestUser(t, s.db, "shipper@example.com", domain.UserRoleCustomer)
	bearer := "Bearer " + s.tokenFor(t, user)

	t.Run("session is required", func(t *testing.T) {
		w := s.do(jsonRequest(http.MethodPost, "/quotes/new", `{}`, ""))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("form encoded submission", func(t *testing.T) {
		form := url.Values{
			"quote_type":    {"Hotshot"},
			"origin_zip":    {"30301"},
			"dest_zip":      {"30303"},
			"weight_actual": {"200"},
			"accessorials":  {"Liftgate"},
		}
		req := httptest.NewRequest(http.MethodPost, "/quotes/new", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Authorization", bearer)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

		w := s.do(req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp domain.QuoteFormResponse
		decodeBody(t, w, &resp)
		assert.InDelta(t, 240.0, resp.Price, 1e-9)
		assert.False(t, resp.ExceedsThreshold)

		var stored domain.Quote
		require.NoError(t, s.db.Where("quote_id = ?", resp.QuoteID).First(&stored).Error)
		assert.Equal(t, "203.0.113.7", stored.RequestIP)
		assert.Equal(t, user.Email, stored.UserEmail)
	})

	t.Run("every problem is listed", func(t *testing.T) {
		body := `{"quote_type":"Hotshot","origin_zip":"123","dest_zip":"30303","weight_actual":"heavy"}`
		w := s.do(jsonRequest(http.MethodPost, "/quotes/new", body, bearer))
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp domain.ValidationErrorResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, []string{
			"Origin ZIP must include at least 5 digits.",
			"Actual weight is required and must be a number.",
		}, resp.Errors)
	})
}

func TestRouter_QuoteLookup(t *testing.T) {
	s := setupServer(t)
	user := testutil.CreateTestUser(t, s.db, "lookup@example.com", domain.UserRoleCustomer)
	bearer := "Bearer " + s.tokenFor(t, user)

	w := s.do(jsonRequest(http.MethodPost, "/quotes/lookup", `{"quote_id":"not-a-uuid"}`, bearer))
	require.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr domain.APIError
	decodeBody(t, w, &apiErr)
	assert.Equal(t, service.MsgInvalidQuoteID, apiErr.Detail)

	w = s.do(jsonRequest(http.MethodPost, "/quotes/lookup", `{"quote_id":"00000000-0000-4000-8000-000000000000"}`, bearer))
	require.Equal(t, http.StatusNotFound, w.Code)
	decodeBody(t, w, &apiErr)
	assert.Equal(t, service.MsgQuoteNotFound, apiErr.Detail)
}

func TestRouter_AccessorialOptions(t *testing.T) {
	s := setupServer(t)
	user := testutil.CreateTestUser(t, s.db, "options@example.com", domain.UserRoleCustomer)
	bearer := "Bearer " + s.tokenFor(t, user)

	w := s.do(jsonRequest(http.MethodGet, "/quotes/accessorials?quote_type=Hotshot", "", bearer))
	require.Equal(t, http.StatusOK, w.Code)
	var resp domain.AccessorialOptionsResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, []string{"Liftgate", "Residential", "Inside Delivery"}, resp.Options)

	w = s.do(jsonRequest(http.MethodGet, "/quotes/accessorials?quote_type=Ocean", "", bearer))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_AdminCaches(t *testing.T) {
	s := setupServer(t)
	customer := testutil.CreateTestUser(t, s.db, "customer@example.com", domain.UserRoleCustomer)
	admin := testutil.CreateTestUser(t, s.db, "admin@example.com", domain.UserRoleSuperAdmin)

	w := s.do(jsonRequest(http.MethodPost, "/admin/caches/invalidate", "", "Bearer "+s.tokenFor(t, customer)))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(jsonRequest(http.MethodPost, "/admin/caches/invalidate", "", "Bearer "+s.tokenFor(t, admin)))
	require.Equal(t, http.StatusOK, w.Code)
	var resp domain.CacheInvalidationResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, []string{service.CacheAccessorials, service.CacheAirRateTables}, resp.Cleared)
}

func TestRouter_AuthMe(t *testing.T) {
	s := setupServer(t)
	user := testutil.CreateTestUser(t, s.db, "me@example.com", domain.UserRoleEmployee)

	w := s.do(jsonRequest(http.MethodGet, "/auth/me", "", "Bearer "+s.tokenFor(t, user)))
	require.Equal(t, http.StatusOK, w.Code)
	var resp domain.AuthUserDTO
	decodeBody(t, w, &resp)
	assert.Equal(t, "me@example.com", resp.Email)
	assert.Equal(t, "Test Co", resp.Company)
	assert.False(t, resp.HasMailPrivileges)
}
