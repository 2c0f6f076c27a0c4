package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/freightservices/quote-api/internal/auth"
	"github.com/freightservices/quote-api/internal/config"
	"github.com/freightservices/quote-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-for-quotes"

func createTestMiddleware() *auth.Middleware {
	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: testSecret, Issuer: "quote-tool"},
	}
	return auth.NewMiddleware(cfg, zap.NewNop())
}

func issue(t *testing.T, m *auth.Middleware, user *auth.UserContext) string {
	token, err := m.Validator().IssueToken(user, time.Hour)
	require.NoError(t, err)
	return token
}

func TestMiddleware_Authenticate_ValidToken(t *testing.T) {
	m := createTestMiddleware()
	token := issue(t, m, &auth.UserContext{
		UserID:      42,
		Email:       "ops@example.com",
		DisplayName: "Ops",
		Role:        domain.UserRoleEmployee,
		RateSet:     "agr",
	})

	var captured *auth.UserContext
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)
	assert.Equal(t, uint(42), captured.UserID)
	assert.Equal(t, "ops@example.com", captured.Email)
	assert.Equal(t, domain.UserRoleEmployee, captured.Role)
	assert.Equal(t, "agr", captured.RateSet)
}

func TestMiddleware_Authenticate_Rejects(t *testing.T) {
	m := createTestMiddleware()

	other := auth.NewJWTValidator(&config.AuthConfig{JWTSecret: "another-secret", Issuer: "quote-tool"})
	foreign, err := other.IssueToken(&auth.UserContext{UserID: 1}, time.Hour)
	require.NoError(t, err)

	expired, err := m.Validator().IssueToken(&auth.UserContext{UserID: 1}, -time.Minute)
	require.NoError(t, err)

	noneToken := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1", "iss": "quote-tool"})
	unsigned, err := noneToken.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"wrong secret", "Bearer " + foreign},
		{"expired", "Bearer " + expired},
		{"unsigned", "Bearer " + unsigned},
		{"garbage", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))
			req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, called)
		})
	}
}

func TestJWTValidator_RejectsZeroSubject(t *testing.T) {
	v := auth.NewJWTValidator(&config.AuthConfig{JWTSecret: testSecret})
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "0",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = v.ValidateToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestMiddleware_RequireRole(t *testing.T) {
	m := createTestMiddleware()
	handler := m.RequireRole(domain.UserRoleSuperAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name     string
		user     *auth.UserContext
		expected int
	}{
		{"no user", nil, http.StatusForbidden},
		{"customer", &auth.UserContext{UserID: 1, Role: domain.UserRoleCustomer}, http.StatusForbidden},
		{"super admin", &auth.UserContext{UserID: 2, Role: domain.UserRoleSuperAdmin}, http.StatusNoContent},
		{"super admin mixed case", &auth.UserContext{UserID: 3, Role: "Super_Admin"}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/caches/invalidate", nil)
			if tt.user != nil {
				req = req.WithContext(auth.WithUserContext(req.Context(), tt.user))
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestExtractAPIToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"abc", "abc", true},
		{"  abc  ", "abc", true},
		{"Bearer", "", false},
		{"Bearer a b", "", false},
		{"Token abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := auth.ExtractAPIToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestAPITokenMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		header   string
		status   int
		message  string
	}{
		{"not configured", "", "Bearer secret", http.StatusInternalServerError, "API authentication is not configured."},
		{"missing header", "secret", "", http.StatusUnauthorized, "Missing Authorization header."},
		{"malformed header", "secret", "Bearer", http.StatusUnauthorized, "Invalid Authorization header."},
		{"wrong token", "secret", "Bearer nope", http.StatusForbidden, "Invalid API token."},
		{"bearer token", "secret", "Bearer secret", http.StatusOK, ""},
		{"bare token", "secret", "secret", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := auth.APITokenMiddleware(tt.expected, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/quote", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.message != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.message, body["error"])
			}
		})
	}
}
