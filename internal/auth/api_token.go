package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ExtractAPIToken returns the token from an Authorization header. It accepts
// "Bearer <token>" or a single bare token; a lone "Bearer" is rejected.
func ExtractAPIToken(header string) (string, bool) {
	parts := strings.Fields(header)
	switch {
	case len(parts) == 2 && strings.EqualFold(parts[0], "bearer"):
		return parts[1], true
	case len(parts) == 1 && !strings.EqualFold(parts[0], "bearer"):
		return parts[0], true
	default:
		return "", false
	}
}

// APITokenMiddleware guards the JSON quote API with the shared API token
func APITokenMiddleware(expected string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expected == "" {
				logger.Error("API token requested but API_AUTH_TOKEN is not configured")
				writeTokenError(w, http.StatusInternalServerError, "API authentication is not configured.")
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				writeTokenError(w, http.StatusUnauthorized, "Missing Authorization header.")
				return
			}

			token, ok := ExtractAPIToken(header)
			if !ok {
				writeTokenError(w, http.StatusUnauthorized, "Invalid Authorization header.")
				return
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
				logger.Warn("invalid API token attempt",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeTokenError(w, http.StatusForbidden, "Invalid API token.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeTokenError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
