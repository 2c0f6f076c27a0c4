package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/freightservices/quote-api/internal/auth"
	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/mapper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserRepository interface for dependency injection
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*domain.User, error)
}

type AuthHandler struct {
	userRepo UserRepository
	logger   *zap.Logger
}

func NewAuthHandler(userRepo UserRepository, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Me godoc
// @Summary Get current authenticated user
// @Description Returns the account behind the session token, with its rate set and mail privileges
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.AuthUserDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.userRepo.GetByID(r.Context(), userCtx.UserID)
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Accounts provisioned elsewhere may not have a row yet
		user = &domain.User{
			ID:      userCtx.UserID,
			Email:   userCtx.Email,
			Name:    userCtx.DisplayName,
			Role:    userCtx.Role,
			RateSet: userCtx.RateSet,
		}
	default:
		h.logger.Error("failed to load current user", zap.Uint("user_id", userCtx.UserID), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load current user")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToAuthUserDTO(user))
}
