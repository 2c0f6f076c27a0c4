package handler

import (
	"net/http"

	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/service"
	"go.uber.org/zap"
)

// AdminHandler serves rate set listing and reference cache maintenance
type AdminHandler struct {
	rateSets *service.RateSetService
	caches   *service.CacheService
	logger   *zap.Logger
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(rateSets *service.RateSetService, caches *service.CacheService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		rateSets: rateSets,
		caches:   caches,
		logger:   logger,
	}
}

// RateSets godoc
// @Summary List rate sets
// @Description Default first, then every preconfigured or loaded rate set
// @Tags Rate Sets
// @Produce json
// @Success 200 {array} domain.RateSetDTO
// @Security BearerAuth
// @Router /rate-sets [get]
func (h *AdminHandler) RateSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.rateSets.Available(r.Context())
	if err != nil {
		h.logger.Error("failed to list rate sets", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list rate sets")
		return
	}
	respondJSON(w, http.StatusOK, sets)
}

// InvalidateCaches godoc
// @Summary Clear the reference data caches
// @Description Run after editing accessorials, air rate tables or ZIP data
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.CacheInvalidationResponse
// @Failure 403 {string} string "Forbidden"
// @Security BearerAuth
// @Router /admin/caches/invalidate [post]
func (h *AdminHandler) InvalidateCaches(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, domain.CacheInvalidationResponse{Cleared: h.caches.InvalidateAll()})
}
