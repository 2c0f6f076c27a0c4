package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/http/middleware"
	"github.com/freightservices/quote-api/internal/mapper"
	"github.com/freightservices/quote-api/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// QuoteHandler serves the quote form, the JSON quote API and quote re-display
type QuoteHandler struct {
	quoteService *service.QuoteService
	catalog      *service.AccessorialCatalog
	logger       *zap.Logger
}

// NewQuoteHandler creates a new QuoteHandler instance
func NewQuoteHandler(quoteService *service.QuoteService, catalog *service.AccessorialCatalog, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		catalog:      catalog,
		logger:       logger,
	}
}

// CreateFromForm godoc
// @Summary Create a quote from the quote form
// @Description Accepts form-encoded or JSON fields. Every input problem is reported together.
// @Tags Quotes
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body domain.QuoteFormRequest true "Quote form"
// @Success 200 {object} domain.QuoteFormResponse
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/new [post]
func (h *QuoteHandler) CreateFromForm(w http.ResponseWriter, r *http.Request) {
	req, err := h.readForm(w, r)
	if err != nil {
		respondErrors(w, []string{"Invalid request body."})
		return
	}

	result, err := h.quoteService.CreateQuoteFromForm(r.Context(), req, middleware.ClientIP(r))
	if err != nil {
		handleServiceError(w, h.logger, err, "create quote")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToQuoteFormResponse(result.Quote, result.Metadata, result.ExceedsThreshold))
}

func (h *QuoteHandler) readForm(w http.ResponseWriter, r *http.Request) (*domain.QuoteFormRequest, error) {
	req := &domain.QuoteFormRequest{}
	if isJSONRequest(r) {
		if err := decodeJSON(w, r, req); err != nil {
			return nil, err
		}
		return req, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	req.QuoteType = r.PostFormValue("quote_type")
	req.OriginZip = r.PostFormValue("origin_zip")
	req.Origin = r.PostFormValue("origin")
	req.DestZip = r.PostFormValue("dest_zip")
	req.Destination = r.PostFormValue("destination")
	req.WeightActual = domain.FormValue(r.PostFormValue("weight_actual"))
	req.Pieces = domain.FormValue(r.PostFormValue("pieces"))
	req.Length = domain.FormValue(r.PostFormValue("length"))
	req.Width = domain.FormValue(r.PostFormValue("width"))
	req.Height = domain.FormValue(r.PostFormValue("height"))
	req.WeightDim = domain.FormValue(r.PostFormValue("weight_dim"))
	req.Accessorials = domain.AccessorialSelection(r.PostForm["accessorials"])
	req.RateSet = r.PostFormValue("rate_set")
	return req, nil
}

// CreateAPI godoc
// @Summary Create a quote through the JSON API
// @Tags Quote API
// @Accept json
// @Produce json
// @Param request body domain.CreateQuoteAPIRequest true "Quote request"
// @Success 201 {object} domain.QuoteAPIResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 409 {object} domain.APIError
// @Failure 429 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/quote [post]
func (h *QuoteHandler) CreateAPI(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuoteAPIRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.quoteService.CreateQuote(r.Context(), &req, middleware.ClientIP(r))
	if err != nil {
		var vErr *domain.ValidationErrors
		var refErr *domain.ReferenceDataError
		switch {
		case errors.Is(err, service.ErrInvalidQuoteType):
			respondError(w, http.StatusBadRequest, service.MsgInvalidQuoteType)
		case errors.As(err, &vErr):
			respondError(w, http.StatusBadRequest, strings.Join(vErr.Messages, " "))
		case errors.As(err, &refErr):
			respondError(w, http.StatusBadRequest, refErr.Message)
		default:
			handleServiceError(w, h.logger, err, "create quote")
		}
		return
	}

	respondJSON(w, http.StatusCreated, mapper.ToQuoteAPIResponse(result.Quote, result.Metadata))
}

// GetAPI godoc
// @Summary Get a quote through the JSON API
// @Tags Quote API
// @Produce json
// @Param quoteId path string true "Quote ID"
// @Success 200 {object} domain.QuoteAPIResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/quote/{quoteId} [get]
func (h *QuoteHandler) GetAPI(w http.ResponseWriter, r *http.Request) {
	result, err := h.quoteService.GetQuote(r.Context(), chi.URLParam(r, "quoteId"))
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			respondError(w, http.StatusNotFound, service.MsgAPIQuoteNotFound)
			return
		}
		handleServiceError(w, h.logger, err, "load quote")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToQuoteAPIResponse(result.Quote, result.Metadata))
}

// GetByID godoc
// @Summary Re-display a stored quote
// @Tags Quotes
// @Produce json
// @Param quoteId path string true "Quote ID"
// @Success 200 {object} domain.QuoteDetailResponse
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{quoteId} [get]
func (h *QuoteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	detail, err := h.quoteService.GetQuoteDetail(r.Context(), chi.URLParam(r, "quoteId"))
	if err != nil {
		handleServiceError(w, h.logger, err, "load quote")
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// Lookup godoc
// @Summary Look up a quote by its Quote ID
// @Tags Quotes
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body domain.LookupQuoteRequest true "Quote ID"
// @Success 200 {object} domain.QuoteDetailResponse
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/lookup [post]
func (h *QuoteHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req domain.LookupQuoteRequest
	if isJSONRequest(r) {
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, service.MsgInvalidQuoteID)
			return
		}
	} else {
		req.QuoteID = r.FormValue("quote_id")
	}

	detail, err := h.quoteService.LookupQuote(r.Context(), req.QuoteID)
	if err != nil {
		handleServiceError(w, h.logger, err, "look up quote")
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// List godoc
// @Summary List quotes
// @Description The caller's quotes newest first; super admins see every quote
// @Tags Quotes
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.QuoteSummaryDTO}
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes [get]
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	result, err := h.quoteService.ListQuotes(r.Context(), page, pageSize)
	if err != nil {
		handleServiceError(w, h.logger, err, "list quotes")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// AccessorialOptions godoc
// @Summary List selectable accessorials
// @Description Guarantee is only offered for air quotes
// @Tags Quotes
// @Produce json
// @Param quote_type query string false "Hotshot or Air" default(Air)
// @Success 200 {object} domain.AccessorialOptionsResponse
// @Security BearerAuth
// @Router /quotes/accessorials [get]
func (h *QuoteHandler) AccessorialOptions(w http.ResponseWriter, r *http.Request) {
	quoteType := domain.QuoteTypeAir
	if raw := r.URL.Query().Get("quote_type"); raw != "" {
		parsed, ok := domain.ParseQuoteType(raw)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Quote type must be Hotshot or Air.")
			return
		}
		quoteType = parsed
	}

	options, err := h.catalog.Options(r.Context(), quoteType)
	if err != nil {
		handleServiceError(w, h.logger, err, "load accessorials")
		return
	}
	respondJSON(w, http.StatusOK, domain.AccessorialOptionsResponse{QuoteType: quoteType, Options: options})
}
