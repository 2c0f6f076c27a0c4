package handler

import (
	"net/http"

	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EmailHandler serves the quote email workflows
type EmailHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

// NewEmailHandler creates a new EmailHandler instance
func NewEmailHandler(quoteService *service.QuoteService, logger *zap.Logger) *EmailHandler {
	return &EmailHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// BookingRequest godoc
// @Summary Pre-filled booking request for a quote
// @Tags Quote Email
// @Produce json
// @Param quoteId path string true "Quote ID"
// @Success 200 {object} domain.EmailRequestFormDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{quoteId}/email [get]
func (h *EmailHandler) BookingRequest(w http.ResponseWriter, r *http.Request) {
	h.requestForm(w, r, service.EmailRequestBooking)
}

// VolumeRequest godoc
// @Summary Pre-filled volume pricing request for a quote
// @Tags Quote Email
// @Produce json
// @Param quoteId path string true "Quote ID"
// @Success 200 {object} domain.EmailRequestFormDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{quoteId}/email-volume [get]
func (h *EmailHandler) VolumeRequest(w http.ResponseWriter, r *http.Request) {
	h.requestForm(w, r, service.EmailRequestVolume)
}

func (h *EmailHandler) requestForm(w http.ResponseWriter, r *http.Request, kind service.EmailRequestKind) {
	form, err := h.quoteService.EmailRequestForm(r.Context(), chi.URLParam(r, "quoteId"), kind)
	if err != nil {
		handleServiceError(w, h.logger, err, "load email request")
		return
	}
	respondJSON(w, http.StatusOK, form)
}

// CreateRequest godoc
// @Summary Save booking request contact details
// @Tags Quote Email
// @Accept json
// @Produce json
// @Param quoteId path string true "Quote ID"
// @Param request body domain.CreateEmailQuoteRequest true "Shipper and consignee details"
// @Success 201 {object} domain.EmailQuoteRequestDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{quoteId}/email-request [post]
func (h *EmailHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEmailQuoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.quoteService.CreateEmailRequest(r.Context(), chi.URLParam(r, "quoteId"), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "save email request")
		return
	}
	respondJSON(w, http.StatusCreated, dto)
}

// SendToSelf godoc
// @Summary Email a copy of a quote to the signed in user
// @Description Requires mail privileges and SMTP to be enabled
// @Tags Quote Email
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param quoteId path string true "Quote ID"
// @Param request body domain.EmailSelfRequest false "Options"
// @Success 200 {object} domain.EmailSelfResponse
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 502 {object} domain.APIError
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{quoteId}/email-self [post]
func (h *EmailHandler) SendToSelf(w http.ResponseWriter, r *http.Request) {
	var req domain.EmailSelfRequest
	if isJSONRequest(r) {
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	} else {
		req.ReturnQuote = domain.FormValue(r.FormValue("return_quote"))
	}

	resp, err := h.quoteService.EmailQuoteToUser(r.Context(), chi.URLParam(r, "quoteId"), req.ReturnQuoteRequested())
	if err != nil {
		handleServiceError(w, h.logger, err, "send quote email")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
