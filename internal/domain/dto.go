package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FormValue is a raw form field. JSON numbers, strings and null all decode
// into their textual form so the quote form keeps its field-specific messages.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	switch data[0] {
	case '{', '[':
		return fmt.Errorf("form value must be a scalar")
	}
	*v = FormValue(string(data))
	return nil
}

// AccessorialSelection is the list of selected accessorial names. JSON input
// may be an array, an object keyed by name, or a string holding either.
type AccessorialSelection []string

func (a *AccessorialSelection) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = nil
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		var inner AccessorialSelection
		if err := inner.UnmarshalJSON([]byte(s)); err != nil {
			*a = nil
			return nil
		}
		*a = inner
		return nil
	case '{':
		var m map[string]json.RawMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		*a = names
		return nil
	case '[':
		var raw []interface{}
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		names := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok {
				names = append(names, s)
			}
		}
		*a = names
		return nil
	default:
		*a = nil
		return nil
	}
}

// QuoteFormRequest is the interactive quote form submission
type QuoteFormRequest struct {
	QuoteType    string               `json:"quote_type"`
	OriginZip    string               `json:"origin_zip"`
	Origin       string               `json:"origin"`
	DestZip      string               `json:"dest_zip"`
	Destination  string               `json:"destination"`
	WeightActual FormValue            `json:"weight_actual"`
	Pieces       FormValue            `json:"pieces"`
	Length       FormValue            `json:"length"`
	Width        FormValue            `json:"width"`
	Height       FormValue            `json:"height"`
	WeightDim    FormValue            `json:"weight_dim"`
	Accessorials AccessorialSelection `json:"accessorials"`
	// RateSet is honored only for super admins
	RateSet string `json:"rate_set"`
}

// OriginZIP returns origin_zip, falling back to origin
func (r *QuoteFormRequest) OriginZIP() string {
	if strings.TrimSpace(r.OriginZip) != "" {
		return r.OriginZip
	}
	return r.Origin
}

// DestinationZIP returns dest_zip, falling back to destination
func (r *QuoteFormRequest) DestinationZIP() string {
	if strings.TrimSpace(r.DestZip) != "" {
		return r.DestZip
	}
	return r.Destination
}

// CreateQuoteAPIRequest is the JSON API quote request
type CreateQuoteAPIRequest struct {
	QuoteType    string               `json:"quote_type"`
	UserID       *uint                `json:"user_id,omitempty"`
	UserEmail    string               `json:"user_email,omitempty" validate:"omitempty,email,max=255"`
	Origin       string               `json:"origin" validate:"max=20"`
	Destination  string               `json:"destination" validate:"max=20"`
	Weight       float64              `json:"weight"`
	Pieces       *int                 `json:"pieces,omitempty"`
	Length       float64              `json:"length"`
	Width        float64              `json:"width"`
	Height       float64              `json:"height"`
	DimWeight    float64              `json:"dim_weight"`
	Accessorials AccessorialSelection `json:"accessorials"`
	RateSet      string               `json:"rate_set,omitempty" validate:"max=50"`
}

// QuoteAPIResponse is the serialized quote returned by the JSON API
type QuoteAPIResponse struct {
	QuoteID      string        `json:"quote_id"`
	QuoteType    QuoteType     `json:"quote_type"`
	Origin       string        `json:"origin"`
	Destination  string        `json:"destination"`
	Weight       float64       `json:"weight"`
	WeightMethod WeightMethod  `json:"weight_method"`
	ActualWeight float64       `json:"actual_weight"`
	DimWeight    float64       `json:"dim_weight"`
	Pieces       int           `json:"pieces"`
	Total        float64       `json:"total"`
	Metadata     QuoteMetadata `json:"metadata"`
}

// QuoteFormResponse is returned by the interactive form path on success
type QuoteFormResponse struct {
	ID               uint          `json:"id"`
	QuoteID          string        `json:"quote_id"`
	Price            float64       `json:"price"`
	Warnings         string        `json:"warnings"`
	ExceedsThreshold bool          `json:"exceeds_threshold"`
	Metadata         QuoteMetadata `json:"metadata"`
}

// QuoteDetailResponse is the full re-display view of a stored quote
type QuoteDetailResponse struct {
	QuoteAPIResponse
	ID                     uint     `json:"id"`
	RateSet                string   `json:"rate_set"`
	Zone                   string   `json:"zone"`
	Length                 float64  `json:"length"`
	Width                  float64  `json:"width"`
	Height                 float64  `json:"height"`
	Warnings               []string `json:"warnings"`
	ExceedsThreshold       bool     `json:"exceeds_threshold"`
	UserEmail              string   `json:"user_email,omitempty"`
	CreatedAt              string   `json:"created_at"`
	CanRequestBookingEmail bool     `json:"can_request_booking_email"`
	CanSendQuoteEmail      bool     `json:"can_send_quote_email"`
	QuoteEmailSMTPEnabled  bool     `json:"quote_email_smtp_enabled"`
}

// QuoteSummaryDTO is one row of the quote history list
type QuoteSummaryDTO struct {
	ID           uint         `json:"id"`
	QuoteID      string       `json:"quote_id"`
	QuoteType    QuoteType    `json:"quote_type"`
	Origin       string       `json:"origin"`
	Destination  string       `json:"destination"`
	Weight       float64      `json:"weight"`
	WeightMethod WeightMethod `json:"weight_method"`
	Total        float64      `json:"total"`
	UserEmail    string       `json:"user_email,omitempty"`
	CreatedAt    string       `json:"created_at"`
}

// LookupQuoteRequest carries a public quote id typed by the user
type LookupQuoteRequest struct {
	QuoteID string `json:"quote_id"`
}

// EmailSelfRequest asks for a copy of a quote at the caller's own address
type EmailSelfRequest struct {
	ReturnQuote FormValue `json:"return_quote"`
}

// ReturnQuoteRequested reports whether the return quote box was checked
func (r *EmailSelfRequest) ReturnQuoteRequested() bool {
	v := strings.ToLower(strings.TrimSpace(string(r.ReturnQuote)))
	return v == "yes" || v == "true" || v == "1"
}

// EmailSelfResponse confirms a quote copy was sent
type EmailSelfResponse struct {
	Message   string `json:"message"`
	Recipient string `json:"recipient"`
}

// EmailRequestFormDTO is the pre-filled booking or volume request for a quote
type EmailRequestFormDTO struct {
	QuoteID          string           `json:"quote_id"`
	Quote            QuoteAPIResponse `json:"quote"`
	AccessorialNames string           `json:"accessorial_names"`
	AdminFee         float64          `json:"admin_fee"`
	TotalWithFee     float64          `json:"total_with_fee"`
	UserName         string           `json:"user_name"`
	UserCompany      string           `json:"user_company"`
	PageHeading      string           `json:"page_heading"`
	EmailIntroLine   string           `json:"email_intro_line"`
	SubjectPrefix    string           `json:"subject_prefix"`
}

// CreateEmailQuoteRequest is the booking request contact details for a quote
type CreateEmailQuoteRequest struct {
	ShipperName         string  `json:"shipper_name" validate:"required,max=200"`
	ShipperAddress      string  `json:"shipper_address" validate:"required,max=500"`
	ShipperContact      string  `json:"shipper_contact" validate:"max=200"`
	ShipperPhone        string  `json:"shipper_phone" validate:"max=50"`
	ConsigneeName       string  `json:"consignee_name" validate:"required,max=200"`
	ConsigneeAddress    string  `json:"consignee_address" validate:"required,max=500"`
	ConsigneeContact    string  `json:"consignee_contact" validate:"max=200"`
	ConsigneePhone      string  `json:"consignee_phone" validate:"max=50"`
	TotalWeight         float64 `json:"total_weight" validate:"gte=0"`
	SpecialInstructions string  `json:"special_instructions" validate:"max=2000"`
}

// EmailQuoteRequestDTO is a persisted booking request
type EmailQuoteRequestDTO struct {
	ID        uint   `json:"id"`
	QuoteID   string `json:"quote_id"`
	CreatedAt string `json:"created_at"`
}

// AccessorialOptionsResponse lists the accessorials selectable for a quote type
type AccessorialOptionsResponse struct {
	QuoteType QuoteType `json:"quote_type"`
	Options   []string  `json:"options"`
}

// RateSetDTO is a selectable rate set
type RateSetDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CacheInvalidationResponse lists the caches that were cleared
type CacheInvalidationResponse struct {
	Cleared []string `json:"cleared"`
}

// ValidationErrorResponse is the 400 body for quote input problems
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

// ErrorResponse represents a simple API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ParseFloatField parses a numeric form value
func ParseFloatField(v FormValue) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
}

// PaginatedResponse wraps a page of list results
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// AuthUserDTO describes the signed in account
type AuthUserDTO struct {
	ID                uint     `json:"id"`
	Email             string   `json:"email"`
	Name              string   `json:"name"`
	Company           string   `json:"company"`
	Role              UserRole `json:"role"`
	RateSet           string   `json:"rate_set"`
	HasMailPrivileges bool     `json:"has_mail_privileges"`
}
