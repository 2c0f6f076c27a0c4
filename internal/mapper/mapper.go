package mapper

import (
	"github.com/freightservices/quote-api/internal/domain"
	"github.com/freightservices/quote-api/internal/pricing"
)

const timeLayout = "2006-01-02T15:04:05Z"

// ToQuoteAPIResponse converts a stored quote and its metadata to the JSON API shape
func ToQuoteAPIResponse(quote *domain.Quote, meta domain.QuoteMetadata) domain.QuoteAPIResponse {
	return domain.QuoteAPIResponse{
		QuoteID:      quote.QuoteID,
		QuoteType:    quote.QuoteType,
		Origin:       quote.Origin,
		Destination:  quote.Destination,
		Weight:       quote.Weight,
		WeightMethod: quote.WeightMethod,
		ActualWeight: quote.ActualWeight,
		DimWeight:    quote.DimWeight,
		Pieces:       quote.Pieces,
		Total:        quote.Total,
		Metadata:     meta,
	}
}

// ToQuoteFormResponse converts a freshly created quote to the form path response
func ToQuoteFormResponse(quote *domain.Quote, meta domain.QuoteMetadata, exceedsThreshold bool) domain.QuoteFormResponse {
	return domain.QuoteFormResponse{
		ID:               quote.ID,
		QuoteID:          quote.QuoteID,
		Price:            quote.Total,
		Warnings:         quote.Warnings,
		ExceedsThreshold: exceedsThreshold,
		Metadata:         meta,
	}
}

// ToQuoteDetailResponse converts a stored quote to the re-display view.
// The threshold flag is recomputed from stored weight and total.
func ToQuoteDetailResponse(quote *domain.Quote, meta domain.QuoteMetadata) domain.QuoteDetailResponse {
	return domain.QuoteDetailResponse{
		QuoteAPIResponse: ToQuoteAPIResponse(quote, meta),
		ID:               quote.ID,
		RateSet:          quote.RateSet,
		Zone:             quote.Zone,
		Length:           quote.Length,
		Width:            quote.Width,
		Height:           quote.Height,
		Warnings:         quote.WarningList(),
		ExceedsThreshold: pricing.CheckThresholds(quote.QuoteType, quote.Weight, quote.Total) != "",
		UserEmail:        quote.UserEmail,
		CreatedAt:        quote.CreatedAt.UTC().Format(timeLayout),
	}
}

// ToQuoteSummaryDTO converts a quote to a history list row
func ToQuoteSummaryDTO(quote *domain.Quote) domain.QuoteSummaryDTO {
	return domain.QuoteSummaryDTO{
		ID:           quote.ID,
		QuoteID:      quote.QuoteID,
		QuoteType:    quote.QuoteType,
		Origin:       quote.Origin,
		Destination:  quote.Destination,
		Weight:       quote.Weight,
		WeightMethod: quote.WeightMethod,
		Total:        quote.Total,
		UserEmail:    quote.UserEmail,
		CreatedAt:    quote.CreatedAt.UTC().Format(timeLayout),
	}
}

// ToEmailQuoteRequestDTO converts a persisted booking request
func ToEmailQuoteRequestDTO(req *domain.EmailQuoteRequest) domain.EmailQuoteRequestDTO {
	return domain.EmailQuoteRequestDTO{
		ID:        req.ID,
		QuoteID:   req.QuoteID,
		CreatedAt: req.CreatedAt.UTC().Format(timeLayout),
	}
}

// ToRateSetDTOs converts ordered rate set codes to display entries
func ToRateSetDTOs(codes []string) []domain.RateSetDTO {
	dtos := make([]domain.RateSetDTO, 0, len(codes))
	for _, code := range codes {
		dtos = append(dtos, domain.RateSetDTO{Code: code, Name: pricing.RateSetName(code)})
	}
	return dtos
}

// ToAuthUserDTO converts an account to its signed in view
func ToAuthUserDTO(user *domain.User) domain.AuthUserDTO {
	return domain.AuthUserDTO{
		ID:                user.ID,
		Email:             user.Email,
		Name:              user.Name,
		Company:           user.Company,
		Role:              user.Role,
		RateSet:           pricing.NormalizeRateSet(user.RateSet),
		HasMailPrivileges: user.HasMailPrivileges(),
	}
}
