package pricing

import "github.com/freightservices/quote-api/internal/domain"

const (
	ThresholdWarning = "Warning! Quote exceeds the limits of this tool please call FSI directly for the most accurate quote. " +
		"Main Office: 800-651-0423 | Fax: 520-777-3853 | Email: Operations@freightservices.net"

	AirPieceLimitWarning = "Warning! Air freight shipments with pieces greater than 300 lbs each exceeds the limits of this tool. " +
		"Please contact FSI directly for the most accurate quote. " +
		"Main Office: 800-651-0423 | Fax: 520-777-3853 | Email: Operations@freightservices.net"
)

const (
	AirWeightLimit      = 1200.0
	AnyWeightLimit      = 3000.0
	TotalLimit          = 6000.0
	AirPerPieceLbsLimit = 300.0
)

// CheckThresholds returns ThresholdWarning when the quote is beyond what the
// tool prices reliably, otherwise an empty string
func CheckThresholds(quoteType domain.QuoteType, weight, total float64) string {
	if quoteType.IsAir() && weight > AirWeightLimit {
		return ThresholdWarning
	}
	if weight > AnyWeightLimit || total > TotalLimit {
		return ThresholdWarning
	}
	return ""
}

// CheckAirPieceLimit returns AirPieceLimitWarning when an air shipment's
// billable pounds per piece exceed 300, otherwise an empty string
func CheckAirPieceLimit(quoteType domain.QuoteType, actualWeight float64, pieces int, dimWeight float64) string {
	if !quoteType.IsAir() || pieces <= 0 {
		return ""
	}
	billable := actualWeight
	if dimWeight > billable {
		billable = dimWeight
	}
	if billable/float64(pieces) > AirPerPieceLbsLimit {
		return AirPieceLimitWarning
	}
	return ""
}
