package mail

import (
	"fmt"
	"strings"

	"github.com/freightservices/quote-api/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// FeatureQuoteCopy labels quote copies sent to the requesting user
	FeatureQuoteCopy = "quote_copy"

	ruleHeavy = "=========================================="
	ruleLight = "------------------------------------------"
)

// QuoteCopySubject is the subject line for a quote copy email
func QuoteCopySubject(quoteID string) string {
	return "Freight Services Inc. Quote Copy - " + quoteID
}

// QuoteCopyHeaders returns the one-click unsubscribe headers
func QuoteCopyHeaders(unsubscribeURL string) map[string]string {
	return map[string]string{
		"List-Unsubscribe":      "<" + unsubscribeURL + ">",
		"List-Unsubscribe-Post": "List-Unsubscribe=One-Click",
	}
}

// QuoteCopyBody renders the receipt-style plain-text body of a quote copy.
// Accessorial lines are listed by name in sorted order.
func QuoteCopyBody(quote *domain.Quote, meta domain.QuoteMetadata, returnQuote bool, toolURL, unsubscribeURL string) string {
	total := decimal.NewFromFloat(quote.Total)
	base := total.Sub(decimal.NewFromFloat(meta.AccessorialTotal))
	if base.IsNegative() {
		base = decimal.Zero
	}

	names := meta.AccessorialNames()
	accessorialList := "None"
	if len(names) > 0 {
		accessorialList = strings.Join(names, ", ")
	}
	returnText := "NO"
	if returnQuote {
		returnText = "YES"
	}

	lines := []string{
		"QUOTE DETAILS",
		ruleHeavy,
		"Quote ID: " + quote.QuoteID,
		"Return Quote: " + returnText,
		"",
		"SHIPMENT SPECIFICATIONS",
		ruleLight,
		"Origin: " + quote.Origin,
		"Destination: " + quote.Destination,
		fmt.Sprintf("Pieces: %d", quote.Pieces),
		fmt.Sprintf("Weight: %s lbs (%s)", Money(quote.Weight), quote.WeightMethod),
		"Accessorials: " + accessorialList,
		"",
		"PRICING BREAKDOWN",
		ruleLight,
		"Base Charge: $ " + base.StringFixed(2),
	}

	for _, name := range names {
		label := name
		if runes := []rune(label); len(runes) > 22 {
			label = string(runes[:22])
		}
		lines = append(lines, fmt.Sprintf("%-23s $ %s", label, Money(meta.Accessorials[name])))
	}

	lines = append(lines,
		ruleLight,
		"TOTAL: $ "+total.StringFixed(2),
		ruleHeavy,
		"",
		"Return to Quote Tool: "+toolURL,
		"Unsubscribe: "+unsubscribeURL,
	)
	return strings.Join(lines, "\n")
}

// Money formats an amount with two decimals
func Money(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
