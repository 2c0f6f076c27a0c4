package domain

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// QuoteMetadata is the JSON blob stored alongside a quote for re-display and email.
// Details varies by quote type and never contains quote_total, miles or zone.
type QuoteMetadata struct {
	Accessorials     map[string]float64     `json:"accessorials"`
	AccessorialTotal float64                `json:"accessorial_total"`
	Miles            *float64               `json:"miles"`
	Pieces           int                    `json:"pieces"`
	Details          map[string]interface{} `json:"details"`
}

var reservedDetailKeys = map[string]struct{}{
	"quote_total": {},
	"miles":       {},
	"zone":        {},
}

// NewQuoteMetadata builds metadata, dropping reserved keys from details
func NewQuoteMetadata(accessorials map[string]float64, miles *float64, pieces int, details map[string]interface{}) QuoteMetadata {
	m := QuoteMetadata{
		Accessorials: make(map[string]float64, len(accessorials)),
		Miles:        miles,
		Pieces:       pieces,
		Details:      make(map[string]interface{}, len(details)),
	}
	for name, amount := range accessorials {
		m.Accessorials[name] = amount
		m.AccessorialTotal += amount
	}
	for k, v := range details {
		if _, reserved := reservedDetailKeys[k]; reserved {
			continue
		}
		m.Details[k] = v
	}
	return m
}

// EmptyQuoteMetadata is substituted for missing or corrupt stored metadata
func EmptyQuoteMetadata() QuoteMetadata {
	return QuoteMetadata{
		Accessorials: map[string]float64{},
		Details:      map[string]interface{}{},
	}
}

// JSON encodes the metadata for the quote_metadata column
func (m QuoteMetadata) JSON() (datatypes.JSON, error) {
	if m.Accessorials == nil {
		m.Accessorials = map[string]float64{}
	}
	if m.Details == nil {
		m.Details = map[string]interface{}{}
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quote metadata: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// ParseQuoteMetadata decodes stored metadata. Malformed or non-object JSON
// yields an empty metadata value instead of an error.
func ParseQuoteMetadata(raw []byte) QuoteMetadata {
	if len(raw) == 0 {
		return EmptyQuoteMetadata()
	}
	var m QuoteMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return EmptyQuoteMetadata()
	}
	if m.Accessorials == nil {
		m.Accessorials = map[string]float64{}
	}
	if m.Details == nil {
		m.Details = map[string]interface{}{}
	}
	return m
}

// AccessorialNames returns the accessorial line item names in sorted order
func (m QuoteMetadata) AccessorialNames() []string {
	return sortedKeys(m.Accessorials)
}
