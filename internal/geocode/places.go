// Package geocode validates U.S. ZIP codes against Google Places.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/freightservices/quote-api/internal/metrics"
	"go.uber.org/zap"
)

// DefaultAutocompleteURL is the Places Autocomplete endpoint
const DefaultAutocompleteURL = "https://maps.googleapis.com/maps/api/place/autocomplete/json"

// ErrPlacesUnavailable wraps any provider failure: transport errors,
// non-2xx responses and statuses other than OK or ZERO_RESULTS
var ErrPlacesUnavailable = errors.New("places lookup failed")

type autocompleteResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message"`
	Predictions  []prediction `json:"predictions"`
}

type prediction struct {
	Description          string `json:"description"`
	StructuredFormatting struct {
		MainText string `json:"main_text"`
	} `json:"structured_formatting"`
}

// PlacesClient queries Places Autocomplete for U.S. postal codes
type PlacesClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewPlacesClient creates a client whose requests are bounded by timeout
func NewPlacesClient(baseURL string, timeout time.Duration, logger *zap.Logger) *PlacesClient {
	if baseURL == "" {
		baseURL = DefaultAutocompleteURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PlacesClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
	}
}

// PostalCodePredictions returns the primary text of each prediction for zip.
// ZERO_RESULTS yields an empty slice and no error.
func (c *PlacesClient) PostalCodePredictions(ctx context.Context, zip, apiKey string) ([]string, error) {
	params := url.Values{}
	params.Set("input", zip)
	params.Set("types", "postal_code")
	params.Set("components", "country:us")
	params.Set("key", apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlacesUnavailable, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.PlacesRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlacesUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: http status %d", ErrPlacesUnavailable, resp.StatusCode)
	}

	var payload autocompleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrPlacesUnavailable, err)
	}

	switch payload.Status {
	case "OK", "ZERO_RESULTS":
	default:
		c.logger.Warn("Places autocomplete returned error status",
			zap.String("status", payload.Status),
			zap.String("error_message", payload.ErrorMessage),
		)
		return nil, fmt.Errorf("%w: status %s", ErrPlacesUnavailable, payload.Status)
	}

	texts := make([]string, 0, len(payload.Predictions))
	for _, p := range payload.Predictions {
		texts = append(texts, p.StructuredFormatting.MainText)
	}
	return texts, nil
}
