package geocode_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/freightservices/quote-api/internal/geocode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func placesServer(t *testing.T, hits *int32, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writePredictions(w http.ResponseWriter, status string, mainTexts ...string) {
	preds := make([]map[string]interface{}, 0, len(mainTexts))
	for _, text := range mainTexts {
		preds = append(preds, map[string]interface{}{
			"description":           text + ", USA",
			"structured_formatting": map[string]string{"main_text": text},
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":      status,
		"predictions": preds,
	})
}

func newValidator(t *testing.T, baseURL, apiKey string) *geocode.ZipValidator {
	t.Helper()
	client := geocode.NewPlacesClient(baseURL, time.Second, zap.NewNop())
	v, err := geocode.NewZipValidator(client, apiKey, 16, zap.NewNop())
	require.NoError(t, err)
	return v
}

func TestZipValidator_NoAPIKey(t *testing.T) {
	v := newValidator(t, "http://127.0.0.1:0", "")
	ctx := context.Background()

	for _, zip := range []string{"30301", "00000", "99999-1234", " 6 0 6 0 1 "} {
		valid, reason := v.Validate(ctx, zip)
		assert.True(t, valid, zip)
		assert.Equal(t, geocode.ReasonFormatOnly, reason, zip)
	}

	valid, reason := v.Validate(ctx, "3030")
	assert.False(t, valid)
	assert.Equal(t, geocode.ReasonInvalidFormat, reason)
}

func TestZipValidator_PlacesMatch(t *testing.T) {
	var hits int32
	srv := placesServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "postal_code", q.Get("types"))
		assert.Equal(t, "country:us", q.Get("components"))
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, "30301", q.Get("input"))
		writePredictions(w, "OK", "30301")
	})
	v := newValidator(t, srv.URL, "test-key")

	valid, reason := v.Validate(context.Background(), "30301-0001")
	assert.True(t, valid)
	assert.Equal(t, geocode.ReasonOK, reason)

	valid, reason = v.Validate(context.Background(), "30301")
	assert.True(t, valid)
	assert.Equal(t, geocode.ReasonOK, reason)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second lookup should be served from cache")
}

func TestZipValidator_NoMatchingPrediction(t *testing.T) {
	var hits int32
	srv := placesServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		writePredictions(w, "OK", "30302", "Atlanta")
	})
	v := newValidator(t, srv.URL, "test-key")

	valid, reason := v.Validate(context.Background(), "30301")
	assert.False(t, valid)
	assert.Equal(t, geocode.ReasonNotFound, reason)
}

func TestZipValidator_ZeroResultsIsCached(t *testing.T) {
	var hits int32
	srv := placesServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		writePredictions(w, "ZERO_RESULTS")
	})
	v := newValidator(t, srv.URL, "test-key")

	for i := 0; i < 2; i++ {
		valid, reason := v.Validate(context.Background(), "00001")
		assert.False(t, valid)
		assert.Equal(t, geocode.ReasonNotFound, reason)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	v.Invalidate()
	assert.Equal(t, 0, v.Len())
	_, _ = v.Validate(context.Background(), "00001")
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestZipValidator_ProviderErrorsFailClosed(t *testing.T) {
	tests := []struct {
		name    string
		handler func(w http.ResponseWriter, r *http.Request)
	}{
		{
			name: "request denied",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writePredictions(w, "REQUEST_DENIED")
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var hits int32
			srv := placesServer(t, &hits, tc.handler)
			v := newValidator(t, srv.URL, "test-key")

			valid, reason := v.Validate(context.Background(), "30301")
			assert.False(t, valid)
			assert.Equal(t, geocode.ReasonPlacesError, reason)

			// errors are not cached
			_, _ = v.Validate(context.Background(), "30301")
			assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
			assert.Equal(t, 0, v.Len())
		})
	}
}

func TestZipValidator_Timeout(t *testing.T) {
	var hits int32
	srv := placesServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	client := geocode.NewPlacesClient(srv.URL, 50*time.Millisecond, zap.NewNop())
	v, err := geocode.NewZipValidator(client, "test-key", 0, zap.NewNop())
	require.NoError(t, err)

	valid, reason := v.Validate(context.Background(), "30301")
	assert.False(t, valid)
	assert.Equal(t, geocode.ReasonPlacesError, reason)
}

func TestZipValidator_CacheKeyedByAPIKey(t *testing.T) {
	var hits int32
	srv := placesServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		writePredictions(w, "OK", "30301")
	})
	client := geocode.NewPlacesClient(srv.URL, time.Second, zap.NewNop())

	a, err := geocode.NewZipValidator(client, "key-a", 4, zap.NewNop())
	require.NoError(t, err)
	b, err := geocode.NewZipValidator(client, "key-b", 4, zap.NewNop())
	require.NoError(t, err)

	_, _ = a.Validate(context.Background(), "30301")
	_, _ = b.Validate(context.Background(), "30301")
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
