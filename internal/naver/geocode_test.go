package naver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanlog/beanlog/pkg/beanlog/internalerr"
)

func newGeocoder(url string) *Geocoder {
	return &Geocoder{KeyID: "key-id", Key: "key", Endpoint: url}
}

func TestGeocodeOK(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		w.Write([]byte(`{"status":"OK","addresses":[{"x":"126.8981060","y":"37.5636009"}]}`))
	}))
	defer srv.Close()

	lat, lng, ok, err := newGeocoder(srv.URL).Geocode(context.Background(), "서울특별시 성동구 아차산로 7")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 37.5636009, lat, 1e-9)
	assert.InDelta(t, 126.898106, lng, 1e-9)

	require.NotNil(t, gotReq)
	assert.Equal(t, "key-id", gotReq.Header.Get("X-NCP-APIGW-API-KEY-ID"))
	assert.Equal(t, "key", gotReq.Header.Get("X-NCP-APIGW-API-KEY"))
	assert.Equal(t, "서울특별시 성동구 아차산로 7", gotReq.URL.Query().Get("query"))
}

func TestGeocodeNoResult(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"non-OK status", `{"status":"INVALID_REQUEST","addresses":[]}`},
		{"empty addresses", `{"status":"OK","addresses":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, _, ok, err := newGeocoder(srv.URL).Geocode(context.Background(), "어디에도 없는 주소")
			require.NoError(t, err, "no result is not an error")
			assert.False(t, ok)
		})
	}
}

func TestGeocodeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, _, _, err := newGeocoder(srv.URL).Geocode(context.Background(), "주소")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrTransport))
}

func TestGeocodeMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","addresses":[{"x":"not-a-number","y":"37.5"}]}`))
	}))
	defer srv.Close()

	_, _, _, err := newGeocoder(srv.URL).Geocode(context.Background(), "주소")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrMalformedResponse))
}

func TestGeocodeMissingCredentials(t *testing.T) {
	g := &Geocoder{}
	_, _, _, err := g.Geocode(context.Background(), "주소")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrInvalidConfig))
}
