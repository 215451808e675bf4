package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/beanlog/beanlog/pkg/beanlog/internalerr"
)

// DefaultGeocodeEndpoint is the NCP geocoding endpoint.
const DefaultGeocodeEndpoint = "https://maps.apigw.ntruss.com/map-geocode/v2/geocode"

// Geocoder resolves free-text addresses to WGS84 coordinates.
type Geocoder struct {
	KeyID    string
	Key      string
	Endpoint string

	HTTPClient *http.Client
	Logger     *zap.Logger
}

type geocodeResponse struct {
	Status    string `json:"status"`
	Addresses []struct {
		X string `json:"x"` // longitude, decimal degrees
		Y string `json:"y"` // latitude, decimal degrees
	} `json:"addresses"`
}

// Geocode looks up one address. ok is false when the provider reports
// no result (non-OK status or an empty address list); that is a normal
// outcome, not an error.
func (g *Geocoder) Geocode(ctx context.Context, address string) (lat, lng float64, ok bool, err error) {
	if g.KeyID == "" || g.Key == "" {
		return 0, 0, false, fmt.Errorf("%w: geocode credentials required", internalerr.ErrInvalidConfig)
	}

	endpoint := g.Endpoint
	if endpoint == "" {
		endpoint = DefaultGeocodeEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: endpoint %q", internalerr.ErrInvalidConfig, endpoint)
	}
	q := u.Query()
	q.Set("query", address)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, 0, false, err
	}
	req.Header.Set("X-NCP-APIGW-API-KEY-ID", g.KeyID)
	req.Header.Set("X-NCP-APIGW-API-KEY", g.Key)

	resp, err := g.httpClient().Do(req)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: %v", internalerr.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: read body: %v", internalerr.ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, 0, false, fmt.Errorf("%w: geocode returned HTTP %d", internalerr.ErrTransport, resp.StatusCode)
	}

	var payload geocodeResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		g.logger().Warn("malformed geocode payload",
			zap.String("address", address),
			zap.ByteString("body", truncate(body, 512)),
			zap.Error(err))
		return 0, 0, false, fmt.Errorf("%w: %v", internalerr.ErrMalformedResponse, err)
	}

	if payload.Status != "OK" || len(payload.Addresses) == 0 {
		return 0, 0, false, nil
	}

	first := payload.Addresses[0]
	lng, err = strconv.ParseFloat(first.X, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: x %q", internalerr.ErrMalformedResponse, first.X)
	}
	lat, err = strconv.ParseFloat(first.Y, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: y %q", internalerr.ErrMalformedResponse, first.Y)
	}
	return lat, lng, true, nil
}

func (g *Geocoder) httpClient() *http.Client {
	if g.HTTPClient != nil {
		return g.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (g *Geocoder) logger() *zap.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return zap.NewNop()
}
