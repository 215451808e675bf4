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
	"github.com/beanlog/beanlog/pkg/beanlog/match"
)

// DefaultSearchEndpoint is the Naver Local search endpoint.
const DefaultSearchEndpoint = "https://openapi.naver.com/v1/search/local.json"

const defaultLimit = 5

// Client calls the Naver Local place-search endpoint. It performs no
// retries of its own; trying the next query strategy is the caller's
// responsibility, as is spacing successive calls.
type Client struct {
	ClientID     string
	ClientSecret string
	Endpoint     string

	HTTPClient *http.Client
	Logger     *zap.Logger
}

type searchResponse struct {
	Total int          `json:"total"`
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Telephone   string `json:"telephone"`
	Address     string `json:"address"`
	RoadAddress string `json:"roadAddress"`
	MapX        string `json:"mapx"`
	MapY        string `json:"mapy"`
	Link        string `json:"link"`
}

// Search runs one query and returns the raw candidates. sort=random
// asks for non-deterministic ordering among equally ranked listings so
// repeated runs don't systematically favor one. A response without an
// items field is an empty result, not a failure.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]match.Candidate, error) {
	if c.ClientID == "" || c.ClientSecret == "" {
		return nil, fmt.Errorf("%w: search credentials required", internalerr.ErrInvalidConfig)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultSearchEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: endpoint %q", internalerr.ErrInvalidConfig, endpoint)
	}
	q := u.Query()
	q.Set("query", query)
	q.Set("display", strconv.Itoa(limit))
	q.Set("start", "1")
	q.Set("sort", "random")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Naver-Client-Id", c.ClientID)
	req.Header.Set("X-Naver-Client-Secret", c.ClientSecret)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", internalerr.ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: search returned HTTP %d", internalerr.ErrTransport, resp.StatusCode)
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		// Keep the raw payload around for diagnosis.
		c.logger().Warn("malformed search payload",
			zap.String("query", query),
			zap.ByteString("body", truncate(body, 512)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", internalerr.ErrMalformedResponse, err)
	}

	out := make([]match.Candidate, 0, len(payload.Items))
	for _, it := range payload.Items {
		out = append(out, match.Candidate{
			Title:       it.Title,
			Category:    it.Category,
			Telephone:   it.Telephone,
			Address:     it.Address,
			RoadAddress: it.RoadAddress,
			MapX:        it.MapX,
			MapY:        it.MapY,
			Link:        it.Link,
		})
	}
	return out, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (c *Client) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
