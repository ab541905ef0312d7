package stooq

import (
	"context"
	"strings"
	"time"

	"CandleCache/internal/domain/models"
	"CandleCache/internal/domain/repository"
	xhttp "CandleCache/pkg/http"
)

const historyPath = "/q/d/l/"

// Client fetches raw daily-history CSV for one symbol from Stooq. It knows
// only the wire format; caching policy belongs to the usecase.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New creates a Stooq upstream client.
func New(baseURL string, timeout time.Duration) repository.Upstream {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// FetchRaw performs a single GET for the symbol's daily history. Transport
// errors, timeouts and non-success statuses all surface as UpstreamError.
func (c *Client) FetchRaw(ctx context.Context, symbol string) ([]byte, error) {
	sym := strings.ToLower(strings.TrimSpace(symbol))

	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + historyPath,
		QueryParams: map[string][]string{
			"s": {sym},
			"i": {"d"},
		},
	}, &body)
	if err != nil {
		return nil, &models.UpstreamError{Symbol: sym, Err: err}
	}

	return body, nil
}
