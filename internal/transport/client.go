// Package transport provides the HTTP client used to fetch exported feed
// tables from remote endpoints.
package transport

import (
	"context"
	"io"
	"net/http"

	"github.com/agristack/fieldscope/pkg/constants"
	"github.com/agristack/fieldscope/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for feed requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client is an HTTP client with optional authentication for feed endpoints.
type Client struct {
	http   *http.Client
	auth   Authenticator
	apiKey string
}

// New creates a transport client with the given authenticator and key. A
// nil authenticator means no credentials are applied.
func New(auth Authenticator, apiKey string) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	return &Client{
		http:   &http.Client{Timeout: DefaultHTTPTimeout},
		auth:   auth,
		apiKey: apiKey,
	}
}

// Do performs the request with credentials applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.apiKey != "" {
		c.auth.Apply(req, c.apiKey)
	}
	return c.http.Do(req)
}

// Get performs a GET against the given URL.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapIO("create", "GET "+url, err)
	}
	return c.Do(req)
}

// FetchBody GETs the URL and returns the response body. A non-200 status is
// an APIError carrying the status code and body.
func (c *Client) FetchBody(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // read-side close

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &errors.APIError{
			Source:     url,
			Endpoint:   url,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}
	return body, nil
}
