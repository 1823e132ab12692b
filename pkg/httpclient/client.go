// Package httpclient wraps the resty HTTP client behind the small
// surface the fetch pipeline needs.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds a single source fetch.
const DefaultTimeout = 15 * time.Second

// Response is the subset of an HTTP response the pipeline consumes.
type Response interface {
	StatusCode() int
	Body() []byte
	Header(name string) string
}

// Client issues GET requests with per-request headers.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

type restyClient struct {
	client *resty.Client
}

type restyResponse struct {
	resp *resty.Response
}

func (r *restyResponse) StatusCode() int           { return r.resp.StatusCode() }
func (r *restyResponse) Body() []byte              { return r.resp.Body() }
func (r *restyResponse) Header(name string) string { return r.resp.Header().Get(name) }

// NewRestyClient returns a Client with the given total request timeout.
// Redirects are followed; responses are returned regardless of status
// code so callers can log body snippets on failures.
func NewRestyClient(timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

	return &restyClient{client: c}
}

// Get fetches the URL with the provided headers.
func (c *restyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := c.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	return &restyResponse{resp: resp}, nil
}

// IsTimeout reports whether err was caused by a request deadline.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
