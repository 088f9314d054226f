package jsonld

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/erraggy/oasgate"
	"github.com/erraggy/oasgate/internal/httputil"
)

// DefaultTimeout bounds each probe made by an HTTPChecker without a Client.
const DefaultTimeout = 30 * time.Second

// URLChecker probes a single URL. A nil error means the URL is reachable.
type URLChecker interface {
	CheckURL(ctx context.Context, url string) error
}

// URLCheckerFunc adapts a function to URLChecker.
type URLCheckerFunc func(ctx context.Context, url string) error

// CheckURL calls f(ctx, url).
func (f URLCheckerFunc) CheckURL(ctx context.Context, url string) error {
	return f(ctx, url)
}

// HTTPChecker probes URLs with a single GET request each, without retries.
type HTTPChecker struct {
	// Client performs the requests. Its Timeout is the probe timeout.
	// Default: an http.Client with DefaultTimeout
	Client *http.Client
	// UserAgent is sent with every request.
	// Default: oasgate.UserAgent()
	UserAgent string
}

// NewHTTPChecker returns an HTTPChecker whose client times out after timeout.
// A timeout <= 0 selects DefaultTimeout.
func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPChecker{Client: &http.Client{Timeout: timeout}}
}

// CheckURL implements URLChecker. Transport errors and any status of 400 or
// above are failures.
func (c *HTTPChecker) CheckURL(ctx context.Context, url string) error {
	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("jsonld: failed to create request: %w", err)
	}
	userAgent := c.UserAgent
	if userAgent == "" {
		userAgent = oasgate.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req) //nolint:gosec // G107 - URLs come from the spec author's own JSON-LD files
	if err != nil {
		return fmt.Errorf("jsonld: failed to fetch URL: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		_ = resp.Body.Close()
	}()

	if !httputil.IsSuccessStatus(resp.StatusCode) {
		return fmt.Errorf("jsonld: HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return nil
}

var _ URLChecker = (*HTTPChecker)(nil)
