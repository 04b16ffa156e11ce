package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/drblury/wordgate/apierr"
)

// DefaultTimeout bounds a single outbound call when no client is supplied.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 4 << 20

const msgUpstreamFailed = "Something went wrong on the API side"

// HTTPDoer is the subset of *http.Client used by the clients.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns an *http.Client with the given timeout, falling back
// to DefaultTimeout when timeout is not positive.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func doerOrDefault(client HTTPDoer) HTTPDoer {
	if client == nil {
		return NewHTTPClient(DefaultTimeout)
	}
	return client
}

// get performs a GET against endpoint with params and returns the body of a
// 2xx response.
func get(ctx context.Context, client HTTPDoer, endpoint string, params url.Values) ([]byte, error) {
	target, err := url.Parse(endpoint)
	if err != nil {
		return nil, apierr.Upstream(msgUpstreamFailed, fmt.Errorf("parse endpoint %q: %w", endpoint, err))
	}
	if len(params) > 0 {
		query := target.Query()
		for key, values := range params {
			for _, value := range values {
				query.Add(key, value)
			}
		}
		target.RawQuery = query.Encode()
	}

	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, apierr.Upstream(msgUpstreamFailed, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json, text/plain;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, apierr.Upstream(msgUpstreamFailed, fmt.Errorf("GET %s: %w", target.Redacted(), err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, apierr.Upstream(msgUpstreamFailed, fmt.Errorf("GET %s: unexpected status %d %s", target.Redacted(), resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apierr.Upstream(msgUpstreamFailed, fmt.Errorf("read body of %s: %w", target.Redacted(), err))
	}
	return body, nil
}
