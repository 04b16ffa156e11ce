package probe

import (
	"fmt"
	"net/http"
)

// HTTPStatusExpectation determines whether a given HTTP status code is acceptable.
type HTTPStatusExpectation func(status int) bool

// HTTPRequestMutator allows callers to tweak the outbound request prior to dispatch.
type HTTPRequestMutator func(req *http.Request) error

// HTTPProbeOption configures the behaviour of NewHTTPProbe.
type HTTPProbeOption func(*httpProbeConfig)

type httpProbeConfig struct {
	expect   HTTPStatusExpectation
	mutators []HTTPRequestMutator
}

func buildHTTPProbeConfig(opts []HTTPProbeOption) httpProbeConfig {
	cfg := httpProbeConfig{expect: defaultHTTPStatusExpectation}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.expect == nil {
		cfg.expect = defaultHTTPStatusExpectation
	}
	return cfg
}

func (c httpProbeConfig) prepare(req *http.Request) error {
	for _, mutate := range c.mutators {
		if mutate == nil {
			continue
		}
		if err := mutate(req); err != nil {
			return err
		}
	}
	return nil
}

func (c httpProbeConfig) check(resp *http.Response) error {
	if !c.expect(resp.StatusCode) {
		return fmt.Errorf("unexpected status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return nil
}

// WithHTTPStatusExpectation installs a custom status validation function.
func WithHTTPStatusExpectation(expect HTTPStatusExpectation) HTTPProbeOption {
	return func(cfg *httpProbeConfig) {
		cfg.expect = expect
	}
}

// WithHTTPRequestMutator registers a mutator that runs before the request is dispatched.
func WithHTTPRequestMutator(mutator HTTPRequestMutator) HTTPProbeOption {
	return func(cfg *httpProbeConfig) {
		cfg.mutators = append(cfg.mutators, mutator)
	}
}

// WithHTTPHeader sets a header on every probe request.
func WithHTTPHeader(key, value string) HTTPProbeOption {
	return WithHTTPRequestMutator(func(req *http.Request) error {
		req.Header.Set(key, value)
		return nil
	})
}
