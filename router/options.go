package router

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// DefaultTimeout bounds a request when no Config is supplied.
const DefaultTimeout = 30 * time.Second

// Middleware wraps an http.Handler to produce a new http.Handler.
type Middleware func(http.Handler) http.Handler

// Stage names one middleware of the default chain.
type Stage int

// Default chain stages, outermost first.
const (
	StageLogging Stage = iota
	StageCORS
	StageOpenAPI
	StageTimeout
)

// Option configures the router via the functional options pattern.
type Option func(*options)

type options struct {
	config    Config
	logger    *slog.Logger
	swagger   *openapi3.T
	onInvalid ValidationErrorHandler
	outer     []Middleware
	inner     []Middleware
	disabled  map[Stage]bool
}

func defaultOptions() *options {
	return &options{
		config:   Config{Timeout: DefaultTimeout},
		logger:   slog.Default(),
		disabled: make(map[Stage]bool),
	}
}

// middlewareChain returns the outer middlewares, the enabled default stages
// and the inner middlewares, in that order.
func (o *options) middlewareChain() []Middleware {
	chain := slices.Clone(o.outer)

	if !o.disabled[StageLogging] && o.logger != nil {
		chain = append(chain, loggingMiddleware(o.logger, o.config.QuietdownRoutes, o.config.HideHeaders))
	}
	if !o.disabled[StageCORS] && len(o.config.CORS.Origins) > 0 {
		chain = append(chain, corsMiddleware(o.config.CORS))
	}
	if !o.disabled[StageOpenAPI] && o.swagger != nil {
		chain = append(chain, oapiMiddleware(o.swagger, o.onInvalid))
	}
	if !o.disabled[StageTimeout] && o.config.Timeout > 0 {
		chain = append(chain, timeoutMiddleware(o.config.Timeout))
	}

	return append(chain, o.inner...)
}

// WithConfig replaces the router configuration. A zero Timeout disables the
// timeout stage.
func WithConfig(cfg Config) Option {
	cfg.QuietdownRoutes = slices.Clone(cfg.QuietdownRoutes)
	cfg.HideHeaders = slices.Clone(cfg.HideHeaders)
	cfg.CORS.Origins = slices.Clone(cfg.CORS.Origins)
	cfg.CORS.Methods = slices.Clone(cfg.CORS.Methods)
	cfg.CORS.Headers = slices.Clone(cfg.CORS.Headers)
	return func(o *options) {
		o.config = cfg
	}
}

// WithLogger provides the structured logger used by the logging stage.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSwagger wires the OpenAPI document for request validation. Requests
// for paths or methods the document does not describe are rejected.
func WithSwagger(swagger *openapi3.T) Option {
	return func(o *options) {
		o.swagger = swagger
	}
}

// WithValidationErrorHandler renders requests rejected by OpenAPI validation.
// Without it the validator writes a plain-text body.
func WithValidationErrorHandler(handler ValidationErrorHandler) Option {
	return func(o *options) {
		o.onInvalid = handler
	}
}

// WithMiddlewares adds middlewares outside the default chain.
func WithMiddlewares(middlewares ...Middleware) Option {
	return func(o *options) {
		o.outer = append(o.outer, middlewares...)
	}
}

// WithInnerMiddlewares adds middlewares between the default chain and the
// handler.
func WithInnerMiddlewares(middlewares ...Middleware) Option {
	return func(o *options) {
		o.inner = append(o.inner, middlewares...)
	}
}

// Without disables stages of the default chain.
func Without(stages ...Stage) Option {
	return func(o *options) {
		for _, s := range stages {
			o.disabled[s] = true
		}
	}
}
