package info

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/drblury/wordgate/probe"
	"github.com/drblury/wordgate/responder"
)

// InfoProvider returns the payload that will be exposed by the version endpoint.
type InfoProvider func() any

// SwaggerProvider returns the raw OpenAPI document rendered by the
// documentation endpoints.
type SwaggerProvider func() ([]byte, error)

// InfoOption follows the functional options pattern used by NewInfoHandler.
type InfoOption func(*InfoHandler)

// TemplateDataProvider allows callers to customise the data payload passed to
// the documentation template at render time.
type TemplateDataProvider func(r *http.Request, baseURL string) any

const defaultProbeTimeout = 2 * time.Second

// ProbeFunc is executed to determine the outcome of liveness or readiness
// probes. Returning a non-nil error marks the probe as failed.
type ProbeFunc = probe.Func

// Check is a named probe. The name is reported in the probe payload.
type Check struct {
	Name  string
	Probe ProbeFunc
}

// InfoHandler serves build information, status checks, and API docs.
type InfoHandler struct {
	*responder.Responder
	baseURL         string
	infoProvider    InfoProvider
	swaggerProvider SwaggerProvider
	docsTemplate    *template.Template
	dataProvider    TemplateDataProvider
	probeTimeout    time.Duration
	livenessChecks  []Check
	readinessChecks []Check
}

// NewInfoHandler constructs an InfoHandler with sensible defaults.
func NewInfoHandler(opts ...InfoOption) *InfoHandler {
	ih := &InfoHandler{
		Responder: responder.NewResponder(),
		infoProvider: func() any {
			return map[string]string{}
		},
		swaggerProvider: func() ([]byte, error) {
			return nil, errors.New("api swagger provider not configured")
		},
		docsTemplate: defaultDocsTemplate,
		dataProvider: defaultTemplateDataProvider,
		probeTimeout: defaultProbeTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ih)
		}
	}
	return ih
}

// WithInfoResponder replaces the responder used to craft JSON responses and
// handle error reporting.
func WithInfoResponder(r *responder.Responder) InfoOption {
	return func(ih *InfoHandler) {
		if r != nil {
			ih.Responder = r
		}
	}
}

// WithBaseURL sets the URL prefix injected into the documentation template.
func WithBaseURL(baseURL string) InfoOption {
	return func(ih *InfoHandler) {
		ih.baseURL = baseURL
	}
}

// WithInfoProvider swaps the default metadata provider.
func WithInfoProvider(provider InfoProvider) InfoOption {
	return func(ih *InfoHandler) {
		if provider != nil {
			ih.infoProvider = provider
		}
	}
}

// WithSwaggerProvider sets the source of the OpenAPI JSON document.
func WithSwaggerProvider(provider SwaggerProvider) InfoOption {
	return func(ih *InfoHandler) {
		if provider != nil {
			ih.swaggerProvider = provider
		}
	}
}

// WithDocsTemplate injects a custom html/template used for the docs page.
func WithDocsTemplate(tmpl *template.Template) InfoOption {
	return func(ih *InfoHandler) {
		if tmpl != nil {
			ih.docsTemplate = tmpl
		}
	}
}

// WithDocsTemplateData overrides the template data provider that runs for
// each request to the docs page.
func WithDocsTemplateData(provider TemplateDataProvider) InfoOption {
	return func(ih *InfoHandler) {
		if provider != nil {
			ih.dataProvider = provider
		}
	}
}

// WithProbeTimeout adjusts the maximum duration allowed for one probe run.
func WithProbeTimeout(timeout time.Duration) InfoOption {
	return func(ih *InfoHandler) {
		if timeout > 0 {
			ih.probeTimeout = timeout
		}
	}
}

// WithLivenessChecks replaces the liveness checks.
func WithLivenessChecks(checks ...Check) InfoOption {
	return func(ih *InfoHandler) {
		ih.livenessChecks = filterChecks(checks)
	}
}

// WithReadinessChecks replaces the readiness checks.
func WithReadinessChecks(checks ...Check) InfoOption {
	return func(ih *InfoHandler) {
		ih.readinessChecks = filterChecks(checks)
	}
}
