package info

import (
	"bytes"
	"errors"
	"net/http"
)

// Register mounts the info endpoints on mux.
func (ih *InfoHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /status", ih.GetStatus)
	mux.HandleFunc("GET /healthz", ih.GetHealthz)
	mux.HandleFunc("GET /readyz", ih.GetReadyz)
	mux.HandleFunc("GET /version", ih.GetVersion)
	mux.HandleFunc("GET /docs", ih.GetDocsHTML)
	mux.HandleFunc("GET "+DocsSpecPath, ih.GetOpenAPIJSON)
}

// GetStatus returns a simple health payload that can be used for lightweight diagnostics.
func (ih *InfoHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ih.respondProbe(w, r, http.StatusOK, "HEALTHY")
}

// GetHealthz implements the liveness probe.
func (ih *InfoHandler) GetHealthz(w http.ResponseWriter, r *http.Request) {
	passed, err := ih.runChecks(r.Context(), ih.livenessChecks)
	if err != nil {
		ih.HandleAPIError(w, r, http.StatusServiceUnavailable, err, "liveness probe failed")
		return
	}
	ih.respondProbe(w, r, http.StatusOK, "ok", passed...)
}

// GetReadyz implements the readiness probe.
func (ih *InfoHandler) GetReadyz(w http.ResponseWriter, r *http.Request) {
	passed, err := ih.runChecks(r.Context(), ih.readinessChecks)
	if err != nil {
		ih.HandleAPIError(w, r, http.StatusServiceUnavailable, err, "readiness probe failed")
		return
	}
	ih.respondProbe(w, r, http.StatusOK, "ready", passed...)
}

// GetVersion returns the structure provided by the configured InfoProvider.
func (ih *InfoHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	payload := ih.infoProvider()
	if payload == nil {
		payload = map[string]string{}
	}
	ih.RespondWithJSON(w, r, http.StatusOK, payload)
}

// GetOpenAPIJSON streams the configured OpenAPI JSON document to the caller.
func (ih *InfoHandler) GetOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	doc, err := ih.swaggerProvider()
	if err != nil {
		ih.HandleAPIError(w, r, http.StatusInternalServerError, err, "failed to load openapi document")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(doc); err != nil {
		ih.Logger().ErrorContext(r.Context(), "failed to write openapi document", "error", err)
	}
}

// GetDocsHTML renders the embedded viewer, which fetches the OpenAPI document
// from DocsSpecPath.
func (ih *InfoHandler) GetDocsHTML(w http.ResponseWriter, r *http.Request) {
	if ih.docsTemplate == nil {
		err := errors.New("docs template not configured")
		ih.HandleAPIError(w, r, http.StatusInternalServerError, err, "failed to render docs template")
		return
	}

	var data any
	if ih.dataProvider != nil {
		data = ih.dataProvider(r, ih.baseURL)
	}
	if data == nil {
		data = defaultTemplateDataProvider(r, ih.baseURL)
	}

	// Render into a buffer so a failing template still yields a clean error response.
	var page bytes.Buffer
	if err := ih.docsTemplate.Execute(&page, data); err != nil {
		ih.HandleAPIError(w, r, http.StatusInternalServerError, err, "failed to render docs template")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := page.WriteTo(w); err != nil {
		ih.Logger().ErrorContext(r.Context(), "failed to write docs page", "error", err)
	}
}
