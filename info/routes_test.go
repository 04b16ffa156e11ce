package info

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestInfoHandler_GetStatus(t *testing.T) {
	handler := NewInfoHandler()
	rr := httptest.NewRecorder()

	handler.GetStatus(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if payload := decodeProbePayload(t, rr.Body.Bytes()); payload.Status != "HEALTHY" {
		t.Fatalf("expected status HEALTHY, got %s", payload.Status)
	}
}

func TestInfoHandler_GetHealthz(t *testing.T) {
	t.Run("success lists passing checks", func(t *testing.T) {
		handler := NewInfoHandler(WithLivenessChecks(Check{Name: "tracker", Probe: func(context.Context) error { return nil }}))
		rr := httptest.NewRecorder()

		handler.GetHealthz(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
		}
		payload := decodeProbePayload(t, rr.Body.Bytes())
		if payload.Status != "ok" || !reflect.DeepEqual(payload.Details, []string{"tracker"}) {
			t.Fatalf("unexpected payload %+v", payload)
		}
	})

	t.Run("failure propagates probe error", func(t *testing.T) {
		sentinel := errors.New("tracker wedged")
		handler := NewInfoHandler(
			WithInfoResponder(quietResponder()),
			WithLivenessChecks(Check{Name: "tracker", Probe: func(context.Context) error { return sentinel }}),
		)
		rr := httptest.NewRecorder()

		handler.GetHealthz(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		if rr.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rr.Code)
		}
		body := decodeErrorBody(t, rr.Body.Bytes())
		if !strings.Contains(body.Message, sentinel.Error()) || !strings.Contains(body.Message, "tracker") {
			t.Fatalf("expected message to name the check and cause, got %q", body.Message)
		}
	})
}

func TestInfoHandler_GetReadyz(t *testing.T) {
	t.Run("no checks is ready", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewInfoHandler().GetReadyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
		}
		if payload := decodeProbePayload(t, rr.Body.Bytes()); payload.Status != "ready" {
			t.Fatalf("expected status ready, got %s", payload.Status)
		}
	})

	t.Run("failure stops at first failing check", func(t *testing.T) {
		laterRan := false
		handler := NewInfoHandler(
			WithInfoResponder(quietResponder()),
			WithReadinessChecks(
				Check{Name: "words", Probe: func(context.Context) error { return nil }},
				Check{Name: "wiki", Probe: func(context.Context) error { return errors.New("429") }},
				Check{Name: "jokes", Probe: func(context.Context) error { laterRan = true; return nil }},
			),
		)
		rr := httptest.NewRecorder()

		handler.GetReadyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		if rr.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rr.Code)
		}
		if laterRan {
			t.Fatal("expected checks after the failure to be skipped")
		}
		if msg := decodeErrorBody(t, rr.Body.Bytes()).Message; !strings.HasPrefix(msg, "wiki check failed") {
			t.Fatalf("unexpected message %q", msg)
		}
	})
}

func TestInfoHandler_GetVersion(t *testing.T) {
	t.Run("uses configured provider", func(t *testing.T) {
		handler := NewInfoHandler(WithInfoProvider(func() any {
			return map[string]string{"version": "1.0.0"}
		}))
		rr := httptest.NewRecorder()

		handler.GetVersion(rr, httptest.NewRequest(http.MethodGet, "/version", nil))

		if got := strings.TrimSpace(rr.Body.String()); got != `{"version":"1.0.0"}` {
			t.Fatalf("unexpected body %s", got)
		}
	})

	t.Run("falls back to empty map when provider returns nil", func(t *testing.T) {
		handler := NewInfoHandler(WithInfoProvider(func() any { return nil }))
		rr := httptest.NewRecorder()

		handler.GetVersion(rr, httptest.NewRequest(http.MethodGet, "/version", nil))

		if got := strings.TrimSpace(rr.Body.String()); got != "{}" {
			t.Fatalf("expected empty object, got %s", got)
		}
	})
}

func TestInfoHandler_GetOpenAPIJSON(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		doc := []byte(`{"openapi":"3.0.3"}`)
		handler := NewInfoHandler(WithSwaggerProvider(func() ([]byte, error) { return doc, nil }))
		rr := httptest.NewRecorder()

		handler.GetOpenAPIJSON(rr, httptest.NewRequest(http.MethodGet, DocsSpecPath, nil))

		if rr.Code != http.StatusOK || rr.Body.String() != string(doc) {
			t.Fatalf("unexpected response %d %s", rr.Code, rr.Body.String())
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type %q", ct)
		}
	})

	t.Run("provider error is surfaced", func(t *testing.T) {
		handler := NewInfoHandler(WithInfoResponder(quietResponder()))
		rr := httptest.NewRecorder()

		handler.GetOpenAPIJSON(rr, httptest.NewRequest(http.MethodGet, DocsSpecPath, nil))

		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
		}
		if msg := decodeErrorBody(t, rr.Body.Bytes()).Message; !strings.Contains(msg, "not configured") {
			t.Fatalf("unexpected message %q", msg)
		}
	})
}

func TestInfoHandler_GetDocsHTML(t *testing.T) {
	t.Run("default template points at the openapi document", func(t *testing.T) {
		handler := NewInfoHandler(WithBaseURL("https://words.example.com/"))
		rr := httptest.NewRecorder()

		handler.GetDocsHTML(rr, httptest.NewRequest(http.MethodGet, "/docs", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), `apiDescriptionUrl="https://words.example.com/docs/openapi.json"`) {
			t.Fatalf("expected openapi document url in page, got %s", rr.Body.String())
		}
		if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Fatalf("unexpected content type %q", ct)
		}
	})

	t.Run("custom template and data", func(t *testing.T) {
		handler := NewInfoHandler(
			WithDocsTemplate(template.Must(template.New("docs").Parse(`<p>{{.Name}}</p>`))),
			WithDocsTemplateData(func(*http.Request, string) any { return map[string]string{"Name": "wordgate"} }),
		)
		rr := httptest.NewRecorder()

		handler.GetDocsHTML(rr, httptest.NewRequest(http.MethodGet, "/docs", nil))

		if got := rr.Body.String(); got != "<p>wordgate</p>" {
			t.Fatalf("unexpected body %q", got)
		}
	})

	t.Run("template execution errors are surfaced", func(t *testing.T) {
		handler := NewInfoHandler(
			WithInfoResponder(quietResponder()),
			WithDocsTemplate(template.Must(template.New("docs").Parse(`{{template "missing"}}`))),
		)
		rr := httptest.NewRecorder()

		handler.GetDocsHTML(rr, httptest.NewRequest(http.MethodGet, "/docs", nil))

		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
			t.Fatalf("expected JSON error, got content type %q", ct)
		}
	})
}

func TestInfoHandler_Register(t *testing.T) {
	mux := http.NewServeMux()
	NewInfoHandler().Register(mux)

	for _, path := range []string{"/status", "/healthz", "/readyz", "/version", "/docs"} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusOK, rr.Code)
		}
	}
}
