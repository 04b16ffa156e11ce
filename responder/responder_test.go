package responder

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
)

func decodeErrorBody(t *testing.T, body []byte) ErrorBody {
	t.Helper()

	var payload ErrorBody
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("failed to decode error body: %v (body: %s)", err, string(body))
	}
	return payload
}

func TestRespondWithJSON(t *testing.T) {
	r := NewResponder()
	rr := httptest.NewRecorder()

	r.RespondWithJSON(rr, httptest.NewRequest(http.MethodGet, "/randomword/", nil), http.StatusOK, map[string]string{"word": "gopher"})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != jsonContentType {
		t.Fatalf("expected content type %q, got %q", jsonContentType, got)
	}
	if got := rr.Body.String(); got != "{\"word\":\"gopher\"}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestHandleBadRequestError(t *testing.T) {
	var logs bytes.Buffer
	r := NewResponder(WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/commonwords/?n=abc", nil)

	r.HandleBadRequestError(rr, req, errors.New("n must be a positive integer"))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	body := decodeErrorBody(t, rr.Body.Bytes())
	if body.Message != "n must be a positive integer" {
		t.Fatalf("unexpected message %q", body.Message)
	}

	traceID := rr.Header().Get(TraceIDHeader)
	if _, err := ulid.Parse(traceID); err != nil {
		t.Fatalf("expected ULID trace id, got %q: %v", traceID, err)
	}
	if !strings.Contains(logs.String(), traceID) {
		t.Fatalf("expected log record to contain trace id %s, got %s", traceID, logs.String())
	}
	if !strings.Contains(logs.String(), `"level":"WARN"`) {
		t.Fatalf("expected bad request to log at WARN, got %s", logs.String())
	}
	if !strings.Contains(logs.String(), `"instance":"/commonwords/?n=abc"`) {
		t.Fatalf("expected request instance in log, got %s", logs.String())
	}
}

func TestHandleErrorsUsesClassifier(t *testing.T) {
	errKnown := errors.New("known")
	r := NewResponder(
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		WithErrorClassifier(func(err error) (int, bool) {
			if errors.Is(err, errKnown) {
				return http.StatusBadRequest, true
			}
			return 0, false
		}),
	)

	t.Run("classified", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.HandleErrors(rr, httptest.NewRequest(http.MethodGet, "/", nil), errKnown)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
		}
	})

	t.Run("unclassified falls back to 500", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.HandleErrors(rr, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("other"))
		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
		}
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.HandleErrors(rr, httptest.NewRequest(http.MethodGet, "/", nil), nil)
		if rr.Body.Len() != 0 {
			t.Fatalf("expected empty body, got %q", rr.Body.String())
		}
	})
}

func TestWithMessageFunc(t *testing.T) {
	r := NewResponder(
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		WithMessageFunc(func(error) string { return "sanitised" }),
	)
	rr := httptest.NewRecorder()

	r.HandleInternalServerError(rr, nil, errors.New("dsn=secret"))

	if body := decodeErrorBody(t, rr.Body.Bytes()); body.Message != "sanitised" {
		t.Fatalf("expected sanitised message, got %q", body.Message)
	}
}

func TestWithStatusMetadata(t *testing.T) {
	var logs bytes.Buffer
	r := NewResponder(
		WithLogger(slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		WithStatusMetadata(http.StatusTeapot, StatusMetadata{LogLevel: slog.LevelDebug, LogMsg: "short and stout"}),
	)
	rr := httptest.NewRecorder()

	r.HandleAPIError(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusTeapot, errors.New("tip me over"))

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}
	if !strings.Contains(logs.String(), `"msg":"short and stout"`) || !strings.Contains(logs.String(), `"level":"DEBUG"`) {
		t.Fatalf("expected custom metadata in log, got %s", logs.String())
	}
}

func TestNewTraceIDIsMonotonic(t *testing.T) {
	first := newTraceID()
	second := newTraceID()
	if first >= second {
		t.Fatalf("expected increasing trace ids, got %s then %s", first, second)
	}
}
