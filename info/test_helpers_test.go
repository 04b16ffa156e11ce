package info

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/drblury/wordgate/responder"
)

func decodeProbePayload(t *testing.T, body []byte) probePayload {
	t.Helper()

	var payload probePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("failed to decode probe payload: %v (body: %s)", err, string(body))
	}
	return payload
}

func decodeErrorBody(t *testing.T, body []byte) responder.ErrorBody {
	t.Helper()

	var payload responder.ErrorBody
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("failed to decode error body: %v (body: %s)", err, string(body))
	}
	return payload
}

func quietResponder() *responder.Responder {
	return responder.NewResponder(responder.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}
