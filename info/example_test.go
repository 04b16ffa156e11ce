package info_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/drblury/wordgate/info"
	"github.com/drblury/wordgate/probe"
)

func ExampleInfoHandler_Register() {
	handler := info.NewInfoHandler(
		info.WithInfoProvider(func() any {
			return map[string]string{"version": "1.2.3"}
		}),
		info.WithReadinessChecks(info.Check{
			Name:  "words",
			Probe: probe.NewPingProbe("words", func(ctx context.Context) error { return nil }),
		}),
	)

	mux := http.NewServeMux()
	handler.Register(mux)

	for _, path := range []string{"/readyz", "/version"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		fmt.Println(rec.Code, strings.TrimSpace(rec.Body.String()))
	}

	// Output:
	// 200 {"status":"ready","details":["words"]}
	// 200 {"version":"1.2.3"}
}
