// Package api embeds the OpenAPI description of the gateway routes.
package api

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.json
var document []byte

// JSON returns the raw OpenAPI document.
func JSON() ([]byte, error) {
	return document, nil
}

// Load parses and validates the embedded document. Each call returns a fresh
// *openapi3.T because the router mutates it.
func Load(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}
