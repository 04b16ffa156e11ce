package info

import (
	_ "embed"
	"html/template"
	"net/http"
	"strings"
)

//go:embed assets/docs.html
var docsHTML string

var defaultDocsTemplate = template.Must(template.New("docs").Parse(docsHTML))

// DocsSpecPath is where the OpenAPI JSON document is served, relative to the
// base URL.
const DocsSpecPath = "/docs/openapi.json"

func defaultTemplateDataProvider(_ *http.Request, baseURL string) any {
	return map[string]any{
		"BaseURL": baseURL,
		"SpecURL": strings.TrimSuffix(baseURL, "/") + DocsSpecPath,
		"Title":   "wordgate API",
	}
}
