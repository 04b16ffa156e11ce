// Package router wraps http.ServeMux with request logging, CORS, OpenAPI
// validation, and a per-request timeout, applied in that order around the
// gateway handler.
package router
