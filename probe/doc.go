// Package probe converts ping functions, MongoDB clients, and HTTP endpoints
// into readiness checks for the info handler. See ExampleNewHTTPProbe for the
// upstream service check used by wordgate.
package probe
