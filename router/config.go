package router

import "time"

// Config holds the tunables of the default middleware chain.
type Config struct {
	// Timeout bounds the total time spent handling one request. Zero disables
	// the timeout middleware.
	Timeout time.Duration
	CORS    CORSConfig
	// QuietdownRoutes lists paths that are not request-logged, typically probes.
	QuietdownRoutes []string
	// HideHeaders lists request headers whose values are redacted in logs.
	HideHeaders []string
}

// CORSConfig enables CORS handling when at least one origin is configured.
// The "*" origin allows every caller.
type CORSConfig struct {
	Origins          []string
	Methods          []string
	Headers          []string
	AllowCredentials bool
}
