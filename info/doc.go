// Package info exposes build metadata, health probes, and the OpenAPI
// document of the gateway together with an embedded Stoplight Elements
// viewer.
//
// See ExampleInfoHandler_Register for a runnable wiring of the handler and
// probes.
package info
