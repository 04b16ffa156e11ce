// Package upstream holds the clients for the third-party services the
// gateway proxies: a random-word generator, the Wikipedia extracts API, and a
// random-joke generator.
//
// Every client issues exactly one outbound request per call (cache hits
// aside) and reports failures as apierr errors of kind KindUpstream.
package upstream
