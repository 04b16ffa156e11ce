// Package wordgate is a small HTTP gateway in front of three public services:
// a random-word generator, the Wikipedia extracts API and a random-joke
// generator. It also counts the words it serves and reports the most common
// ones.
//
// The binary lives in cmd/wordgate; the packages below are usable on their
// own.
//
// # Packages
//
//   - frequency: the concurrency-safe word counter with top-N retrieval.
//   - upstream: clients for the three third-party services.
//   - gateway: the HTTP handlers that tie the clients to the counter.
//   - apierr: error values tagged with a kind that decides the HTTP status.
//   - responder: JSON rendering, the {"message"} error envelope and trace IDs.
//   - router: logging, CORS, OpenAPI validation and timeout middleware.
//   - info: status, probe, version and documentation endpoints.
//   - probe: HTTP and MongoDB readiness checks.
//   - mirror: optional periodic copy of the counts into MongoDB.
//   - config: viper-backed settings.
//   - jsonutil: thin sonic wrappers.
//
// # Quick Start
//
//	tracker := frequency.NewTracker()
//	client := upstream.NewHTTPClient(upstream.DefaultTimeout)
//	resp := gateway.NewResponder(responder.WithLogger(logger))
//
//	mux := http.NewServeMux()
//	gateway.NewHandler(tracker,
//	    upstream.NewWordClient(upstream.DefaultWordURL, client),
//	    upstream.NewArticleClient(upstream.DefaultArticleURL, client),
//	    upstream.NewJokeClient(upstream.DefaultJokeURL, client),
//	    gateway.WithResponder(resp),
//	).Register(mux)
//
//	http.ListenAndServe(":8080", router.New(mux, router.WithLogger(logger)))
package wordgate
