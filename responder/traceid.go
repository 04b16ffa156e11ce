package responder

import "github.com/oklog/ulid/v2"

// newTraceID returns a ULID so trace identifiers in logs sort by creation time.
// ulid.Make draws from a process-wide monotonic source that is safe for
// concurrent use.
func newTraceID() string {
	return ulid.Make().String()
}
