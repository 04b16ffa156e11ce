package responder

import (
	"log/slog"
	"net/http"
)

const (
	jsonContentType = "application/json"

	// TraceIDHeader carries the identifier that ties an error response to its log record.
	TraceIDHeader = "X-Trace-Id"
)

// ErrorClassifierFunc inspects an error and returns the HTTP status that should
// be used for the response. The boolean indicates whether the error was
// classified and prevents the generic internal server handler from running.
type ErrorClassifierFunc func(err error) (status int, handled bool)

// MessageFunc renders the caller-facing message for an error.
type MessageFunc func(err error) string

// ResponderOption follows the functional options pattern used by NewResponder
// to configure optional collaborators.
type ResponderOption func(*Responder)

type statusMeta struct {
	logLevel slog.Level
	logMsg   string
}

// StatusMetadata allows callers to customise how particular HTTP status codes
// are logged.
type StatusMetadata struct {
	LogLevel slog.Level
	LogMsg   string
}

// Responder centralises error handling, JSON rendering, and logging for HTTP
// handlers. Error responses share the {"message": ...} envelope and carry a
// trace identifier that also appears in the log record.
type Responder struct {
	log             *slog.Logger
	statusMetadata  map[int]statusMeta
	errorClassifier ErrorClassifierFunc
	messageFunc     MessageFunc
}

// NewResponder constructs a Responder with default status metadata and the
// global slog logger. Use ResponderOption functions to override specific
// behaviours.
func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{
		log:            slog.Default(),
		statusMetadata: defaultStatusMetadata(),
		messageFunc:    defaultMessage,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// WithLogger injects a custom slog logger for error reporting.
func WithLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithErrorClassifier installs a classifier used by HandleErrors to derive the
// HTTP status code from returned errors.
func WithErrorClassifier(classifier ErrorClassifierFunc) ResponderOption {
	return func(r *Responder) {
		r.errorClassifier = classifier
	}
}

// WithMessageFunc controls which text of an error reaches the client.
func WithMessageFunc(fn MessageFunc) ResponderOption {
	return func(r *Responder) {
		if fn != nil {
			r.messageFunc = fn
		}
	}
}

// WithStatusMetadata overrides the log metadata used for a specific HTTP
// status code.
func WithStatusMetadata(status int, meta StatusMetadata) ResponderOption {
	return func(r *Responder) {
		if r.statusMetadata == nil {
			r.statusMetadata = make(map[int]statusMeta)
		}
		r.statusMetadata[status] = normalizeStatusMeta(status, statusMeta{
			logLevel: meta.LogLevel,
			logMsg:   meta.LogMsg,
		})
	}
}

// Logger returns the slog logger used internally by the responder.
func (r *Responder) Logger() *slog.Logger {
	return r.logger()
}

func (r *Responder) logger() *slog.Logger {
	if r == nil || r.log == nil {
		return slog.Default()
	}
	return r.log
}

func (r *Responder) classifyError(err error) (int, bool) {
	if r.errorClassifier == nil {
		return 0, false
	}
	return r.errorClassifier(err)
}

func (r *Responder) message(err error) string {
	if r.messageFunc == nil {
		return defaultMessage(err)
	}
	return r.messageFunc(err)
}

func defaultMessage(err error) string {
	return err.Error()
}

func defaultStatusMetadata() map[int]statusMeta {
	return map[int]statusMeta{
		http.StatusInternalServerError: {logLevel: slog.LevelError, logMsg: "Internal Server Error"},
		http.StatusBadRequest:          {logLevel: slog.LevelWarn, logMsg: "Bad Request"},
		http.StatusNotFound:            {logLevel: slog.LevelInfo, logMsg: "Not Found"},
		http.StatusServiceUnavailable:  {logLevel: slog.LevelWarn, logMsg: "Service Unavailable"},
	}
}
