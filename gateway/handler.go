package gateway

import (
	"context"
	"net/http"

	"github.com/drblury/wordgate/apierr"
	"github.com/drblury/wordgate/frequency"
	"github.com/drblury/wordgate/responder"
	"github.com/drblury/wordgate/upstream"
)

// WordSource returns random words.
type WordSource interface {
	RandomWord(ctx context.Context, length upstream.Length) (string, error)
}

// ArticleSource returns the article extract for a title.
type ArticleSource interface {
	Article(ctx context.Context, title string) (upstream.Article, error)
}

// JokeSource returns random jokes about a named character.
type JokeSource interface {
	RandomJoke(ctx context.Context, firstName, lastName string) (string, error)
}

// Option configures a Handler.
type Option func(*Handler)

// Handler serves the gateway routes.
type Handler struct {
	*responder.Responder
	tracker  *frequency.Tracker
	words    WordSource
	articles ArticleSource
	jokes    JokeSource
}

// NewHandler wires the collaborators of the gateway routes. The tracker is
// owned by the caller so it can be shared with other consumers such as the
// mirror.
func NewHandler(tracker *frequency.Tracker, words WordSource, articles ArticleSource, jokes JokeSource, opts ...Option) *Handler {
	h := &Handler{
		Responder: NewResponder(),
		tracker:   tracker,
		words:     words,
		articles:  articles,
		jokes:     jokes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// WithResponder replaces the responder used for JSON rendering. It should be
// built with NewResponder so apierr kinds map to the right status.
func WithResponder(r *responder.Responder) Option {
	return func(h *Handler) {
		if r != nil {
			h.Responder = r
		}
	}
}

// NewResponder returns a responder that renders apierr errors as HTTP 400
// with their caller-facing message.
func NewResponder(opts ...responder.ResponderOption) *responder.Responder {
	base := []responder.ResponderOption{
		responder.WithErrorClassifier(ClassifyError),
		responder.WithMessageFunc(apierr.Message),
	}
	return responder.NewResponder(append(base, opts...)...)
}

// ClassifyError maps apierr kinds to HTTP status codes.
func ClassifyError(err error) (int, bool) {
	switch apierr.KindOf(err) {
	case apierr.KindInvalidArgument, apierr.KindUpstream:
		return http.StatusBadRequest, true
	default:
		return 0, false
	}
}

// Register mounts the gateway routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /randomword/{$}", h.GetRandomWord)
	mux.HandleFunc("GET /article/{$}", h.GetArticle)
	mux.HandleFunc("GET /commonwords/{$}", h.GetCommonWords)
	mux.HandleFunc("GET /randomjoke/{$}", h.GetRandomJoke)
}
