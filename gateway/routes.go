package gateway

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/drblury/wordgate/apierr"
	"github.com/drblury/wordgate/frequency"
	"github.com/drblury/wordgate/upstream"
)

// Query parameters and their defaults.
const (
	paramLength    = "len"
	paramTitle     = "title"
	paramCount     = "n"
	paramCountAlt  = "N"
	paramFirstName = "first_name"
	paramLastName  = "last_name"

	// defaultFirstName and defaultLastName are sent when the caller names no
	// character; the joke upstream then picks its own.
	defaultFirstName = ""
	defaultLastName  = ""
)

type wordResponse struct {
	Word string `json:"word"`
}

type popularResponse struct {
	Popular []frequency.WordCount `json:"popular"`
}

type jokeResponse struct {
	Joke string `json:"joke"`
}

// GetRandomWord serves GET /randomword/?len=<int>. A len outside (3, 20) or
// not numeric is ignored.
func (h *Handler) GetRandomWord(w http.ResponseWriter, r *http.Request) {
	word, err := h.fetchWord(r.Context(), upstream.ParseLength(r.URL.Query().Get(paramLength)))
	if err != nil {
		h.HandleErrors(w, r, err, "random word lookup failed")
		return
	}
	h.RespondWithJSON(w, r, http.StatusOK, wordResponse{Word: word})
}

// GetArticle serves GET /article/?title=<string>. Without a title a random
// word is fetched, counted, and used as the title.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get(paramTitle))
	if title == "" {
		word, err := h.fetchWord(r.Context(), upstream.Length{})
		if err != nil {
			h.HandleErrors(w, r, err, "random title lookup failed")
			return
		}
		title = word
	}

	article, err := h.articles.Article(r.Context(), title)
	if err != nil {
		h.HandleErrors(w, r, err, "article lookup failed")
		return
	}
	h.RespondWithJSON(w, r, http.StatusOK, article)
}

// GetCommonWords serves GET /commonwords/?n=<int>. N is accepted as an alias
// of n.
func (h *Handler) GetCommonWords(w http.ResponseWriter, r *http.Request) {
	n, err := parseCount(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	top, err := h.tracker.Top(n)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	h.RespondWithJSON(w, r, http.StatusOK, popularResponse{Popular: top})
}

// GetRandomJoke serves GET /randomjoke/?first_name=<string>&last_name=<string>.
func (h *Handler) GetRandomJoke(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	firstName := defaultFirstName
	if query.Has(paramFirstName) {
		firstName = query.Get(paramFirstName)
	}
	lastName := defaultLastName
	if query.Has(paramLastName) {
		lastName = query.Get(paramLastName)
	}

	joke, err := h.jokes.RandomJoke(r.Context(), firstName, lastName)
	if err != nil {
		h.HandleErrors(w, r, err, "joke lookup failed")
		return
	}
	h.RespondWithJSON(w, r, http.StatusOK, jokeResponse{Joke: joke})
}

// fetchWord gets a random word and counts it once the fetch succeeded.
func (h *Handler) fetchWord(ctx context.Context, length upstream.Length) (string, error) {
	word, err := h.words.RandomWord(ctx, length)
	if err != nil {
		return "", err
	}
	h.tracker.Record(word)
	return word, nil
}

func parseCount(r *http.Request) (int, error) {
	query := r.URL.Query()
	raw := query.Get(paramCount)
	if raw == "" {
		raw = query.Get(paramCountAlt)
	}
	if raw == "" {
		return 0, apierr.InvalidArgument("query parameter n is required")
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apierr.InvalidArgument("n must be a positive integer, got %q", raw)
	}
	return n, nil
}
