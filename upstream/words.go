package upstream

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/drblury/wordgate/apierr"
	"github.com/drblury/wordgate/jsonutil"
)

const (
	// DefaultWordURL serves a JSON array holding one random word.
	DefaultWordURL = "https://random-word-api.herokuapp.com/word"
	// DefaultLengthParam is the query parameter DefaultWordURL reads the length from.
	DefaultLengthParam = "length"

	// MinWordLength and MaxWordLength are exclusive bounds on a requested length.
	MinWordLength = 3
	MaxWordLength = 20
)

// Length is an optional word length. The zero value requests a word of the
// upstream's default length.
type Length struct {
	value int
	set   bool
}

// ParseLength converts a raw query value into a Length. Values that are not
// integers strictly between MinWordLength and MaxWordLength yield the zero
// Length, so the upstream is asked for its default.
func ParseLength(raw string) Length {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= MinWordLength || n >= MaxWordLength {
		return Length{}
	}
	return Length{value: n, set: true}
}

// Value reports the requested length and whether one was set.
func (l Length) Value() (int, bool) {
	return l.value, l.set
}

// WordClientOption configures a WordClient.
type WordClientOption func(*WordClient)

// WithLengthParam overrides the query parameter that carries the word length.
func WithLengthParam(name string) WordClientOption {
	return func(c *WordClient) {
		if name = strings.TrimSpace(name); name != "" {
			c.lengthParam = name
		}
	}
}

// WordClient fetches random words.
type WordClient struct {
	endpoint    string
	client      HTTPDoer
	lengthParam string
}

// NewWordClient builds a WordClient for endpoint. A nil client uses an
// *http.Client with DefaultTimeout.
func NewWordClient(endpoint string, client HTTPDoer, opts ...WordClientOption) *WordClient {
	c := &WordClient{
		endpoint:    endpoint,
		client:      doerOrDefault(client),
		lengthParam: DefaultLengthParam,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// RandomWord returns one random word, honouring length when it is set.
func (c *WordClient) RandomWord(ctx context.Context, length Length) (string, error) {
	params := url.Values{}
	if n, ok := length.Value(); ok {
		params.Set(c.lengthParam, strconv.Itoa(n))
	}

	body, err := get(ctx, c.client, c.endpoint, params)
	if err != nil {
		return "", err
	}
	return parseWord(body)
}

// parseWord accepts either a bare word or a JSON array whose first element is
// the word.
func parseWord(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var words []string
		if err := jsonutil.Unmarshal(trimmed, &words); err != nil {
			return "", apierr.Upstream("Malformed response from the word API", fmt.Errorf("decode word list: %w", err))
		}
		if len(words) == 0 {
			return "", apierr.Upstream("No word in the API response", nil)
		}
		trimmed = []byte(strings.TrimSpace(words[0]))
	}

	if len(trimmed) == 0 {
		return "", apierr.Upstream("No word in the API response", nil)
	}
	return string(trimmed), nil
}
