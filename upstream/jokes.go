package upstream

import (
	"context"
	"fmt"
	"html"
	"net/url"

	"github.com/drblury/wordgate/apierr"
	"github.com/drblury/wordgate/jsonutil"
)

// DefaultJokeURL is the Internet Chuck Norris Database random-joke endpoint.
const DefaultJokeURL = "http://api.icndb.com/jokes/random"

type jokeResponse struct {
	Value *struct {
		Joke *string `json:"joke"`
	} `json:"value"`
}

// JokeClient fetches random jokes about a configurable character.
type JokeClient struct {
	endpoint string
	client   HTTPDoer
}

// NewJokeClient builds a JokeClient for endpoint. A nil client uses an
// *http.Client with DefaultTimeout.
func NewJokeClient(endpoint string, client HTTPDoer) *JokeClient {
	return &JokeClient{endpoint: endpoint, client: doerOrDefault(client)}
}

// RandomJoke returns a joke. Empty names let the upstream use its default
// character.
func (c *JokeClient) RandomJoke(ctx context.Context, firstName, lastName string) (string, error) {
	params := url.Values{
		"firstName": {firstName},
		"lastName":  {lastName},
	}
	body, err := get(ctx, c.client, c.endpoint, params)
	if err != nil {
		return "", err
	}

	var resp jokeResponse
	if err := jsonutil.Unmarshal(body, &resp); err != nil {
		return "", apierr.Upstream("Malformed response from the joke API", fmt.Errorf("decode joke: %w", err))
	}
	if resp.Value == nil || resp.Value.Joke == nil {
		return "", apierr.Upstream("No joke in the API response, sorry", nil)
	}
	// The joke API HTML-escapes quotes.
	return html.UnescapeString(*resp.Value.Joke), nil
}
