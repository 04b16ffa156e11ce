package upstream

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/drblury/wordgate/apierr"
	"github.com/drblury/wordgate/jsonutil"
)

// DefaultArticleURL is the MediaWiki action API of the English Wikipedia.
const DefaultArticleURL = "https://en.wikipedia.org/w/api.php"

const msgNoArticle = "No article in the API response"

// Article is the plain-text extract of a Wikipedia page.
type Article struct {
	Title   string `json:"title"`
	Article string `json:"article"`
}

type extractResponse struct {
	Query *struct {
		Pages map[string]extractPage `json:"pages"`
	} `json:"query"`
}

type extractPage struct {
	Title   string  `json:"title"`
	Extract *string `json:"extract"`
	// Missing and Invalid are present, with any value, only for pages that
	// do not exist or cannot exist.
	Missing any `json:"missing"`
	Invalid any `json:"invalid"`
}

// ArticleClientOption configures an ArticleClient.
type ArticleClientOption func(*ArticleClient)

// WithArticleCache keeps fetched articles for ttl. A non-positive ttl leaves
// caching disabled.
func WithArticleCache(ttl time.Duration) ArticleClientOption {
	return func(c *ArticleClient) {
		if ttl > 0 {
			c.cache = gocache.New(ttl, 2*ttl)
		}
	}
}

// ArticleClient fetches Wikipedia extracts by title.
type ArticleClient struct {
	endpoint string
	client   HTTPDoer
	cache    *gocache.Cache
}

// NewArticleClient builds an ArticleClient for a MediaWiki endpoint. A nil
// client uses an *http.Client with DefaultTimeout.
func NewArticleClient(endpoint string, client HTTPDoer, opts ...ArticleClientOption) *ArticleClient {
	c := &ArticleClient{
		endpoint: endpoint,
		client:   doerOrDefault(client),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Article returns the extract for title.
func (c *ArticleClient) Article(ctx context.Context, title string) (Article, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Article{}, apierr.InvalidArgument("title must not be empty")
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(title); ok {
			return cached.(Article), nil
		}
	}

	params := url.Values{
		"format":      {"json"},
		"action":      {"query"},
		"prop":        {"extracts"},
		"explaintext": {"1"},
		"redirects":   {"1"},
		"titles":      {title},
	}
	body, err := get(ctx, c.client, c.endpoint, params)
	if err != nil {
		return Article{}, err
	}

	extract, err := parseExtract(body)
	if err != nil {
		return Article{}, err
	}

	article := Article{Title: title, Article: extract}
	if c.cache != nil {
		c.cache.SetDefault(title, article)
	}
	return article, nil
}

func parseExtract(body []byte) (string, error) {
	var resp extractResponse
	if err := jsonutil.Unmarshal(body, &resp); err != nil {
		return "", apierr.Upstream("Malformed response from the article API", fmt.Errorf("decode extract: %w", err))
	}
	if resp.Query == nil || len(resp.Query.Pages) == 0 {
		return "", apierr.Upstream(msgNoArticle, nil)
	}

	// A single title yields a single page; sorting keeps the choice stable
	// should the upstream ever return more.
	ids := make([]string, 0, len(resp.Query.Pages))
	for id := range resp.Query.Pages {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	page := resp.Query.Pages[ids[0]]
	if page.Missing != nil || page.Invalid != nil || page.Extract == nil {
		return "", apierr.Upstream(msgNoArticle, fmt.Errorf("page %q has no extract", page.Title))
	}
	return *page.Extract, nil
}
