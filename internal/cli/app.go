package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/drblury/wordgate/api"
	"github.com/drblury/wordgate/config"
	"github.com/drblury/wordgate/frequency"
	"github.com/drblury/wordgate/gateway"
	"github.com/drblury/wordgate/info"
	"github.com/drblury/wordgate/mirror"
	"github.com/drblury/wordgate/probe"
	"github.com/drblury/wordgate/responder"
	"github.com/drblury/wordgate/router"
	"github.com/drblury/wordgate/upstream"
)

var quietRoutes = []string{"/healthz", "/readyz", "/status"}

var hiddenHeaders = []string{"Authorization", "Cookie"}

// app is the assembled gateway: the routed handler plus the optional mirror.
type app struct {
	handler http.Handler
	tracker *frequency.Tracker
	logger  *slog.Logger

	mongo  *mongo.Client
	mirror *mirror.Mirror
	done   chan struct{}
	once   sync.Once
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{
		tracker: frequency.NewTracker(),
		logger:  logger,
		done:    make(chan struct{}),
	}

	client := upstream.NewHTTPClient(cfg.Upstream.Timeout)
	words := upstream.NewWordClient(cfg.Upstream.WordURL, client,
		upstream.WithLengthParam(cfg.Upstream.WordLengthParam))
	articles := upstream.NewArticleClient(cfg.Upstream.ArticleURL, client,
		upstream.WithArticleCache(cfg.Upstream.ArticleCacheTTL))
	jokes := upstream.NewJokeClient(cfg.Upstream.JokeURL, client)

	resp := gateway.NewResponder(responder.WithLogger(logger))

	var readiness []info.Check
	if cfg.Server.ProbeUpstreams {
		readiness = append(readiness,
			info.Check{Name: "words", Probe: probe.NewHTTPProbe("words", http.MethodGet, cfg.Upstream.WordURL, client)},
			info.Check{Name: "articles", Probe: probe.NewHTTPProbe("articles", http.MethodGet, cfg.Upstream.ArticleURL, client)},
			info.Check{Name: "jokes", Probe: probe.NewHTTPProbe("jokes", http.MethodGet, cfg.Upstream.JokeURL, client)},
		)
	}

	if cfg.Mirror.Enabled() {
		mc, err := mirror.Connect(ctx, cfg.Mirror.URI)
		if err != nil {
			return nil, err
		}
		a.mongo = mc
		coll := mc.Database(cfg.Mirror.Database).Collection(cfg.Mirror.Collection)
		a.mirror = mirror.New(a.tracker, coll,
			mirror.WithInterval(cfg.Mirror.Interval),
			mirror.WithLogger(logger))
		readiness = append(readiness, info.Check{Name: "mongo", Probe: probe.NewMongoPingProbe(mc, nil)})
	}

	mux := http.NewServeMux()
	gateway.NewHandler(a.tracker, words, articles, jokes, gateway.WithResponder(resp)).Register(mux)
	info.NewInfoHandler(
		info.WithInfoResponder(resp),
		info.WithBaseURL(cfg.Server.BaseURL),
		info.WithInfoProvider(func() any { return buildInfo() }),
		info.WithSwaggerProvider(api.JSON),
		info.WithProbeTimeout(cfg.Server.ProbeTimeout),
		info.WithReadinessChecks(readiness...),
	).Register(mux)

	routerOpts := []router.Option{
		router.WithLogger(logger),
		router.WithConfig(router.Config{
			Timeout:         cfg.Server.Timeout,
			CORS:            router.CORSConfig{Origins: cfg.Server.CORSOrigins},
			QuietdownRoutes: quietRoutes,
			HideHeaders:     hiddenHeaders,
		}),
	}
	if cfg.Server.Validate {
		swagger, err := api.Load(ctx)
		if err != nil {
			a.close()
			return nil, err
		}
		routerOpts = append(routerOpts,
			router.WithSwagger(swagger),
			router.WithValidationErrorHandler(func(w http.ResponseWriter, message string, status int) {
				resp.HandleAPIError(w, nil, status, errors.New(message))
			}),
		)
	} else {
		routerOpts = append(routerOpts, router.Without(router.StageOpenAPI))
	}

	a.handler = router.New(mux, routerOpts...)
	return a, nil
}

// runMirror blocks until ctx is cancelled. Without a mirror it returns at once.
func (a *app) runMirror(ctx context.Context) {
	defer a.once.Do(func() { close(a.done) })
	if a.mirror == nil {
		return
	}
	a.mirror.Run(ctx)
}

// wait blocks until runMirror has returned.
func (a *app) wait() {
	<-a.done
}

func (a *app) close() {
	if a.mongo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.mongo.Disconnect(ctx); err != nil {
		a.logger.Warn("mongo disconnect failed", "error", err)
	}
}
