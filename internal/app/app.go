// Package app assembles the directory and the protocol handlers from configuration.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bbernstein/weatherhub/graph"
	"github.com/bbernstein/weatherhub/internal/api"
	"github.com/bbernstein/weatherhub/internal/cache"
	"github.com/bbernstein/weatherhub/internal/config"
	"github.com/bbernstein/weatherhub/internal/observability"
	"github.com/bbernstein/weatherhub/internal/seed"
	"github.com/bbernstein/weatherhub/internal/tools"
	"github.com/bbernstein/weatherhub/internal/weather"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

// CatalogLoader resolves a catalog source such as "builtin" or "s3://bucket/key".
type CatalogLoader interface {
	Load(ctx context.Context, source string) (*seed.Catalog, error)
}

type App struct {
	Directory *weather.Directory
	Metrics   *observability.Metrics
	Tools     *server.MCPServer
	Router    http.Handler
}

// Options are the dependencies of Build. Zero values select production defaults.
type Options struct {
	Loader  CatalogLoader
	Metrics *observability.Metrics
	Cache   *config.CacheConfig
	Now     time.Time
}

// Build loads the catalog, builds the directory anchored at startup and wires REST,
// GraphQL and tools onto one router.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if opts.Loader == nil {
		opts.Loader = seed.NewLoader()
	}
	if opts.Metrics == nil {
		opts.Metrics = observability.NewMetrics()
	}
	if opts.Cache == nil {
		opts.Cache = config.GetCacheConfig()
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	catalog, err := opts.Loader.Load(ctx, cfg.CatalogSource)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %q: %w", cfg.CatalogSource, err)
	}

	dir, err := weather.NewDirectory(catalog, opts.Now)
	if err != nil {
		return nil, fmt.Errorf("building directory: %w", err)
	}
	opts.Metrics.StationsLoaded.Set(float64(dir.StationCount()))

	var responses *cache.ResponseCache
	if opts.Cache.EnableLRUCache {
		if responses, err = cache.NewResponseCache(opts.Cache); err != nil {
			return nil, fmt.Errorf("creating GraphQL response cache: %w", err)
		}
	}

	toolServer := tools.NewServer(dir, opts.Metrics)
	router := api.NewRouter(api.RouterConfig{
		Service:        dir,
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        opts.Metrics,
		Ready: api.ReadinessFunc(func(ctx context.Context) error {
			if dir.StationCount() == 0 {
				return fmt.Errorf("catalog has no stations")
			}
			return nil
		}),
		GraphQL: graph.NewHandler(&graph.Resolver{Service: dir}, responses, opts.Metrics),
		Tools:   tools.NewHTTPHandler(toolServer),
	})

	log.Info().
		Str("catalog_source", cfg.CatalogSource).
		Int("station_count", dir.StationCount()).
		Bool("graphql_cache", responses != nil).
		Msg("Application assembled")

	return &App{
		Directory: dir,
		Metrics:   opts.Metrics,
		Tools:     toolServer,
		Router:    router,
	}, nil
}
