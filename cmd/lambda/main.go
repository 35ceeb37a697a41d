package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bbernstein/weatherhub/internal/app"
	"github.com/bbernstein/weatherhub/internal/config"
	"github.com/bbernstein/weatherhub/internal/lambdaproxy"
	"github.com/bbernstein/weatherhub/internal/observability"
	"github.com/rs/zerolog/log"
)

// appBuilder assembles the application for a configuration.
type appBuilder interface {
	Build(ctx context.Context, cfg *config.Config) (*app.App, error)
}

// defaultAppBuilder registers its metrics once; warm invocations may rebuild.
type defaultAppBuilder struct {
	metrics *observability.Metrics
}

func (b *defaultAppBuilder) Build(ctx context.Context, cfg *config.Config) (*app.App, error) {
	if b.metrics == nil {
		b.metrics = observability.NewMetrics()
	}
	return app.Build(ctx, cfg, app.Options{Metrics: b.metrics})
}

var (
	proxy       *lambdaproxy.Proxy
	setupOnce   sync.Once
	builder     appBuilder = &defaultAppBuilder{}
	initHandler            = defaultInitHandler
)

func defaultInitHandler(ctx context.Context) (*lambdaproxy.Proxy, error) {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	a, err := builder.Build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("building application: %w", err)
	}
	return lambdaproxy.New(a.Router, nil), nil
}

func handleRequest(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if proxy == nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"responseType":"error","error":"Handler not initialized"}`,
		}, fmt.Errorf("handler not initialized")
	}
	return proxy.HandleRequest(ctx, event)
}

func InitializeService() error {
	var initError error
	setupOnce.Do(func() {
		if builder == nil {
			builder = &defaultAppBuilder{}
		}
		log.Debug().Msg("Initializing weather service...")
		var err error
		proxy, err = initHandler(context.Background())
		if err != nil {
			initError = fmt.Errorf("failed to initialize handler: %w", err)
			log.Error().Err(err).Msg("Failed to initialize handler")
			return
		}
		log.Debug().Msg("Weather service initialized successfully")
	})
	return initError
}

func init() {
	if err := InitializeService(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}
}

func main() {
	lambda.Start(handleRequest)
}
