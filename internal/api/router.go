package api

import (
	"context"
	"net/http"
	"time"

	"github.com/bbernstein/weatherhub/internal/observability"
	"github.com/bbernstein/weatherhub/internal/weather"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// ReadinessFunc adapts a function to ReadinessChecker.
type ReadinessFunc func(ctx context.Context) error

func (f ReadinessFunc) CheckReadiness(ctx context.Context) error {
	return f(ctx)
}

// RouterConfig wires the REST routes to a directory and mounts the other protocol
// handlers next to them. GraphQL, Tools and Ready are optional.
type RouterConfig struct {
	Service        weather.Service
	AllowedOrigins []string
	Metrics        *observability.Metrics
	Ready          ReadinessChecker
	GraphQL        http.Handler
	Tools          http.Handler
	// MetricsHandler defaults to the Prometheus default registry handler.
	MetricsHandler http.Handler
}

func NewRouter(cfg RouterConfig) *mux.Router {
	h := &Handler{service: cfg.Service, metrics: cfg.Metrics}

	r := mux.NewRouter()
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/readyz", handleReady(cfg.Ready)).Methods(http.MethodGet, http.MethodOptions)
	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Handle("/metrics", metricsHandler).Methods(http.MethodGet, http.MethodOptions)

	api := r.PathPrefix("/api/weather").Subrouter()
	api.Use(h.observe)
	h.setupRoutes(api)

	if cfg.GraphQL != nil {
		r.Handle("/graphql", cfg.GraphQL).Methods(http.MethodGet, http.MethodPost, http.MethodOptions)
	}
	if cfg.Tools != nil {
		r.PathPrefix("/mcp").Handler(cfg.Tools)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Error(w, "Not Found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	return r
}

// setupRoutes registers the read routes. Each accepts OPTIONS so preflight requests reach
// corsMiddleware; "/stations/nearest" must precede "/stations/{id}".
func (h *Handler) setupRoutes(api *mux.Router) {
	routes := []struct {
		name    string
		path    string
		handler http.HandlerFunc
	}{
		{"list_stations", "/stations", h.listStations},
		{"nearest_stations", "/stations/nearest", h.nearestStations},
		{"get_station", "/stations/{id}", h.getStation},
		{"current_conditions", "/stations/{stationId}/conditions", h.currentConditions},
		{"daily_forecast", "/stations/{stationId}/forecast/daily", h.dailyForecast},
		{"hourly_forecast", "/stations/{stationId}/forecast/hourly", h.hourlyForecast},
		{"air_quality", "/stations/{stationId}/air-quality", h.airQuality},
		{"active_alerts", "/alerts", h.activeAlerts},
	}
	for _, route := range routes {
		api.HandleFunc(route.path, route.handler).
			Methods(http.MethodGet, http.MethodOptions).
			Name(route.name)
	}
}

// corsMiddleware echoes the request origin when it is allowed. A "*" entry allows every
// origin.
func corsMiddleware(allowedOrigins []string) mux.MiddlewareFunc {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && allowed[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			case origin != "":
				log.Debug().Str("origin", origin).Msg("Origin not allowed")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Mcp-Session-Id")
			w.Header().Set("Access-Control-Max-Age", "3600")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// observe logs and counts each REST request under its route name.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		operation := "unknown"
		if route := mux.CurrentRoute(r); route != nil && route.GetName() != "" {
			operation = route.GetName()
		}
		vars := mux.Vars(r)
		stationID := vars["stationId"]
		if stationID == "" {
			stationID = vars["id"]
		}

		h.metrics.Observe("rest", operation, outcomeFor(rec.status), time.Since(start).Seconds())
		log.Debug().
			Str("protocol", "rest").
			Str("operation", operation).
			Str("station_id", stationID).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}

func outcomeFor(status int) string {
	switch {
	case status == http.StatusNotFound:
		return "not_found"
	case status >= 500:
		return "error"
	case status >= 400:
		return "bad_request"
	default:
		return "ok"
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
