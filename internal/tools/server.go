// Package tools exposes the directory as Model Context Protocol tools that answer in
// plain text.
package tools

import (
	"context"
	"net/http"
	"time"

	"github.com/bbernstein/weatherhub/internal/observability"
	"github.com/bbernstein/weatherhub/internal/weather"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

const (
	ServerName    = "weatherhub"
	ServerVersion = "1.0.0"
)

const stationIDDescription = "The unique identifier of the weather station"

// Tools holds the tool handlers. Each handler is usable on its own, which is how the tests
// drive them.
type Tools struct {
	service weather.Service
	metrics *observability.Metrics
}

func New(service weather.Service, metrics *observability.Metrics) *Tools {
	return &Tools{service: service, metrics: metrics}
}

// NewServer registers every tool on a fresh MCP server.
func NewServer(service weather.Service, metrics *observability.Metrics) *server.MCPServer {
	s := server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false))
	New(service, metrics).Register(s)
	return s
}

// NewHTTPHandler serves the tool server over streamable HTTP for mounting at /mcp.
func NewHTTPHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s)
}

// ServeStdio runs the tool server on stdin and stdout until the input closes.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("get_available_stations",
		mcp.WithDescription("Gets a list of available weather stations with their IDs and names."),
	), t.instrument("get_available_stations", t.AvailableStations))

	s.AddTool(mcp.NewTool("get_current_conditions",
		mcp.WithDescription("Gets the current weather conditions for the specified station ID."),
		mcp.WithString("station_id", mcp.Required(), mcp.Description(stationIDDescription)),
		mcp.WithString("unit", mcp.Description("Temperature unit: Fahrenheit (default) or Celsius")),
	), t.instrument("get_current_conditions", t.CurrentConditions))

	s.AddTool(mcp.NewTool("get_daily_forecast",
		mcp.WithDescription("Gets the daily forecast for the specified station ID, 5 days unless days is given (1 to 7)."),
		mcp.WithString("station_id", mcp.Required(), mcp.Description(stationIDDescription)),
		mcp.WithNumber("days", mcp.Description("Number of days to return, 1 to 7")),
	), t.instrument("get_daily_forecast", t.DailyForecast))

	s.AddTool(mcp.NewTool("get_hourly_forecast",
		mcp.WithDescription("Gets the hourly forecast for the specified station ID, 24 hours unless hours is given (1 to 24)."),
		mcp.WithString("station_id", mcp.Required(), mcp.Description(stationIDDescription)),
		mcp.WithNumber("hours", mcp.Description("Number of hours to return, 1 to 24")),
	), t.instrument("get_hourly_forecast", t.HourlyForecast))

	s.AddTool(mcp.NewTool("get_air_quality",
		mcp.WithDescription("Gets the current air quality index for the specified station ID."),
		mcp.WithString("station_id", mcp.Required(), mcp.Description(stationIDDescription)),
	), t.instrument("get_air_quality", t.AirQuality))

	s.AddTool(mcp.NewTool("get_active_alerts",
		mcp.WithDescription("Gets active weather alerts, for one station or all of them. Returns any watches, warnings, advisories or emergencies currently in effect."),
		mcp.WithString("station_id", mcp.Description("Station to check; omit for every station")),
		mcp.WithString("min_severity", mcp.Description("Only alerts at least this severe: Advisory, Watch, Warning or Emergency")),
	), t.instrument("get_active_alerts", t.ActiveAlerts))

	s.AddTool(mcp.NewTool("get_weather_summary",
		mcp.WithDescription("Gets specified weather data for a station in a human-readable format."),
		mcp.WithString("station_id", mcp.Required(), mcp.Description(stationIDDescription)),
		mcp.WithBoolean("include_current", mcp.Description("Whether to include current conditions in the summary"), mcp.DefaultBool(true)),
		mcp.WithBoolean("include_forecast", mcp.Description("Whether to include the 5-day forecast in the summary"), mcp.DefaultBool(true)),
		mcp.WithBoolean("include_air_quality", mcp.Description("Whether to include air quality information in the summary"), mcp.DefaultBool(false)),
		mcp.WithBoolean("include_alerts", mcp.Description("Whether to include active alerts in the summary"), mcp.DefaultBool(false)),
	), t.instrument("get_weather_summary", t.WeatherSummary))
}

// instrument logs and counts each call of the named tool.
func (t *Tools) instrument(name string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := next(ctx, request)

		outcome := "ok"
		switch {
		case err != nil:
			outcome = "error"
		case result != nil && result.IsError:
			outcome = "bad_request"
		}
		t.metrics.Observe("mcp", name, outcome, time.Since(start).Seconds())
		log.Debug().
			Str("protocol", "mcp").
			Str("operation", name).
			Str("station_id", request.GetString("station_id", "")).
			Str("outcome", outcome).
			Dur("duration", time.Since(start)).
			Msg("Handled request")

		return result, err
	}
}
