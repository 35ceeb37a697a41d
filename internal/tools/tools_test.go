package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bbernstein/weatherhub/internal/models"
	"github.com/bbernstein/weatherhub/internal/observability"
	"github.com/bbernstein/weatherhub/internal/seed"
	"github.com/bbernstein/weatherhub/internal/weather"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.January, 15, 10, 30, 0, 0, time.UTC)

type failingService struct {
	weather.Service
}

func (failingService) GetCurrentConditions(string) (*models.CurrentConditions, error) {
	return nil, errors.New("backend down")
}

func newTestTools(t *testing.T) (*Tools, *observability.Metrics) {
	t.Helper()
	dir, err := weather.NewDirectory(seed.Builtin(), testNow)
	require.NoError(t, err)
	metrics := observability.NewMetricsForTesting()
	return New(dir, metrics), metrics
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestAvailableStations(t *testing.T) {
	tools, _ := newTestTools(t)

	result, err := tools.AvailableStations(context.Background(), callRequest("get_available_stations", nil))
	require.NoError(t, err)
	assert.Equal(t, "Available Weather Stations:\n"+
		"den01: Denver International\n"+
		"mia01: Miami Beach Oceanside\n"+
		"sea01: Seattle-Tacoma Metro\n"+
		"phx01: Phoenix Sky Harbor\n"+
		"chi01: Chicago O'Hare", resultText(t, result))
}

func TestCurrentConditions(t *testing.T) {
	tools, _ := newTestTools(t)

	tests := []struct {
		name    string
		args    map[string]any
		want    string
		wantErr bool
	}{
		{
			name: "fahrenheit by default",
			args: map[string]any{"station_id": "den01"},
			want: "Current conditions for station den01: 42°F, PartlyCloudy, 12.5 mph NW wind.",
		},
		{
			name: "celsius",
			args: map[string]any{"station_id": "den01", "unit": "celsius"},
			want: "Current conditions for station den01: 5.6°C, PartlyCloudy, 12.5 mph NW wind.",
		},
		{
			name: "unknown station",
			args: map[string]any{"station_id": "xyz99"},
			want: "No current conditions available for station xyz99.",
		},
		{name: "missing station", args: map[string]any{}, wantErr: true},
		{name: "bad unit", args: map[string]any{"station_id": "den01", "unit": "kelvin"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tools.CurrentConditions(context.Background(), callRequest("get_current_conditions", tt.args))
			require.NoError(t, err)
			if tt.wantErr {
				assert.True(t, result.IsError)
				return
			}
			assert.False(t, result.IsError)
			assert.Equal(t, tt.want, resultText(t, result))
		})
	}
}

func TestCurrentConditionsServiceError(t *testing.T) {
	tools := New(failingService{}, nil)

	result, err := tools.CurrentConditions(context.Background(), callRequest("get_current_conditions", map[string]any{"station_id": "den01"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "backend down", resultText(t, result))
}

func TestDailyForecast(t *testing.T) {
	tools, _ := newTestTools(t)

	result, err := tools.DailyForecast(context.Background(), callRequest("get_daily_forecast", map[string]any{"station_id": "sea01", "days": float64(2)}))
	require.NoError(t, err)
	assert.Equal(t, "2-day forecast for station sea01:\n"+
		"01/15: High 53°F, Low 44°F, Overcast\n"+
		"01/16: High 51°F, Low 43°F, Overcast", resultText(t, result))

	tests := []struct {
		name      string
		days      any
		wantLines int
	}{
		{name: "default", days: nil, wantLines: 5},
		{name: "clamped high", days: float64(12), wantLines: 7},
		{name: "clamped low", days: float64(0), wantLines: 1},
		{name: "numeric string", days: "3", wantLines: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]any{"station_id": "mia01"}
			if tt.days != nil {
				args["days"] = tt.days
			}
			result, err := tools.DailyForecast(context.Background(), callRequest("get_daily_forecast", args))
			require.NoError(t, err)
			lines := strings.Split(resultText(t, result), "\n")
			assert.Len(t, lines, tt.wantLines+1)
		})
	}

	result, err = tools.DailyForecast(context.Background(), callRequest("get_daily_forecast", map[string]any{"station_id": "xyz99"}))
	require.NoError(t, err)
	assert.Equal(t, "No forecast data available for station xyz99.", resultText(t, result))

	result, err = tools.DailyForecast(context.Background(), callRequest("get_daily_forecast", map[string]any{"station_id": "sea01", "days": 2.5}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHourlyForecast(t *testing.T) {
	tools, _ := newTestTools(t)

	result, err := tools.HourlyForecast(context.Background(), callRequest("get_hourly_forecast", map[string]any{"station_id": "phx01", "hours": float64(2)}))
	require.NoError(t, err)
	text := resultText(t, result)
	lines := strings.Split(text, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2-hour forecast for station phx01:", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "01/15 10:00: "), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "01/15 11:00: "), lines[2])

	result, err = tools.HourlyForecast(context.Background(), callRequest("get_hourly_forecast", map[string]any{"station_id": "phx01"}))
	require.NoError(t, err)
	assert.Len(t, strings.Split(resultText(t, result), "\n"), 25)

	result, err = tools.HourlyForecast(context.Background(), callRequest("get_hourly_forecast", map[string]any{"station_id": "xyz99"}))
	require.NoError(t, err)
	assert.Equal(t, "No hourly forecast available for station xyz99.", resultText(t, result))

	result, err = tools.HourlyForecast(context.Background(), callRequest("get_hourly_forecast", map[string]any{"station_id": "phx01", "hours": true}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestAirQuality(t *testing.T) {
	tools, _ := newTestTools(t)

	result, err := tools.AirQuality(context.Background(), callRequest("get_air_quality", map[string]any{"station_id": "phx01"}))
	require.NoError(t, err)
	assert.Equal(t, "Current AQI for station phx01: 112 (UnhealthyForSensitiveGroups), Primary Pollutant: PM10", resultText(t, result))

	result, err = tools.AirQuality(context.Background(), callRequest("get_air_quality", map[string]any{"station_id": "xyz99"}))
	require.NoError(t, err)
	assert.Equal(t, "No air quality data available for station xyz99.", resultText(t, result))
}

func TestActiveAlerts(t *testing.T) {
	tools, _ := newTestTools(t)

	result, err := tools.ActiveAlerts(context.Background(), callRequest("get_active_alerts", map[string]any{"station_id": "chi01"}))
	require.NoError(t, err)
	assert.Equal(t, "2 active alert(s) for station chi01:\n\n"+
		"[Warning] Winter Storm Warning\n"+
		"  Area: Cook County and surrounding suburbs\n"+
		"  Expires: 1/16/2025 4:30 AM\n"+
		"  Heavy snow expected with accumulations of 8-12 inches. Wind gusts up to 45 mph will cause blowing and drifting snow with near-zero visibility at times.\n\n"+
		"[Advisory] High Wind Advisory\n"+
		"  Area: Greater Chicago Metropolitan Area\n"+
		"  Expires: 1/15/2025 10:30 PM\n"+
		"  Northwest winds 25-35 mph with gusts up to 50 mph. Secure outdoor objects. Use caution while driving, especially high-profile vehicles.",
		resultText(t, result))

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "quiet station", args: map[string]any{"station_id": "den01"}, want: "No active alerts for station den01. All clear!"},
		{name: "unknown station", args: map[string]any{"station_id": "xyz99"}, want: "No active alerts for station xyz99. All clear!"},
		{name: "threshold filters everything", args: map[string]any{"station_id": "mia01", "min_severity": "Warning"}, want: "No active alerts for station mia01. All clear!"},
		{name: "all stations at warning", args: map[string]any{"min_severity": "warning"}, want: "2 active alert(s) for all stations:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tools.ActiveAlerts(context.Background(), callRequest("get_active_alerts", tt.args))
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(resultText(t, result), tt.want), resultText(t, result))
		})
	}

	result, err = tools.ActiveAlerts(context.Background(), callRequest("get_active_alerts", map[string]any{"min_severity": "Severe"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestWeatherSummary(t *testing.T) {
	tools, _ := newTestTools(t)
	ctx := context.Background()

	conditions := "Current conditions for station den01: 42°F, PartlyCloudy, 12.5 mph NW wind."
	daily, err := tools.DailyForecast(ctx, callRequest("get_daily_forecast", map[string]any{"station_id": "den01"}))
	require.NoError(t, err)
	forecast := resultText(t, daily)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{
			name: "defaults",
			args: map[string]any{"station_id": "den01"},
			want: conditions + "\n\n" + forecast,
		},
		{
			name: "everything",
			args: map[string]any{"station_id": "den01", "include_air_quality": true, "include_alerts": true},
			want: conditions + "\n\n" + forecast + "\n\n" +
				"Current AQI for station den01: 45 (Good), Primary Pollutant: PM2.5\n\n" +
				"No active alerts for station den01. All clear!",
		},
		{
			name: "air quality only",
			args: map[string]any{"station_id": "den01", "include_current": false, "include_forecast": false, "include_air_quality": true},
			want: "Current AQI for station den01: 45 (Good), Primary Pollutant: PM2.5",
		},
		{
			name: "nothing selected",
			args: map[string]any{"station_id": "den01", "include_current": false, "include_forecast": false},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tools.WeatherSummary(ctx, callRequest("get_weather_summary", tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resultText(t, result))
		})
	}
}

func TestInstrumentRecordsOutcome(t *testing.T) {
	tools, metrics := newTestTools(t)
	handler := tools.instrument("get_current_conditions", tools.CurrentConditions)

	_, err := handler(context.Background(), callRequest("get_current_conditions", map[string]any{"station_id": "den01"}))
	require.NoError(t, err)
	_, err = handler(context.Background(), callRequest("get_current_conditions", map[string]any{}))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("mcp", "get_current_conditions", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("mcp", "get_current_conditions", "bad_request")))
}

func TestServerListsAndCallsTools(t *testing.T) {
	dir, err := weather.NewDirectory(seed.Builtin(), testNow)
	require.NoError(t, err)
	s := NewServer(dir, nil)
	ctx := context.Background()

	send := func(message string) map[string]any {
		t.Helper()
		reply := s.HandleMessage(ctx, json.RawMessage(message))
		require.NotNil(t, reply)
		raw, err := json.Marshal(reply)
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded))
		return decoded
	}

	send(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`)

	listed := send(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	toolList := listed["result"].(map[string]any)["tools"].([]any)
	var names []string
	for _, tool := range toolList {
		names = append(names, tool.(map[string]any)["name"].(string))
	}
	assert.ElementsMatch(t, []string{
		"get_available_stations",
		"get_current_conditions",
		"get_daily_forecast",
		"get_hourly_forecast",
		"get_air_quality",
		"get_active_alerts",
		"get_weather_summary",
	}, names)

	called := send(`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_air_quality","arguments":{"station_id":"sea01"}}}`)
	content := called["result"].(map[string]any)["content"].([]any)
	require.Len(t, content, 1)
	assert.Equal(t, "Current AQI for station sea01: 38 (Good), Primary Pollutant: PM2.5", content[0].(map[string]any)["text"])
}

func TestNewHTTPHandler(t *testing.T) {
	s := server.NewMCPServer(ServerName, ServerVersion)
	assert.NotNil(t, NewHTTPHandler(s))
}
