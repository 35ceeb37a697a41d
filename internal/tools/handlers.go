package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bbernstein/weatherhub/internal/models"
	"github.com/bbernstein/weatherhub/internal/present"
	"github.com/bbernstein/weatherhub/internal/weather"
	"github.com/mark3labs/mcp-go/mcp"
)

func (t *Tools) AvailableStations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(present.StationsText(t.service.ListStations(""))), nil
}

func (t *Tools) CurrentConditions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stationID, err := requireStationID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	unit, err := present.ParseTemperatureUnit(request.GetString("unit", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := t.conditionsText(stationID, unit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (t *Tools) DailyForecast(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stationID, err := requireStationID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	days, err := optionalInt(request, "days")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(t.dailyText(stationID, present.ClampDays(days))), nil
}

func (t *Tools) HourlyForecast(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stationID, err := requireStationID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hours, err := optionalInt(request, "hours")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	forecast := t.service.GetHourlyForecast(stationID, present.ClampHours(hours))
	return mcp.NewToolResultText(present.HourlyText(stationID, forecast)), nil
}

func (t *Tools) AirQuality(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stationID, err := requireStationID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := t.airQualityText(stationID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (t *Tools) ActiveAlerts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stationID := strings.TrimSpace(request.GetString("station_id", ""))
	minSeverity, err := present.ParseMinSeverity(request.GetString("min_severity", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(t.alertsText(stationID, minSeverity)), nil
}

// WeatherSummary joins the selected sections, in the order current, forecast, air
// quality, alerts.
func (t *Tools) WeatherSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stationID, err := requireStationID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sections []string
	if request.GetBool("include_current", true) {
		text, err := t.conditionsText(stationID, present.Fahrenheit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sections = append(sections, text)
	}
	if request.GetBool("include_forecast", true) {
		sections = append(sections, t.dailyText(stationID, present.DefaultDays))
	}
	if request.GetBool("include_air_quality", false) {
		text, err := t.airQualityText(stationID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sections = append(sections, text)
	}
	if request.GetBool("include_alerts", false) {
		sections = append(sections, t.alertsText(stationID, nil))
	}

	return mcp.NewToolResultText(present.JoinSections(sections...)), nil
}

func (t *Tools) conditionsText(stationID string, unit present.TemperatureUnit) (string, error) {
	conditions, err := t.service.GetCurrentConditions(stationID)
	if errors.Is(err, weather.ErrNotFound) {
		return present.ConditionsText(stationID, nil, unit), nil
	}
	if err != nil {
		return "", err
	}
	converted := present.ConditionsIn(*conditions, unit)
	return present.ConditionsText(stationID, &converted, unit), nil
}

func (t *Tools) dailyText(stationID string, days int) string {
	return present.DailyText(stationID, t.service.GetDailyForecast(stationID, days))
}

func (t *Tools) airQualityText(stationID string) (string, error) {
	aq, err := t.service.GetAirQuality(stationID)
	if errors.Is(err, weather.ErrNotFound) {
		return present.AirQualityText(stationID, nil), nil
	}
	if err != nil {
		return "", err
	}
	return present.AirQualityText(stationID, aq), nil
}

func (t *Tools) alertsText(stationID string, minSeverity *models.AlertSeverity) string {
	return present.AlertsText(stationID, t.service.GetActiveAlerts(stationID, minSeverity))
}

func requireStationID(request mcp.CallToolRequest) (string, error) {
	stationID := strings.TrimSpace(request.GetString("station_id", ""))
	if stationID == "" {
		return "", fmt.Errorf("station_id is required")
	}
	return stationID, nil
}

// optionalInt reads a whole-number argument. Clients send numbers as JSON floats, and some
// send them as strings.
func optionalInt(request mcp.CallToolRequest, name string) (*int, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return nil, nil
	}

	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a whole number, got %q", name, v)
		}
		f = parsed
	default:
		return nil, fmt.Errorf("%s must be a whole number, got %T", name, raw)
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%s must be a whole number, got %v", name, f)
	}
	n := int(f)
	return &n, nil
}
