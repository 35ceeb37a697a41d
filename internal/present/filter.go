package present

import (
	"strings"

	"github.com/bbernstein/weatherhub/internal/models"
)

const (
	DefaultDays  = 5
	MaxDays      = 7
	DefaultHours = 24
	MaxHours     = 24

	DefaultNearestLimit = 5
	MaxNearestLimit     = 25
)

// ClampDays applies the default and the [1,7] range every adapter uses for daily forecasts.
func ClampDays(days *int) int {
	if days == nil {
		return DefaultDays
	}
	return clamp(*days, 1, MaxDays)
}

// ClampHours applies the default and the [1,24] range for hourly forecasts.
func ClampHours(hours *int) int {
	if hours == nil {
		return DefaultHours
	}
	return clamp(*hours, 1, MaxHours)
}

func ClampNearestLimit(limit *int) int {
	if limit == nil {
		return DefaultNearestLimit
	}
	return clamp(*limit, 1, MaxNearestLimit)
}

// ParseMinSeverity turns an optional severity argument into a filter. A blank value means
// no filter.
func ParseMinSeverity(s string) (*models.AlertSeverity, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	severity, err := models.ParseAlertSeverity(s)
	if err != nil {
		return nil, err
	}
	return &severity, nil
}

// FilterBySeverity keeps the alerts at least as severe as min, preserving order.
func FilterBySeverity(alerts []models.WeatherAlert, min models.AlertSeverity) []models.WeatherAlert {
	out := make([]models.WeatherAlert, 0, len(alerts))
	for _, alert := range alerts {
		if alert.Severity.AtLeast(min) {
			out = append(out, alert)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
