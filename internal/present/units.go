// Package present derives caller-facing views from directory records: unit conversion,
// severity thresholds, request clamping and the text summaries used by the tool server.
package present

import (
	"fmt"
	"math"
	"strings"

	"github.com/bbernstein/weatherhub/internal/models"
)

type TemperatureUnit string

const (
	Fahrenheit TemperatureUnit = "Fahrenheit"
	Celsius    TemperatureUnit = "Celsius"
)

// ParseTemperatureUnit accepts "F", "C", "fahrenheit", "CELSIUS" and so on. An empty
// string means Fahrenheit.
func ParseTemperatureUnit(s string) (TemperatureUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "f", "fahrenheit":
		return Fahrenheit, nil
	case "c", "celsius":
		return Celsius, nil
	default:
		return "", fmt.Errorf("invalid temperature unit: %q", s)
	}
}

// Symbol is the suffix used in text output.
func (u TemperatureUnit) Symbol() string {
	if u == Celsius {
		return "°C"
	}
	return "°F"
}

func ToCelsius(fahrenheit float64) float64 {
	return round1((fahrenheit - 32) * 5.0 / 9.0)
}

func ToFahrenheit(celsius float64) float64 {
	return round1(celsius*9.0/5.0 + 32)
}

// ConditionsIn returns conditions with temperature, feels-like and dew point expressed in
// unit. The input is never modified; other fields are copied as-is.
func ConditionsIn(c models.CurrentConditions, unit TemperatureUnit) models.CurrentConditions {
	out := c.Clone()
	if unit != Celsius {
		return out
	}
	out.TemperatureF = ToCelsius(c.TemperatureF)
	out.FeelsLikeF = ToCelsius(c.FeelsLikeF)
	out.DewPointF = ToCelsius(c.DewPointF)
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
