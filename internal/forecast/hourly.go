// Package forecast builds the synthetic forecast series served by the directory.
package forecast

import (
	"math"
	"time"

	"github.com/bbernstein/weatherhub/internal/models"
)

// HoursPerSeries is the length of every generated hourly series.
const HoursPerSeries = 24

const (
	// gustThresholdMph is the hourly wind speed above which a gust is reported.
	gustThresholdMph = 15.0
	gustFactor       = 1.5

	// maxHourlyAmountInches is the precipitation amount at 100% probability.
	maxHourlyAmountInches = 0.02
)

// Baseline is the handful of per-station parameters an hourly series is derived from.
type Baseline struct {
	BaseTempF         float64                  `json:"baseTempF"`
	RangeF            float64                  `json:"rangeF"`
	Sky               models.SkyCondition      `json:"sky"`
	WindDirection     models.WindDirection     `json:"windDirection"`
	WindSpeedMph      float64                  `json:"windSpeedMph"`
	PrecipType        models.PrecipitationType `json:"precipType"`
	PrecipProbability int                      `json:"precipProbability"`
}

// Hourly generates HoursPerSeries entries starting at the hour containing start.
// The output is a pure function of its inputs.
func Hourly(start time.Time, b Baseline) []models.HourlyForecast {
	first := start.UTC().Truncate(time.Hour)
	series := make([]models.HourlyForecast, 0, HoursPerSeries)

	for h := 0; h < HoursPerSeries; h++ {
		temp := round(b.BaseTempF+TemperatureOffset(h, b.RangeF), 1)
		speed := round(b.WindSpeedMph+float64(h%3-1)*1.5, 1)
		probability := clampPercent(b.PrecipProbability + (h%4-2)*5)

		series = append(series, models.HourlyForecast{
			DateTime:     first.Add(time.Duration(h) * time.Hour),
			TemperatureF: temp,
			FeelsLikeF:   round(temp-WindChillPenalty(b.WindSpeedMph), 1),
			SkyCondition: b.Sky,
			Wind: models.Wind{
				SpeedMph:  speed,
				Direction: b.WindDirection,
				GustsMph:  Gust(speed),
			},
			Precipitation: models.Precipitation{
				Type:               b.PrecipType,
				AmountInches:       hourlyAmount(b.PrecipType, probability),
				ProbabilityPercent: probability,
			},
		})
	}

	return series
}

// TemperatureOffset places the daily trough near hour 5 and the crest near hour 14-15.
func TemperatureOffset(hour int, rangeF float64) float64 {
	return rangeF * math.Sin(float64(hour-5)*math.Pi/19.0)
}

// WindChillPenalty is a coarse three-tier chill keyed on the baseline wind speed.
func WindChillPenalty(windSpeedMph float64) float64 {
	switch {
	case windSpeedMph > 15:
		return 6
	case windSpeedMph > 8:
		return 3
	default:
		return 1
	}
}

// Gust returns 1.5x the speed when it exceeds the gust threshold, nil otherwise.
func Gust(speedMph float64) *float64 {
	if speedMph <= gustThresholdMph {
		return nil
	}
	return models.Float64Ptr(round(speedMph*gustFactor, 1))
}

func hourlyAmount(kind models.PrecipitationType, probability int) float64 {
	if kind == models.PrecipNone {
		return 0
	}
	return round(maxHourlyAmountInches*float64(probability)/100.0, 3)
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// round rounds half away from zero to the given number of decimals.
func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
