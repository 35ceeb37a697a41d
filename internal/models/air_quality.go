package models

import (
	"fmt"
	"sort"
)

type AirQualityCategory string

const (
	AirGood                        AirQualityCategory = "Good"
	AirModerate                    AirQualityCategory = "Moderate"
	AirUnhealthyForSensitiveGroups AirQualityCategory = "UnhealthyForSensitiveGroups"
	AirUnhealthy                   AirQualityCategory = "Unhealthy"
	AirVeryUnhealthy               AirQualityCategory = "VeryUnhealthy"
	AirHazardous                   AirQualityCategory = "Hazardous"
)

// aqiBands holds the upper bound (inclusive) of each EPA category, in order.
var aqiBands = []struct {
	upper    int
	category AirQualityCategory
}{
	{50, AirGood},
	{100, AirModerate},
	{150, AirUnhealthyForSensitiveGroups},
	{200, AirUnhealthy},
	{300, AirVeryUnhealthy},
}

var airQualityCategories = []AirQualityCategory{
	AirGood, AirModerate, AirUnhealthyForSensitiveGroups, AirUnhealthy, AirVeryUnhealthy, AirHazardous,
}

func (c AirQualityCategory) Valid() bool {
	return containsEnum(c, airQualityCategories)
}

func ParseAirQualityCategory(s string) (AirQualityCategory, error) {
	if v, ok := parseEnum(s, airQualityCategories); ok {
		return v, nil
	}
	return "", fmt.Errorf("invalid air quality category: %q", s)
}

// CategoryForAQI bands a composite index into its category.
func CategoryForAQI(aqi int) AirQualityCategory {
	for _, band := range aqiBands {
		if aqi <= band.upper {
			return band.category
		}
	}
	return AirHazardous
}

type AirQuality struct {
	Aqi              int                `json:"aqi"`
	Category         AirQualityCategory `json:"category"`
	PrimaryPollutant string             `json:"primaryPollutant"`
	Pollutants       map[string]float64 `json:"pollutants"`
}

// PollutantReading is one entry of the pollutant map, used where a list is needed.
type PollutantReading struct {
	Code          string  `json:"code"`
	Concentration float64 `json:"concentration"`
}

// Readings returns the pollutant map as a list sorted by code.
func (a AirQuality) Readings() []PollutantReading {
	readings := make([]PollutantReading, 0, len(a.Pollutants))
	for code, value := range a.Pollutants {
		readings = append(readings, PollutantReading{Code: code, Concentration: value})
	}
	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Code < readings[j].Code
	})
	return readings
}

func (a AirQuality) Validate() error {
	if a.Aqi < 0 {
		return fmt.Errorf("negative aqi %d", a.Aqi)
	}
	if !a.Category.Valid() {
		return fmt.Errorf("invalid air quality category %q", a.Category)
	}
	if a.CategoryMismatch() {
		return fmt.Errorf("aqi %d does not fall in category %s", a.Aqi, a.Category)
	}
	if a.PrimaryPollutant != "" {
		if _, ok := a.Pollutants[a.PrimaryPollutant]; !ok {
			return fmt.Errorf("primary pollutant %s has no concentration", a.PrimaryPollutant)
		}
	}
	return nil
}

// CategoryMismatch reports whether the recorded category disagrees with the index banding.
func (a AirQuality) CategoryMismatch() bool {
	return CategoryForAQI(a.Aqi) != a.Category
}

// Clone returns a copy with its own pollutant map.
func (a AirQuality) Clone() AirQuality {
	out := a
	if a.Pollutants != nil {
		out.Pollutants = make(map[string]float64, len(a.Pollutants))
		for k, v := range a.Pollutants {
			out.Pollutants[k] = v
		}
	}
	return out
}
