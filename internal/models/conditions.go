package models

import (
	"fmt"
	"time"
)

type SkyCondition string

const (
	SkyClear        SkyCondition = "Clear"
	SkyPartlyCloudy SkyCondition = "PartlyCloudy"
	SkyMostlyCloudy SkyCondition = "MostlyCloudy"
	SkyOvercast     SkyCondition = "Overcast"
	SkyFoggy        SkyCondition = "Foggy"
	SkyHazy         SkyCondition = "Hazy"
)

var skyConditions = []SkyCondition{SkyClear, SkyPartlyCloudy, SkyMostlyCloudy, SkyOvercast, SkyFoggy, SkyHazy}

func (s SkyCondition) Valid() bool {
	return containsEnum(s, skyConditions)
}

func ParseSkyCondition(s string) (SkyCondition, error) {
	if v, ok := parseEnum(s, skyConditions); ok {
		return v, nil
	}
	return "", fmt.Errorf("invalid sky condition: %q", s)
}

// WindDirection is one of the 16 compass points.
type WindDirection string

const (
	WindN   WindDirection = "N"
	WindNNE WindDirection = "NNE"
	WindNE  WindDirection = "NE"
	WindENE WindDirection = "ENE"
	WindE   WindDirection = "E"
	WindESE WindDirection = "ESE"
	WindSE  WindDirection = "SE"
	WindSSE WindDirection = "SSE"
	WindS   WindDirection = "S"
	WindSSW WindDirection = "SSW"
	WindSW  WindDirection = "SW"
	WindWSW WindDirection = "WSW"
	WindW   WindDirection = "W"
	WindWNW WindDirection = "WNW"
	WindNW  WindDirection = "NW"
	WindNNW WindDirection = "NNW"
)

var windDirections = []WindDirection{
	WindN, WindNNE, WindNE, WindENE, WindE, WindESE, WindSE, WindSSE,
	WindS, WindSSW, WindSW, WindWSW, WindW, WindWNW, WindNW, WindNNW,
}

func (d WindDirection) Valid() bool {
	return containsEnum(d, windDirections)
}

func ParseWindDirection(s string) (WindDirection, error) {
	if v, ok := parseEnum(s, windDirections); ok {
		return v, nil
	}
	return "", fmt.Errorf("invalid wind direction: %q", s)
}

type PrecipitationType string

const (
	PrecipNone         PrecipitationType = "None"
	PrecipRain         PrecipitationType = "Rain"
	PrecipSnow         PrecipitationType = "Snow"
	PrecipSleet        PrecipitationType = "Sleet"
	PrecipFreezingRain PrecipitationType = "FreezingRain"
	PrecipHail         PrecipitationType = "Hail"
	PrecipMixed        PrecipitationType = "Mixed"
)

var precipitationTypes = []PrecipitationType{
	PrecipNone, PrecipRain, PrecipSnow, PrecipSleet, PrecipFreezingRain, PrecipHail, PrecipMixed,
}

func (p PrecipitationType) Valid() bool {
	return containsEnum(p, precipitationTypes)
}

func ParsePrecipitationType(s string) (PrecipitationType, error) {
	if v, ok := parseEnum(s, precipitationTypes); ok {
		return v, nil
	}
	return "", fmt.Errorf("invalid precipitation type: %q", s)
}

// Wind describes speed, direction and an optional gust. GustsMph is nil when no gust
// is reported.
type Wind struct {
	SpeedMph  float64       `json:"speedMph"`
	Direction WindDirection `json:"direction"`
	GustsMph  *float64      `json:"gustsMph"`
}

func (w Wind) Validate() error {
	if w.SpeedMph < 0 {
		return fmt.Errorf("negative wind speed %v", w.SpeedMph)
	}
	if !w.Direction.Valid() {
		return fmt.Errorf("invalid wind direction %q", w.Direction)
	}
	if w.GustsMph != nil && *w.GustsMph < 0 {
		return fmt.Errorf("negative gust speed %v", *w.GustsMph)
	}
	return nil
}

// Clone returns a copy that does not share the gust pointer.
func (w Wind) Clone() Wind {
	if w.GustsMph != nil {
		w.GustsMph = Float64Ptr(*w.GustsMph)
	}
	return w
}

type Precipitation struct {
	Type               PrecipitationType `json:"type"`
	AmountInches       float64           `json:"amountInches"`
	ProbabilityPercent int               `json:"probabilityPercent"`
}

func (p Precipitation) Validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("invalid precipitation type %q", p.Type)
	}
	if p.ProbabilityPercent < 0 || p.ProbabilityPercent > 100 {
		return fmt.Errorf("precipitation probability %d out of range", p.ProbabilityPercent)
	}
	if p.AmountInches < 0 {
		return fmt.Errorf("negative precipitation amount %v", p.AmountInches)
	}
	return nil
}

// CurrentConditions is the latest observation at a station. Temperatures are stored in
// Fahrenheit; see package present for unit conversion.
type CurrentConditions struct {
	ObservedAt      time.Time     `json:"observedAt"`
	TemperatureF    float64       `json:"temperatureF"`
	FeelsLikeF      float64       `json:"feelsLikeF"`
	HumidityPercent int           `json:"humidityPercent"`
	DewPointF       float64       `json:"dewPointF"`
	PressureMb      float64       `json:"pressureMb"`
	VisibilityMiles float64       `json:"visibilityMiles"`
	UvIndex         int           `json:"uvIndex"`
	SkyCondition    SkyCondition  `json:"skyCondition"`
	Wind            Wind          `json:"wind"`
	Precipitation   Precipitation `json:"precipitation"`
}

func (c CurrentConditions) Validate() error {
	if c.HumidityPercent < 0 || c.HumidityPercent > 100 {
		return fmt.Errorf("humidity %d out of range", c.HumidityPercent)
	}
	if c.UvIndex < 0 {
		return fmt.Errorf("negative uv index %d", c.UvIndex)
	}
	if !c.SkyCondition.Valid() {
		return fmt.Errorf("invalid sky condition %q", c.SkyCondition)
	}
	if err := c.Wind.Validate(); err != nil {
		return fmt.Errorf("wind: %w", err)
	}
	if err := c.Precipitation.Validate(); err != nil {
		return fmt.Errorf("precipitation: %w", err)
	}
	return nil
}

func (c CurrentConditions) Clone() CurrentConditions {
	c.Wind = c.Wind.Clone()
	return c
}

// Float64Ptr returns a pointer to v, for optional fields such as gust speed.
func Float64Ptr(v float64) *float64 {
	return &v
}
