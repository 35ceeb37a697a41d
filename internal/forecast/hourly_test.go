package forecast

import (
	"testing"
	"time"

	"github.com/bbernstein/weatherhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBaseline() Baseline {
	return Baseline{
		BaseTempF:         42,
		RangeF:            8,
		Sky:               models.SkyPartlyCloudy,
		WindDirection:     models.WindNW,
		WindSpeedMph:      12.5,
		PrecipType:        models.PrecipNone,
		PrecipProbability: 5,
	}
}

func TestHourlyShape(t *testing.T) {
	start := time.Date(2025, time.March, 3, 14, 47, 12, 0, time.UTC)
	series := Hourly(start, testBaseline())

	require.Len(t, series, HoursPerSeries)
	assert.Equal(t, time.Date(2025, time.March, 3, 14, 0, 0, 0, time.UTC), series[0].DateTime)
	for i := 1; i < len(series); i++ {
		assert.Equal(t, time.Hour, series[i].DateTime.Sub(series[i-1].DateTime))
	}
	for _, hour := range series {
		assert.Equal(t, models.SkyPartlyCloudy, hour.SkyCondition)
		assert.Equal(t, models.WindNW, hour.Wind.Direction)
		assert.NoError(t, hour.Validate())
	}
}

func TestHourlyIsDeterministic(t *testing.T) {
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Hourly(start, testBaseline()), Hourly(start, testBaseline()))
}

func TestHourlyValues(t *testing.T) {
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	series := Hourly(start, testBaseline())

	// hour 5 sits on the sine zero crossing
	assert.Equal(t, 42.0, series[5].TemperatureF)
	assert.Equal(t, 39.0, series[5].FeelsLikeF)

	// speed cycles -1.5, 0, +1.5 around the baseline
	assert.Equal(t, 11.0, series[0].Wind.SpeedMph)
	assert.Equal(t, 12.5, series[1].Wind.SpeedMph)
	assert.Equal(t, 14.0, series[2].Wind.SpeedMph)

	// probability cycles -10, -5, 0, +5 and clamps at zero
	assert.Equal(t, 0, series[0].Precipitation.ProbabilityPercent)
	assert.Equal(t, 0, series[1].Precipitation.ProbabilityPercent)
	assert.Equal(t, 5, series[2].Precipitation.ProbabilityPercent)
	assert.Equal(t, 10, series[3].Precipitation.ProbabilityPercent)

	for _, hour := range series {
		assert.Nil(t, hour.Wind.GustsMph)
		assert.Equal(t, 0.0, hour.Precipitation.AmountInches)
	}
}

func TestHourlyGustsAndAmounts(t *testing.T) {
	b := Baseline{
		BaseTempF:         18,
		RangeF:            5,
		Sky:               models.SkyMostlyCloudy,
		WindDirection:     models.WindNNW,
		WindSpeedMph:      22,
		PrecipType:        models.PrecipSnow,
		PrecipProbability: 98,
	}
	series := Hourly(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), b)

	for i, hour := range series {
		require.NotNil(t, hour.Wind.GustsMph, "hour %d", i)
		assert.Equal(t, round(hour.Wind.SpeedMph*1.5, 1), *hour.Wind.GustsMph)
		p := hour.Precipitation.ProbabilityPercent
		assert.True(t, p >= 0 && p <= 100, "hour %d probability %d", i, p)
		assert.Equal(t, round(0.02*float64(p)/100, 3), hour.Precipitation.AmountInches)
		assert.Equal(t, round(hour.TemperatureF-6, 1), hour.FeelsLikeF)
	}
	assert.Equal(t, 100, series[3].Precipitation.ProbabilityPercent)
	assert.Equal(t, 0.02, series[3].Precipitation.AmountInches)
}

func TestGust(t *testing.T) {
	tests := []struct {
		speed float64
		want  *float64
	}{
		{speed: 0, want: nil},
		{speed: 15, want: nil},
		{speed: 16, want: models.Float64Ptr(24)},
		{speed: 20, want: models.Float64Ptr(30)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Gust(tt.speed), "speed %v", tt.speed)
	}
}

func TestWindChillPenalty(t *testing.T) {
	tests := []struct {
		speed float64
		want  float64
	}{
		{4, 1},
		{8, 1},
		{8.5, 3},
		{15, 3},
		{15.5, 6},
		{40, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WindChillPenalty(tt.speed), "speed %v", tt.speed)
	}
}

func TestTemperatureOffset(t *testing.T) {
	assert.InDelta(t, 0, TemperatureOffset(5, 10), 1e-9)
	assert.Less(t, TemperatureOffset(0, 10), 0.0)
	assert.InDelta(t, 9.966, TemperatureOffset(14, 10), 0.001)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.3, round(0.25, 1))
	assert.Equal(t, -0.3, round(-0.25, 1))
	assert.Equal(t, 0.012, round(0.0117, 3))
}
