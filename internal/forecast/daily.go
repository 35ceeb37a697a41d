package forecast

import (
	"github.com/bbernstein/weatherhub/internal/models"
)

// DailyRow is one literal day of a daily fixture. Rows carry no date; the n-th row of a
// series is dated n days after the anchor.
type DailyRow struct {
	HighTempF     float64              `json:"highTempF"`
	LowTempF      float64              `json:"lowTempF"`
	Sky           models.SkyCondition  `json:"sky"`
	Wind          models.Wind          `json:"wind"`
	Precipitation models.Precipitation `json:"precipitation"`
	Sunrise       string               `json:"sunrise"`
	Sunset        string               `json:"sunset"`
}

// MaxDays is the length of the canonical daily fixtures.
const MaxDays = 7

// Daily dates rows consecutively starting at today.
func Daily(today models.Date, rows []DailyRow) []models.DailyForecast {
	series := make([]models.DailyForecast, 0, len(rows))
	for i, row := range rows {
		series = append(series, models.DailyForecast{
			Date:          today.AddDays(i),
			HighTempF:     row.HighTempF,
			LowTempF:      row.LowTempF,
			SkyCondition:  row.Sky,
			Wind:          row.Wind.Clone(),
			Precipitation: row.Precipitation,
			Sunrise:       row.Sunrise,
			Sunset:        row.Sunset,
		})
	}
	return series
}
