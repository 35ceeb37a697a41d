package present

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bbernstein/weatherhub/internal/models"
)

const (
	dayLayout    = "01/02"
	hourLayout   = "01/02 15:04"
	expiryLayout = "1/2/2006 3:04 PM"
)

func StationsText(stations []models.Station) string {
	if len(stations) == 0 {
		return "No weather stations available."
	}
	lines := make([]string, 0, len(stations))
	for _, s := range stations {
		lines = append(lines, fmt.Sprintf("%s: %s", s.ID, s.Name))
	}
	return "Available Weather Stations:\n" + strings.Join(lines, "\n")
}

// ConditionsText summarises conditions already converted to unit. A nil c produces the
// not-available sentence.
func ConditionsText(stationID string, c *models.CurrentConditions, unit TemperatureUnit) string {
	if c == nil {
		return fmt.Sprintf("No current conditions available for station %s.", stationID)
	}
	return fmt.Sprintf("Current conditions for station %s: %s%s, %s, %s mph %s wind.",
		stationID, number(c.TemperatureF), unit.Symbol(), c.SkyCondition,
		number(c.Wind.SpeedMph), c.Wind.Direction)
}

func DailyText(stationID string, days []models.DailyForecast) string {
	if len(days) == 0 {
		return fmt.Sprintf("No forecast data available for station %s.", stationID)
	}
	lines := make([]string, 0, len(days))
	for _, d := range days {
		lines = append(lines, fmt.Sprintf("%s: High %s°F, Low %s°F, %s",
			d.Date.Time().Format(dayLayout), number(d.HighTempF), number(d.LowTempF), d.SkyCondition))
	}
	return fmt.Sprintf("%d-day forecast for station %s:\n%s", len(days), stationID, strings.Join(lines, "\n"))
}

func HourlyText(stationID string, hours []models.HourlyForecast) string {
	if len(hours) == 0 {
		return fmt.Sprintf("No hourly forecast available for station %s.", stationID)
	}
	lines := make([]string, 0, len(hours))
	for _, h := range hours {
		lines = append(lines, fmt.Sprintf("%s: %s°F, %s, %s mph %s, %d%% %s",
			h.DateTime.UTC().Format(hourLayout), number(h.TemperatureF), h.SkyCondition,
			number(h.Wind.SpeedMph), h.Wind.Direction,
			h.Precipitation.ProbabilityPercent, h.Precipitation.Type))
	}
	return fmt.Sprintf("%d-hour forecast for station %s:\n%s", len(hours), stationID, strings.Join(lines, "\n"))
}

func AirQualityText(stationID string, aq *models.AirQuality) string {
	if aq == nil {
		return fmt.Sprintf("No air quality data available for station %s.", stationID)
	}
	return fmt.Sprintf("Current AQI for station %s: %d (%s), Primary Pollutant: %s",
		stationID, aq.Aqi, aq.Category, aq.PrimaryPollutant)
}

// AlertsText lists alerts for one station, or for every station when stationID is empty.
func AlertsText(stationID string, alerts []models.WeatherAlert) string {
	scope := "station " + stationID
	if stationID == "" {
		scope = "all stations"
	}
	if len(alerts) == 0 {
		return fmt.Sprintf("No active alerts for %s. All clear!", scope)
	}
	entries := make([]string, 0, len(alerts))
	for _, a := range alerts {
		entries = append(entries, fmt.Sprintf("[%s] %s\n  Area: %s\n  Expires: %s\n  %s",
			a.Severity, a.Title, a.AffectedArea, a.ExpiresAt.UTC().Format(expiryLayout), a.Description))
	}
	return fmt.Sprintf("%d active alert(s) for %s:\n\n%s", len(alerts), scope, strings.Join(entries, "\n\n"))
}

// JoinSections glues summary parts with a blank line between them.
func JoinSections(parts ...string) string {
	return strings.Join(parts, "\n\n")
}

// number prints the shortest decimal that round-trips, so 42 prints as "42" and 12.5 as
// "12.5".
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
