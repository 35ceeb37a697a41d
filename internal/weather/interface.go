package weather

import (
	"github.com/bbernstein/weatherhub/internal/models"
)

// Service is the read-only contract every protocol adapter consumes. Singular lookups
// return an error matching ErrNotFound; collection lookups never fail.
type Service interface {
	ListStations(state string) []models.Station
	GetStation(id string) (*models.Station, error)
	FindNearestStations(lat, lon float64, limit int) []models.StationDistance
	GetCurrentConditions(stationID string) (*models.CurrentConditions, error)
	GetDailyForecast(stationID string, days int) []models.DailyForecast
	GetHourlyForecast(stationID string, hours int) []models.HourlyForecast
	GetActiveAlerts(stationID string, minSeverity *models.AlertSeverity) []models.WeatherAlert
	GetAirQuality(stationID string) (*models.AirQuality, error)
}
