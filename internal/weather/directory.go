// Package weather holds the directory every protocol adapter queries.
package weather

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bbernstein/weatherhub/internal/models"
	"github.com/bbernstein/weatherhub/internal/seed"
	"github.com/rs/zerolog/log"
)

const earthRadiusMiles = 3958.8

// Directory answers lookups over a dataset built once at construction. It holds no locks:
// nothing writes to the dataset after NewDirectory returns, and every method hands out
// copies.
type Directory struct {
	data *dataset
}

var _ Service = (*Directory)(nil)

// NewDirectory materialises the catalog relative to now. Any referential or value error in
// the catalog is returned as an *IntegrityError.
func NewDirectory(catalog *seed.Catalog, now time.Time) (*Directory, error) {
	data, err := buildDataset(catalog, now)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("station_count", len(data.order)).
		Time("anchor", now.UTC()).
		Msg("Weather directory initialized")

	return &Directory{data: data}, nil
}

// ListStations returns every station in catalog order, or only those whose state equals
// the filter ignoring case. An empty filter matches all.
func (d *Directory) ListStations(state string) []models.Station {
	stations := make([]models.Station, 0, len(d.data.order))
	for _, id := range d.data.order {
		station := d.data.stations[id]
		if state != "" && !strings.EqualFold(station.Location.State, state) {
			continue
		}
		stations = append(stations, station)
	}
	return stations
}

func (d *Directory) GetStation(id string) (*models.Station, error) {
	station, ok := d.data.stations[id]
	if !ok {
		log.Debug().Str("station_id", id).Msg("Station not found")
		return nil, NewNotFoundError("station", id)
	}
	return &station, nil
}

// FindNearestStations orders stations by great-circle distance from the point. Ties keep
// catalog order. A non-positive limit returns every station.
func (d *Directory) FindNearestStations(lat, lon float64, limit int) []models.StationDistance {
	results := make([]models.StationDistance, 0, len(d.data.order))
	for _, id := range d.data.order {
		station := d.data.stations[id]
		results = append(results, models.StationDistance{
			Station:       station,
			DistanceMiles: calculateDistance(lat, lon, station.Location.Latitude, station.Location.Longitude),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceMiles < results[j].DistanceMiles
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (d *Directory) GetCurrentConditions(stationID string) (*models.CurrentConditions, error) {
	conditions, ok := d.data.conditions[stationID]
	if !ok {
		log.Debug().Str("station_id", stationID).Msg("No current conditions recorded")
		return nil, NewNotFoundError("current conditions", stationID)
	}
	conditions = conditions.Clone()
	return &conditions, nil
}

// GetDailyForecast returns the first days entries. Callers clamp days; a value beyond the
// series length returns the whole series.
func (d *Directory) GetDailyForecast(stationID string, days int) []models.DailyForecast {
	series := d.data.daily[stationID]
	out := make([]models.DailyForecast, 0, prefixLen(len(series), days))
	for _, day := range series[:prefixLen(len(series), days)] {
		out = append(out, day.Clone())
	}
	return out
}

// GetHourlyForecast returns the first hours entries, with the same contract as
// GetDailyForecast.
func (d *Directory) GetHourlyForecast(stationID string, hours int) []models.HourlyForecast {
	series := d.data.hourly[stationID]
	out := make([]models.HourlyForecast, 0, prefixLen(len(series), hours))
	for _, hour := range series[:prefixLen(len(series), hours)] {
		out = append(out, hour.Clone())
	}
	return out
}

// GetActiveAlerts returns the alerts of one station, or of all stations grouped in
// catalog order when stationID is empty. With minSeverity set, only alerts at least that
// severe are kept. An unknown station yields an empty slice.
func (d *Directory) GetActiveAlerts(stationID string, minSeverity *models.AlertSeverity) []models.WeatherAlert {
	ids := d.data.order
	if stationID != "" {
		ids = []string{stationID}
	}

	alerts := make([]models.WeatherAlert, 0)
	for _, id := range ids {
		for _, alert := range d.data.alerts[id] {
			if minSeverity != nil && !alert.Severity.AtLeast(*minSeverity) {
				continue
			}
			alerts = append(alerts, alert)
		}
	}
	return alerts
}

func (d *Directory) GetAirQuality(stationID string) (*models.AirQuality, error) {
	aq, ok := d.data.airQuality[stationID]
	if !ok {
		log.Debug().Str("station_id", stationID).Msg("No air quality recorded")
		return nil, NewNotFoundError("air quality", stationID)
	}
	aq = aq.Clone()
	return &aq, nil
}

// StationCount reports how many stations the directory serves.
func (d *Directory) StationCount() int {
	return len(d.data.order)
}

func prefixLen(length, n int) int {
	if n <= 0 {
		return 0
	}
	if n > length {
		return length
	}
	return n
}

func calculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
