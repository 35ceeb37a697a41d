package weather

import (
	"fmt"
	"sort"
	"time"

	"github.com/bbernstein/weatherhub/internal/forecast"
	"github.com/bbernstein/weatherhub/internal/models"
	"github.com/bbernstein/weatherhub/internal/seed"
)

// dataset is the fully materialised, never mutated content of a directory.
type dataset struct {
	order      []string
	stations   map[string]models.Station
	conditions map[string]models.CurrentConditions
	daily      map[string][]models.DailyForecast
	hourly     map[string][]models.HourlyForecast
	alerts     map[string][]models.WeatherAlert
	airQuality map[string]models.AirQuality
}

func buildDataset(catalog *seed.Catalog, now time.Time) (*dataset, error) {
	if catalog == nil {
		return nil, NewIntegrityError("catalog is nil", nil)
	}
	now = now.UTC()

	ds := &dataset{
		order:      make([]string, 0, len(catalog.Stations)),
		stations:   make(map[string]models.Station, len(catalog.Stations)),
		conditions: make(map[string]models.CurrentConditions, len(catalog.Conditions)),
		daily:      make(map[string][]models.DailyForecast, len(catalog.Daily)),
		hourly:     make(map[string][]models.HourlyForecast, len(catalog.Hourly)),
		alerts:     make(map[string][]models.WeatherAlert, len(catalog.Alerts)),
		airQuality: make(map[string]models.AirQuality, len(catalog.AirQuality)),
	}

	for _, station := range catalog.Stations {
		if err := station.Validate(); err != nil {
			return nil, NewIntegrityError("invalid station", err)
		}
		if _, dup := ds.stations[station.ID]; dup {
			return nil, NewIntegrityError(fmt.Sprintf("duplicate station id %s", station.ID), nil)
		}
		ds.order = append(ds.order, station.ID)
		ds.stations[station.ID] = station
	}

	if err := ensureKnown(ds, "conditions", keys(catalog.Conditions)); err != nil {
		return nil, err
	}
	for id, c := range catalog.Conditions {
		c = c.Clone()
		if c.ObservedAt.IsZero() {
			c.ObservedAt = now
		}
		if err := c.Validate(); err != nil {
			return nil, NewIntegrityError(fmt.Sprintf("conditions for %s", id), err)
		}
		ds.conditions[id] = c
	}

	if err := ensureKnown(ds, "daily forecast", keys(catalog.Daily)); err != nil {
		return nil, err
	}
	today := models.DateOf(now)
	for id, rows := range catalog.Daily {
		series := forecast.Daily(today, rows)
		for _, day := range series {
			if err := day.Validate(); err != nil {
				return nil, NewIntegrityError(fmt.Sprintf("daily forecast for %s", id), err)
			}
		}
		ds.daily[id] = series
	}

	if err := ensureKnown(ds, "hourly baseline", keys(catalog.Hourly)); err != nil {
		return nil, err
	}
	for id, baseline := range catalog.Hourly {
		series := forecast.Hourly(now, baseline)
		for _, hour := range series {
			if err := hour.Validate(); err != nil {
				return nil, NewIntegrityError(fmt.Sprintf("hourly forecast for %s", id), err)
			}
		}
		ds.hourly[id] = series
	}

	if err := ensureKnown(ds, "alerts", keys(catalog.Alerts)); err != nil {
		return nil, err
	}
	alertIDs := make(map[string]string)
	for _, id := range keys(catalog.Alerts) {
		seeds := catalog.Alerts[id]
		alerts := make([]models.WeatherAlert, 0, len(seeds))
		for _, s := range seeds {
			alert := s.Alert(id, now)
			if err := alert.Validate(); err != nil {
				return nil, NewIntegrityError(fmt.Sprintf("alert for %s", id), err)
			}
			if owner, dup := alertIDs[alert.ID]; dup {
				return nil, NewIntegrityError(fmt.Sprintf("alert id %s used by %s and %s", alert.ID, owner, id), nil)
			}
			alertIDs[alert.ID] = id
			alerts = append(alerts, alert)
		}
		ds.alerts[id] = alerts
	}

	if err := ensureKnown(ds, "air quality", keys(catalog.AirQuality)); err != nil {
		return nil, err
	}
	for id, aq := range catalog.AirQuality {
		if err := aq.Validate(); err != nil {
			return nil, NewIntegrityError(fmt.Sprintf("air quality for %s", id), err)
		}
		ds.airQuality[id] = aq.Clone()
	}

	return ds, nil
}

// ensureKnown rejects records owned by a station id that is not in the catalog.
func ensureKnown(ds *dataset, kind string, ids []string) error {
	for _, id := range ids {
		if _, ok := ds.stations[id]; !ok {
			return NewIntegrityError(fmt.Sprintf("%s references unknown station %q", kind, id), nil)
		}
	}
	return nil
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
