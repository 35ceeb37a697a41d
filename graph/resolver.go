// Package graph serves the directory as a read-only GraphQL query schema.
package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/bbernstein/weatherhub/internal/models"
	"github.com/bbernstein/weatherhub/internal/present"
	"github.com/bbernstein/weatherhub/internal/weather"
)

type Resolver struct {
	Service weather.Service
}

// QueryResolver resolves the root Query fields. Singular lookups that miss resolve to nil
// without an error.
type QueryResolver interface {
	Stations(ctx context.Context, state *string) ([]models.Station, error)
	Station(ctx context.Context, id string) (*models.Station, error)
	NearestStations(ctx context.Context, lat, lon float64, limit *int) ([]models.StationDistance, error)
	CurrentConditions(ctx context.Context, stationID string, unit *string) (*models.CurrentConditions, error)
	DailyForecast(ctx context.Context, stationID string, days *int) ([]models.DailyForecast, error)
	HourlyForecast(ctx context.Context, stationID string, hours *int) ([]models.HourlyForecast, error)
	ActiveAlerts(ctx context.Context, stationID, minSeverity *string) ([]models.WeatherAlert, error)
	AirQuality(ctx context.Context, stationID string) (*models.AirQuality, error)
}

func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

type queryResolver struct{ *Resolver }

func (r *queryResolver) Stations(ctx context.Context, state *string) ([]models.Station, error) {
	return r.Service.ListStations(deref(state)), nil
}

func (r *queryResolver) Station(ctx context.Context, id string) (*models.Station, error) {
	return nullIfMissing(r.Service.GetStation(id))
}

func (r *queryResolver) NearestStations(ctx context.Context, lat, lon float64, limit *int) ([]models.StationDistance, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("invalid coordinates: lat %v, lon %v", lat, lon)
	}
	return r.Service.FindNearestStations(lat, lon, present.ClampNearestLimit(limit)), nil
}

func (r *queryResolver) CurrentConditions(ctx context.Context, stationID string, unit *string) (*models.CurrentConditions, error) {
	tempUnit, err := present.ParseTemperatureUnit(deref(unit))
	if err != nil {
		return nil, err
	}
	conditions, err := nullIfMissing(r.Service.GetCurrentConditions(stationID))
	if conditions == nil || err != nil {
		return nil, err
	}
	converted := present.ConditionsIn(*conditions, tempUnit)
	return &converted, nil
}

func (r *queryResolver) DailyForecast(ctx context.Context, stationID string, days *int) ([]models.DailyForecast, error) {
	return r.Service.GetDailyForecast(stationID, present.ClampDays(days)), nil
}

func (r *queryResolver) HourlyForecast(ctx context.Context, stationID string, hours *int) ([]models.HourlyForecast, error) {
	return r.Service.GetHourlyForecast(stationID, present.ClampHours(hours)), nil
}

func (r *queryResolver) ActiveAlerts(ctx context.Context, stationID, minSeverity *string) ([]models.WeatherAlert, error) {
	severity, err := present.ParseMinSeverity(deref(minSeverity))
	if err != nil {
		return nil, err
	}
	return r.Service.GetActiveAlerts(deref(stationID), severity), nil
}

func (r *queryResolver) AirQuality(ctx context.Context, stationID string) (*models.AirQuality, error) {
	return nullIfMissing(r.Service.GetAirQuality(stationID))
}

func nullIfMissing[T any](v *T, err error) (*T, error) {
	if errors.Is(err, weather.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
