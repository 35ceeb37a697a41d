// Package seed describes the dataset a directory is built from and where it can be loaded.
package seed

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bbernstein/weatherhub/internal/forecast"
	"github.com/bbernstein/weatherhub/internal/models"
)

// Catalog is the raw material of a directory. Every map is keyed by station id, and every
// key must name a station in Stations.
type Catalog struct {
	Stations   []models.Station                    `json:"stations"`
	Conditions map[string]models.CurrentConditions `json:"conditions"`
	Hourly     map[string]forecast.Baseline        `json:"hourly"`
	Daily      map[string][]forecast.DailyRow      `json:"daily"`
	Alerts     map[string][]AlertSeed              `json:"alerts"`
	AirQuality map[string]models.AirQuality        `json:"airQuality"`
}

// AlertSeed is an alert whose issue and expiry times are relative to startup.
type AlertSeed struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Severity       models.AlertSeverity `json:"severity"`
	Category       models.AlertCategory `json:"category"`
	IssuedHoursAgo float64              `json:"issuedHoursAgo"`
	ExpiresInHours float64              `json:"expiresInHours"`
	AffectedArea   string               `json:"affectedArea"`
}

// Alert anchors the seed at now for the given station.
func (a AlertSeed) Alert(stationID string, now time.Time) models.WeatherAlert {
	return models.WeatherAlert{
		ID:           a.ID,
		StationID:    stationID,
		Title:        a.Title,
		Description:  a.Description,
		Severity:     a.Severity,
		Category:     a.Category,
		IssuedAt:     now.Add(-hours(a.IssuedHoursAgo)),
		ExpiresAt:    now.Add(hours(a.ExpiresInHours)),
		AffectedArea: a.AffectedArea,
	}
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

// Decode reads a JSON catalog.
func Decode(r io.Reader) (*Catalog, error) {
	var catalog Catalog
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if len(catalog.Stations) == 0 {
		return nil, fmt.Errorf("catalog has no stations")
	}
	return &catalog, nil
}
