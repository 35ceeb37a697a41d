package models

import (
	"fmt"
	"strings"
)

type StationStatus string

const (
	StationOnline         StationStatus = "Online"
	StationMaintenance    StationStatus = "Maintenance"
	StationOffline        StationStatus = "Offline"
	StationDecommissioned StationStatus = "Decommissioned"
)

var stationStatuses = []StationStatus{StationOnline, StationMaintenance, StationOffline, StationDecommissioned}

// StationStatuses lists every operational status in declaration order.
func StationStatuses() []StationStatus {
	return append([]StationStatus(nil), stationStatuses...)
}

func (s StationStatus) Valid() bool {
	return containsEnum(s, stationStatuses)
}

func ParseStationStatus(s string) (StationStatus, error) {
	if v, ok := parseEnum(s, stationStatuses); ok {
		return v, nil
	}
	return "", fmt.Errorf("invalid station status: %q", s)
}

// Location is where a station sits. State holds the state or region code ("CO").
type Location struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	ElevationFt float64 `json:"elevationFt"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
}

type Station struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Location Location      `json:"location"`
	Status   StationStatus `json:"status"`
}

// StationDistance pairs a station with its distance from a query point.
type StationDistance struct {
	Station
	DistanceMiles float64 `json:"distanceMiles"`
}

func (s Station) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("station id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("station %s: name is required", s.ID)
	}
	if !s.Status.Valid() {
		return fmt.Errorf("station %s: invalid status %q", s.ID, s.Status)
	}
	if s.Location.Latitude < -90 || s.Location.Latitude > 90 {
		return fmt.Errorf("station %s: invalid latitude %v", s.ID, s.Location.Latitude)
	}
	if s.Location.Longitude < -180 || s.Location.Longitude > 180 {
		return fmt.Errorf("station %s: invalid longitude %v", s.ID, s.Location.Longitude)
	}
	return nil
}
