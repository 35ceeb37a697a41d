package models

import (
	"fmt"
	"strings"
	"time"
)

type AlertSeverity string

const (
	SeverityAdvisory  AlertSeverity = "Advisory"
	SeverityWatch     AlertSeverity = "Watch"
	SeverityWarning   AlertSeverity = "Warning"
	SeverityEmergency AlertSeverity = "Emergency"
)

// severityRank is the total order used for threshold filtering. Keep it explicit:
// filtering must not depend on the order constants happen to be declared in.
var severityRank = map[AlertSeverity]int{
	SeverityAdvisory:  0,
	SeverityWatch:     1,
	SeverityWarning:   2,
	SeverityEmergency: 3,
}

var alertSeverities = []AlertSeverity{SeverityAdvisory, SeverityWatch, SeverityWarning, SeverityEmergency}

// AlertSeverities lists severities from least to most severe.
func AlertSeverities() []AlertSeverity {
	return append([]AlertSeverity(nil), alertSeverities...)
}

func (s AlertSeverity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// Rank returns the position of s in the severity order, or -1 for an unknown value.
func (s AlertSeverity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// AtLeast reports whether s is as severe as min or more. Unknown severities never qualify.
func (s AlertSeverity) AtLeast(min AlertSeverity) bool {
	if !s.Valid() || !min.Valid() {
		return false
	}
	return s.Rank() >= min.Rank()
}

func ParseAlertSeverity(s string) (AlertSeverity, error) {
	if v, ok := parseEnum(s, alertSeverities); ok {
		return v, nil
	}
	return "", fmt.Errorf("invalid alert severity: %q", s)
}

type AlertCategory string

const (
	CategoryHurricane    AlertCategory = "Hurricane"
	CategoryFlood        AlertCategory = "Flood"
	CategoryExtremeHeat  AlertCategory = "ExtremeHeat"
	CategoryWinterStorm  AlertCategory = "WinterStorm"
	CategoryHighWind     AlertCategory = "HighWind"
	CategoryTornado      AlertCategory = "Tornado"
	CategoryThunderstorm AlertCategory = "Thunderstorm"
	CategoryWildfire     AlertCategory = "Wildfire"
	CategoryAirQuality   AlertCategory = "AirQuality"
	CategoryOther        AlertCategory = "Other"
)

var alertCategories = []AlertCategory{
	CategoryHurricane, CategoryFlood, CategoryExtremeHeat, CategoryWinterStorm, CategoryHighWind,
	CategoryTornado, CategoryThunderstorm, CategoryWildfire, CategoryAirQuality, CategoryOther,
}

func (c AlertCategory) Valid() bool {
	return containsEnum(c, alertCategories)
}

func ParseAlertCategory(s string) (AlertCategory, error) {
	if v, ok := parseEnum(s, alertCategories); ok {
		return v, nil
	}
	return "", fmt.Errorf("invalid alert category: %q", s)
}

type WeatherAlert struct {
	ID           string        `json:"id"`
	StationID    string        `json:"stationId"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Severity     AlertSeverity `json:"severity"`
	Category     AlertCategory `json:"category"`
	IssuedAt     time.Time     `json:"issuedAt"`
	ExpiresAt    time.Time     `json:"expiresAt"`
	AffectedArea string        `json:"affectedArea"`
}

func (a WeatherAlert) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("alert id is required")
	}
	if !a.Severity.Valid() {
		return fmt.Errorf("alert %s: invalid severity %q", a.ID, a.Severity)
	}
	if !a.Category.Valid() {
		return fmt.Errorf("alert %s: invalid category %q", a.ID, a.Category)
	}
	if a.ExpiresAt.Before(a.IssuedAt) {
		return fmt.Errorf("alert %s: expires before it is issued", a.ID)
	}
	return nil
}
