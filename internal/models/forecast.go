package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without a time of day, rendered as "2006-01-02".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date: %w", err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type DailyForecast struct {
	Date          Date          `json:"date"`
	HighTempF     float64       `json:"highTempF"`
	LowTempF      float64       `json:"lowTempF"`
	SkyCondition  SkyCondition  `json:"skyCondition"`
	Wind          Wind          `json:"wind"`
	Precipitation Precipitation `json:"precipitation"`
	Sunrise       string        `json:"sunrise"`
	Sunset        string        `json:"sunset"`
}

func (f DailyForecast) Validate() error {
	if f.LowTempF > f.HighTempF {
		return fmt.Errorf("%s: low %v above high %v", f.Date, f.LowTempF, f.HighTempF)
	}
	if !f.SkyCondition.Valid() {
		return fmt.Errorf("%s: invalid sky condition %q", f.Date, f.SkyCondition)
	}
	if err := f.Wind.Validate(); err != nil {
		return fmt.Errorf("%s: wind: %w", f.Date, err)
	}
	if err := f.Precipitation.Validate(); err != nil {
		return fmt.Errorf("%s: precipitation: %w", f.Date, err)
	}
	for _, clock := range []string{f.Sunrise, f.Sunset} {
		if _, err := time.Parse("15:04", clock); err != nil {
			return fmt.Errorf("%s: invalid sun time %q", f.Date, clock)
		}
	}
	return nil
}

func (f DailyForecast) Clone() DailyForecast {
	f.Wind = f.Wind.Clone()
	return f
}

type HourlyForecast struct {
	DateTime      time.Time     `json:"dateTime"`
	TemperatureF  float64       `json:"temperatureF"`
	FeelsLikeF    float64       `json:"feelsLikeF"`
	SkyCondition  SkyCondition  `json:"skyCondition"`
	Wind          Wind          `json:"wind"`
	Precipitation Precipitation `json:"precipitation"`
}

func (f HourlyForecast) Validate() error {
	if f.DateTime.IsZero() {
		return fmt.Errorf("hourly forecast timestamp is required")
	}
	if !f.SkyCondition.Valid() {
		return fmt.Errorf("%s: invalid sky condition %q", f.DateTime.Format(time.RFC3339), f.SkyCondition)
	}
	if err := f.Wind.Validate(); err != nil {
		return fmt.Errorf("%s: wind: %w", f.DateTime.Format(time.RFC3339), err)
	}
	if err := f.Precipitation.Validate(); err != nil {
		return fmt.Errorf("%s: precipitation: %w", f.DateTime.Format(time.RFC3339), err)
	}
	return nil
}

func (f HourlyForecast) Clone() HourlyForecast {
	f.Wind = f.Wind.Clone()
	return f
}
