package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type InvalidCoordinatesError struct{}

func (e InvalidCoordinatesError) Error() string {
	return "Invalid coordinates"
}

// InvalidParameterError is a query parameter that does not parse.
type InvalidParameterError struct {
	Name  string
	Value string
}

func (e InvalidParameterError) Error() string {
	return fmt.Sprintf("Invalid %s: %q", e.Name, e.Value)
}

// ParseCoordinates reads lat and lon. Both are required and must be in range.
func ParseCoordinates(params url.Values) (float64, float64, error) {
	latStr := strings.TrimSpace(params.Get("lat"))
	lonStr := strings.TrimSpace(params.Get("lon"))
	if latStr == "" || lonStr == "" {
		return 0, 0, InvalidCoordinatesError{}
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, InvalidCoordinatesError{}
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, InvalidCoordinatesError{}
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, InvalidCoordinatesError{}
	}

	return lat, lon, nil
}

// ParseOptionalInt returns nil when the parameter is absent or blank.
func ParseOptionalInt(params url.Values, name string) (*int, error) {
	raw := strings.TrimSpace(params.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, InvalidParameterError{Name: name, Value: raw}
	}
	return &v, nil
}
