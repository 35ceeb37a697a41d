// Package api serves the directory over REST under /api/weather.
package api

import (
	"errors"
	"net/http"

	"github.com/bbernstein/weatherhub/internal/observability"
	"github.com/bbernstein/weatherhub/internal/present"
	"github.com/bbernstein/weatherhub/internal/weather"
	"github.com/gorilla/mux"
)

type Handler struct {
	service weather.Service
	metrics *observability.Metrics
}

func (h *Handler) listStations(w http.ResponseWriter, r *http.Request) {
	Success(w, StationsResponse{
		APIResponse: envelope("stations"),
		Stations:    h.service.ListStations(r.URL.Query().Get("state")),
	})
}

func (h *Handler) nearestStations(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	lat, lon, err := ParseCoordinates(params)
	if err != nil {
		Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit, err := ParseOptionalInt(params, "limit")
	if err != nil {
		Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	Success(w, NearestStationsResponse{
		APIResponse: envelope("nearestStations"),
		Stations:    h.service.FindNearestStations(lat, lon, present.ClampNearestLimit(limit)),
	})
}

func (h *Handler) getStation(w http.ResponseWriter, r *http.Request) {
	station, err := h.service.GetStation(mux.Vars(r)["id"])
	if err != nil {
		writeLookupError(w, err)
		return
	}
	Success(w, StationResponse{APIResponse: envelope("station"), Station: *station})
}

func (h *Handler) currentConditions(w http.ResponseWriter, r *http.Request) {
	stationID := mux.Vars(r)["stationId"]
	unit, err := present.ParseTemperatureUnit(r.URL.Query().Get("unit"))
	if err != nil {
		Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conditions, err := h.service.GetCurrentConditions(stationID)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	Success(w, ConditionsResponse{
		APIResponse: envelope("conditions"),
		StationID:   stationID,
		Unit:        string(unit),
		Conditions:  present.ConditionsIn(*conditions, unit),
	})
}

func (h *Handler) dailyForecast(w http.ResponseWriter, r *http.Request) {
	stationID := mux.Vars(r)["stationId"]
	days, err := ParseOptionalInt(r.URL.Query(), "days")
	if err != nil {
		Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	Success(w, DailyForecastResponse{
		APIResponse: envelope("dailyForecast"),
		StationID:   stationID,
		Forecast:    h.service.GetDailyForecast(stationID, present.ClampDays(days)),
	})
}

func (h *Handler) hourlyForecast(w http.ResponseWriter, r *http.Request) {
	stationID := mux.Vars(r)["stationId"]
	hours, err := ParseOptionalInt(r.URL.Query(), "hours")
	if err != nil {
		Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	Success(w, HourlyForecastResponse{
		APIResponse: envelope("hourlyForecast"),
		StationID:   stationID,
		Forecast:    h.service.GetHourlyForecast(stationID, present.ClampHours(hours)),
	})
}

func (h *Handler) airQuality(w http.ResponseWriter, r *http.Request) {
	stationID := mux.Vars(r)["stationId"]
	aq, err := h.service.GetAirQuality(stationID)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	Success(w, AirQualityResponse{
		APIResponse: envelope("airQuality"),
		StationID:   stationID,
		AirQuality:  *aq,
	})
}

func (h *Handler) activeAlerts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	minSeverity, err := present.ParseMinSeverity(params.Get("minSeverity"))
	if err != nil {
		Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	Success(w, AlertsResponse{
		APIResponse: envelope("alerts"),
		Alerts:      h.service.GetActiveAlerts(params.Get("stationId"), minSeverity),
	})
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, weather.ErrNotFound) {
		Error(w, err.Error(), http.StatusNotFound)
		return
	}
	Error(w, "Internal Server Error", http.StatusInternalServerError)
}
