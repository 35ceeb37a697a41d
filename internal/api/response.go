package api

import (
	"encoding/json"
	"net/http"

	"github.com/bbernstein/weatherhub/internal/models"
	"github.com/rs/zerolog/log"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

type StationsResponse struct {
	APIResponse
	Stations []models.Station `json:"stations"`
}

type StationResponse struct {
	APIResponse
	Station models.Station `json:"station"`
}

type NearestStationsResponse struct {
	APIResponse
	Stations []models.StationDistance `json:"stations"`
}

type ConditionsResponse struct {
	APIResponse
	StationID  string                   `json:"stationId"`
	Unit       string                   `json:"unit"`
	Conditions models.CurrentConditions `json:"conditions"`
}

type DailyForecastResponse struct {
	APIResponse
	StationID string                 `json:"stationId"`
	Forecast  []models.DailyForecast `json:"forecast"`
}

type HourlyForecastResponse struct {
	APIResponse
	StationID string                  `json:"stationId"`
	Forecast  []models.HourlyForecast `json:"forecast"`
}

type AirQualityResponse struct {
	APIResponse
	StationID  string            `json:"stationId"`
	AirQuality models.AirQuality `json:"airQuality"`
}

type AlertsResponse struct {
	APIResponse
	Alerts []models.WeatherAlert `json:"alerts"`
}

type ErrorResponse struct {
	APIResponse
	Error string `json:"error"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
	}
}

func envelope(responseType string) APIResponse {
	return APIResponse{ResponseType: responseType}
}

// Success writes body as a 200 JSON response.
func Success(w http.ResponseWriter, body interface{}) {
	writeJSON(w, http.StatusOK, body)
}

// Error writes the error envelope with the given status.
func Error(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, NewErrorResponse(message))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error().Err(err).Msg("Error marshaling response")
		status = http.StatusInternalServerError
		jsonBody, _ = json.Marshal(NewErrorResponse("Internal Server Error"))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(jsonBody); err != nil {
		log.Debug().Err(err).Msg("Error writing response")
	}
}
