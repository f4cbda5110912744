package handler

import (
	"errors"
	"net/http"

	"github.com/templui/deskboard/internal/respond"
	"github.com/templui/deskboard/internal/service"
)

type WeatherHandler struct {
	weatherService *service.WeatherService
}

func NewWeatherHandler(weatherService *service.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	weather, err := h.weatherService.Current(r.Context(), r.URL.Query().Get("city"))
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, weather)
	case errors.Is(err, service.ErrWeatherNotConfigured):
		respond.Error(w, http.StatusInternalServerError, "Weather API key not configured")
	case errors.Is(err, service.ErrWeatherUnauthorized):
		respond.Error(w, http.StatusInternalServerError, "weather service rejected the API key")
	case errors.Is(err, service.ErrCityNotFound):
		respond.Error(w, http.StatusNotFound, "city not found")
	default:
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch weather data")
	}
}
