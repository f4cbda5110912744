package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/templui/deskboard/internal/cache"
	"github.com/templui/deskboard/internal/model"
)

const DefaultWeatherCity = "New York"

var (
	ErrWeatherNotConfigured = errors.New("weather API key not configured")
	ErrWeatherUnauthorized  = errors.New("weather service rejected the API key")
	ErrCityNotFound         = errors.New("city not found")
	ErrWeatherUnavailable   = errors.New("failed to fetch weather data")
)

// WeatherService proxies OpenWeatherMap current conditions and caches
// results per city.
type WeatherService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	cache   cache.Cache
	ttl     time.Duration
}

func NewWeatherService(client *http.Client, baseURL, apiKey string, cache cache.Cache, ttl time.Duration) *WeatherService {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WeatherService{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		cache:   cache,
		ttl:     ttl,
	}
}

func (s *WeatherService) Configured() bool {
	return s.apiKey != ""
}

type owmResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Current returns current conditions for city, served from cache when fresh.
func (s *WeatherService) Current(ctx context.Context, city string) (*model.Weather, error) {
	if !s.Configured() {
		return nil, ErrWeatherNotConfigured
	}

	city = strings.TrimSpace(city)
	if city == "" {
		city = DefaultWeatherCity
	}
	cacheKey := "weather:" + strings.ToLower(city)

	cached, ok, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		slog.Warn("weather cache read failed", "error", err, "city", city)
	}
	if ok {
		weather := &model.Weather{}
		err = json.Unmarshal(cached, weather)
		if err == nil {
			return weather, nil
		}
		slog.Warn("discarding unreadable cached weather", "error", err, "city", city)
	}

	weather, err := s.fetch(ctx, city)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(weather)
	if err == nil {
		err = s.cache.Set(ctx, cacheKey, data, s.ttl)
	}
	if err != nil {
		slog.Warn("weather cache write failed", "error", err, "city", city)
	}

	return weather, nil
}

func (s *WeatherService) fetch(ctx context.Context, city string) (*model.Weather, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", s.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/data/2.5/weather?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWeatherUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Error("weather request failed", "error", err, "city", city)
		return nil, fmt.Errorf("%w: %w", ErrWeatherUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		slog.Error("weather API key rejected", "status", resp.StatusCode)
		return nil, ErrWeatherUnauthorized
	case http.StatusNotFound:
		return nil, ErrCityNotFound
	default:
		slog.Error("weather API error", "status", resp.StatusCode, "city", city)
		return nil, fmt.Errorf("%w: upstream status %d", ErrWeatherUnavailable, resp.StatusCode)
	}

	var body owmResponse
	err = json.NewDecoder(resp.Body).Decode(&body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrWeatherUnavailable, err)
	}

	weather := &model.Weather{
		City:        body.Name,
		Country:     body.Sys.Country,
		Temperature: int(math.Round(body.Main.Temp)),
		Humidity:    body.Main.Humidity,
		WindSpeed:   body.Wind.Speed,
	}
	if len(body.Weather) > 0 {
		weather.Description = body.Weather[0].Description
		weather.Icon = body.Weather[0].Icon
	}

	return weather, nil
}
