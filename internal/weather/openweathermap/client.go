// Package openweathermap is the gateway to the OpenWeatherMap API: one
// operation per upstream resource, each independently callable and
// independently failing. Non-success replies are normalized into the
// domain failure taxonomy instead of leaking raw HTTP errors upward.
package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/TusharSA25/Weather-Dashboard/internal/provider/resilience"
	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openweathermap"

	// DefaultBaseURL is the OpenWeatherMap data API base URL.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	// DefaultGeoURL is the OpenWeatherMap geocoding API base URL.
	DefaultGeoURL = "https://api.openweathermap.org/geo/1.0"

	// DefaultOneCallURL is the One Call 3.0 base URL, used for alerts.
	DefaultOneCallURL = "https://api.openweathermap.org/data/3.0/onecall"
)

// UpstreamError reports a non-success reply or transport failure from
// the upstream API, carrying the human-readable message the API gave.
type UpstreamError struct {
	Operation string
	Status    int // 0 for transport failures
	Message   string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("openweathermap %s: status %d: %s", e.Operation, e.Status, e.Message)
	}
	return fmt.Sprintf("openweathermap %s: %s", e.Operation, e.Message)
}

// Unwrap maps every upstream failure into the domain taxonomy.
func (e *UpstreamError) Unwrap() error { return weather.ErrProviderUnavailable }

// ClientConfig holds configuration for the OpenWeatherMap client.
type ClientConfig struct {
	// APIKey is the OpenWeatherMap API key (required).
	APIKey string

	// BaseURL is the data API base URL (optional).
	BaseURL string

	// GeoURL is the geocoding API base URL (optional).
	GeoURL string

	// OneCallURL is the One Call API URL (optional).
	OneCallURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenWeatherMap API client.
type Client struct {
	apiKey     string
	baseURL    string
	geoURL     string
	oneCallURL string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new OpenWeatherMap client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	geoURL := cfg.GeoURL
	if geoURL == "" {
		geoURL = DefaultGeoURL
	}

	oneCallURL := cfg.OneCallURL
	if oneCallURL == "" {
		oneCallURL = DefaultOneCallURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig("openweathermap"))
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		geoURL:     geoURL,
		oneCallURL: oneCallURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// HasAPIKey reports whether an upstream credential is configured.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// FetchCurrent fetches current conditions for a city by name.
func (c *Client) FetchCurrent(ctx context.Context, city string) (*CurrentWeatherResponse, error) {
	reqURL := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(city), c.apiKey)

	var owmResp CurrentWeatherResponse
	if err := c.getJSON(ctx, "current", reqURL, &owmResp); err != nil {
		return nil, err
	}
	return &owmResp, nil
}

// FetchForecast fetches the 5-day/3-hour forecast series for a city.
func (c *Client) FetchForecast(ctx context.Context, city string) (*ForecastResponse, error) {
	reqURL := fmt.Sprintf("%s/forecast?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(city), c.apiKey)

	var owmResp ForecastResponse
	if err := c.getJSON(ctx, "forecast", reqURL, &owmResp); err != nil {
		return nil, err
	}
	return &owmResp, nil
}

// ResolveLocation geocodes a free-text query into candidate locations.
// limit is the maximum number of candidates the upstream may return.
func (c *Client) ResolveLocation(ctx context.Context, query string, limit int) ([]GeoLocation, error) {
	reqURL := fmt.Sprintf("%s/direct?q=%s&limit=%d&appid=%s",
		c.geoURL, url.QueryEscape(query), limit, c.apiKey)

	var locations []GeoLocation
	if err := c.getJSON(ctx, "geocode", reqURL, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// FetchAirQuality fetches the air pollution snapshot for a coordinate.
func (c *Client) FetchAirQuality(ctx context.Context, lat, lon float64) (*AirPollutionResponse, error) {
	reqURL := fmt.Sprintf("%s/air_pollution?lat=%.6f&lon=%.6f&appid=%s",
		c.baseURL, lat, lon, c.apiKey)

	var owmResp AirPollutionResponse
	if err := c.getJSON(ctx, "air_quality", reqURL, &owmResp); err != nil {
		return nil, err
	}
	return &owmResp, nil
}

// FetchAlerts fetches active government alerts for a coordinate. The
// One Call alerts resource needs elevated plan access; when the call
// is unauthorized, unreachable or otherwise failing, the result
// degrades to an empty list with no error so missing alert access
// never fails a search.
func (c *Client) FetchAlerts(ctx context.Context, lat, lon float64) ([]Alert, error) {
	reqURL := fmt.Sprintf("%s?lat=%.6f&lon=%.6f&exclude=current,minutely,hourly,daily&appid=%s",
		c.oneCallURL, lat, lon, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("alerts fetch failed, degrading to empty")
		return []Alert{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("alerts resource unavailable, degrading to empty")
		return []Alert{}, nil
	}

	var owmResp oneCallResponse
	if err := json.NewDecoder(resp.Body).Decode(&owmResp); err != nil {
		c.logger.Warn().Err(err).Msg("decoding alerts response failed, degrading to empty")
		return []Alert{}, nil
	}

	if owmResp.Alerts == nil {
		return []Alert{}, nil
	}
	return owmResp.Alerts, nil
}

// getJSON performs one GET and decodes the body, normalizing failure:
// 404 becomes weather.ErrCityNotFound, any other non-success status or
// transport failure becomes an UpstreamError.
func (c *Client) getJSON(ctx context.Context, op, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Operation: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, weather.ErrCityNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{Operation: op, Status: resp.StatusCode, Message: apiMessage(resp)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UpstreamError{Operation: op, Message: fmt.Sprintf("decoding response: %v", err)}
	}
	return nil
}

// apiMessage extracts the human-readable message from an upstream
// error body, e.g. {"cod":"401","message":"Invalid API key"}.
func apiMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Message == "" {
		return http.StatusText(resp.StatusCode)
	}
	return body.Message
}

// Domain-facing adapters. These satisfy weather.Provider so the
// aggregation service never touches the raw shapes.

// GetCurrent implements weather.Provider.
func (c *Client) GetCurrent(ctx context.Context, city string) (*weather.CurrentConditions, error) {
	raw, err := c.FetchCurrent(ctx, city)
	if err != nil {
		return nil, err
	}
	current := raw.ToCurrentConditions()
	return &current, nil
}

// GetForecast implements weather.Provider.
func (c *Client) GetForecast(ctx context.Context, city string) ([]weather.ForecastSample, error) {
	raw, err := c.FetchForecast(ctx, city)
	if err != nil {
		return nil, err
	}
	return raw.Samples(), nil
}

// GetLocations implements weather.Provider.
func (c *Client) GetLocations(ctx context.Context, query string, limit int) ([]weather.Location, error) {
	raw, err := c.ResolveLocation(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	locations := make([]weather.Location, 0, len(raw))
	for _, g := range raw {
		locations = append(locations, g.ToLocation())
	}
	return locations, nil
}

// GetAirQuality implements weather.Provider.
func (c *Client) GetAirQuality(ctx context.Context, lat, lon float64) (*weather.AirQualitySnapshot, error) {
	raw, err := c.FetchAirQuality(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	return raw.ToSnapshot(), nil
}

// GetAlerts implements weather.Provider.
func (c *Client) GetAlerts(ctx context.Context, lat, lon float64) ([]weather.AlertEntry, error) {
	raw, err := c.FetchAlerts(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	entries := make([]weather.AlertEntry, 0, len(raw))
	for _, a := range raw {
		entries = append(entries, a.ToEntry())
	}
	return entries, nil
}
