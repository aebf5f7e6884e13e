package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"datachat/internal/tools"
)

const (
	// DefaultBaseURL is the default OpenWeatherMap current weather endpoint
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	// DefaultTimeout is the default HTTP timeout for OpenWeatherMap requests
	DefaultTimeout = 10 * time.Second
)

// Observation holds current weather conditions for one location.
// Units are metric: Celsius, hPa, meters/second.
type Observation struct {
	City          string
	Country       string
	Temperature   float64
	FeelsLike     float64
	Humidity      int
	Pressure      int
	WindSpeed     float64
	WindDirection int
	Description   string
	Timestamp     time.Time
}

// Client fetches current weather from the OpenWeatherMap API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an OpenWeatherMap client with default configuration.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenWeatherMap API key is required")
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}, nil
}

// NewClientWithConfig creates a client with a custom endpoint and timeout.
func NewClientWithConfig(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// currentResponse mirrors the fields of the OpenWeatherMap payload we use.
type currentResponse struct {
	Name string `json:"name"`
	Dt   int64  `json:"dt"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Current fetches the current weather for a city.
func (c *Client) Current(ctx context.Context, city string) (*Observation, error) {
	if strings.TrimSpace(city) == "" {
		return nil, fmt.Errorf("%w: city name cannot be empty", tools.ErrInvalidInput)
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", tools.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", tools.ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: API error (status %d): %s", tools.ErrUnavailable, resp.StatusCode, string(body))
	}

	var payload currentResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", tools.ErrUnavailable, err)
	}

	description := ""
	if len(payload.Weather) > 0 {
		description = payload.Weather[0].Description
	}

	return &Observation{
		City:          payload.Name,
		Country:       payload.Sys.Country,
		Temperature:   payload.Main.Temp,
		FeelsLike:     payload.Main.FeelsLike,
		Humidity:      payload.Main.Humidity,
		Pressure:      payload.Main.Pressure,
		WindSpeed:     payload.Wind.Speed,
		WindDirection: payload.Wind.Deg,
		Description:   description,
		Timestamp:     time.Unix(payload.Dt, 0).UTC(),
	}, nil
}
