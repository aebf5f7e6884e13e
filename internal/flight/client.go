package flight

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"datachat/internal/tools"
)

const (
	// DefaultBaseURL is the default OpenSky Network states endpoint
	DefaultBaseURL = "https://opensky-network.org/api/states/all"
	// DefaultTimeout is the default HTTP timeout for OpenSky requests
	DefaultTimeout = 30 * time.Second
)

// OpenSky state vector indices. The API returns each aircraft as a
// positional array.
const (
	stateICAO24        = 0
	stateCallsign      = 1
	stateOriginCountry = 2
	stateTimePosition  = 3
	stateLongitude     = 5
	stateLatitude      = 6
	stateBaroAltitude  = 7
	stateVelocity      = 9
	stateTrueTrack     = 10
)

// Aircraft is a single live aircraft position report.
type Aircraft struct {
	ICAO24        string
	Callsign      string
	OriginCountry string
	Longitude     float64
	Latitude      float64
	Altitude      float64
	Velocity      float64
	Heading       float64
	Timestamp     time.Time
}

// Box is a geographic bounding box in degrees.
type Box struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Validate checks coordinate ranges and ordering.
func (b Box) Validate() error {
	err := validation.ValidateStruct(&b,
		validation.Field(&b.MinLat, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&b.MaxLat, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&b.MinLon, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&b.MaxLon, validation.Min(-180.0), validation.Max(180.0)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", tools.ErrInvalidInput, err)
	}
	if b.MinLat > b.MaxLat || b.MinLon > b.MaxLon {
		return fmt.Errorf("%w: minimum coordinates must not exceed maximum coordinates", tools.ErrInvalidInput)
	}
	return nil
}

// Client fetches live aircraft positions from the OpenSky Network.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an OpenSky client with default configuration.
func NewClient() *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// NewClientWithConfig creates an OpenSky client with a custom endpoint and timeout.
func NewClientWithConfig(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// openSkyResponse mirrors the /states/all payload. Each state is a
// positional array with mixed element types, some of which may be null.
type openSkyResponse struct {
	Time   int64   `json:"time"`
	States [][]any `json:"states"`
}

// AircraftInBox returns all aircraft currently inside the bounding box.
// State vectors missing position, altitude, velocity, or heading are
// skipped rather than failing the whole fetch.
func (c *Client) AircraftInBox(ctx context.Context, box Box) ([]Aircraft, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("lamin", strconv.FormatFloat(box.MinLat, 'f', -1, 64))
	params.Set("lamax", strconv.FormatFloat(box.MaxLat, 'f', -1, 64))
	params.Set("lomin", strconv.FormatFloat(box.MinLon, 'f', -1, 64))
	params.Set("lomax", strconv.FormatFloat(box.MaxLon, 'f', -1, 64))

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

	var payload openSkyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", tools.ErrUnavailable, err)
	}

	aircraft := make([]Aircraft, 0, len(payload.States))
	for _, state := range payload.States {
		a, ok := parseState(state, payload.Time)
		if !ok {
			continue
		}
		aircraft = append(aircraft, a)
	}

	return aircraft, nil
}

// parseState converts one state vector into an Aircraft. Returns false when
// a critical numeric field is null or the vector is too short.
func parseState(state []any, fallbackTime int64) (Aircraft, bool) {
	if len(state) <= stateTrueTrack {
		return Aircraft{}, false
	}

	lon, okLon := asFloat(state[stateLongitude])
	lat, okLat := asFloat(state[stateLatitude])
	alt, okAlt := asFloat(state[stateBaroAltitude])
	vel, okVel := asFloat(state[stateVelocity])
	hdg, okHdg := asFloat(state[stateTrueTrack])
	if !okLon || !okLat || !okAlt || !okVel || !okHdg {
		return Aircraft{}, false
	}

	icao24, _ := asString(state[stateICAO24])
	country, _ := asString(state[stateOriginCountry])

	callsign, _ := asString(state[stateCallsign])
	callsign = strings.TrimSpace(callsign)

	ts := fallbackTime
	if t, ok := asFloat(state[stateTimePosition]); ok {
		ts = int64(t)
	}

	return Aircraft{
		ICAO24:        icao24,
		Callsign:      callsign,
		OriginCountry: country,
		Longitude:     lon,
		Latitude:      lat,
		Altitude:      alt,
		Velocity:      vel,
		Heading:       hdg,
		Timestamp:     time.Unix(ts, 0).UTC(),
	}, true
}

func asFloat(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
