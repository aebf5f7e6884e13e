package flight

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"datachat/internal/tools"
)

const statesPayload = `{
	"time": 1700000000,
	"states": [
		["4ca1fa", "RYR123  ", "Ireland", 1699999990, 1699999995, 23.3, 42.6, 10000.5, false, 220.5, 145.2, 0.0, null, 10500.0, "1000", false, 0],
		["aabbcc", null, "Bulgaria", 1699999990, 1699999995, null, 42.5, 9000.0, false, 200.0, 90.0, 0.0, null, 9100.0, "2000", false, 0],
		["ddeeff", "BGA42", "Bulgaria", null, 1699999995, 23.4, 42.7, 8000.0, false, 180.0, 270.0, 0.0, null, 8100.0, "3000", false, 0]
	]
}`

func newStubServer(t *testing.T, status int, body string, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestBoxValidate(t *testing.T) {
	tests := []struct {
		name    string
		box     Box
		wantErr bool
	}{
		{"valid box", Box{42.4, 42.8, 23.1, 23.5}, false},
		{"zero box", Box{0, 0, 0, 0}, false},
		{"latitude out of range", Box{-91, 42.8, 23.1, 23.5}, true},
		{"longitude out of range", Box{42.4, 42.8, 23.1, 181}, true},
		{"min lat above max", Box{42.8, 42.4, 23.1, 23.5}, true},
		{"min lon above max", Box{42.4, 42.8, 23.5, 23.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.box.Validate()
			if tt.wantErr {
				if !errors.Is(err, tools.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAircraftInBox(t *testing.T) {
	var calls atomic.Int64
	server := newStubServer(t, http.StatusOK, statesPayload, &calls)
	defer server.Close()

	client := NewClientWithConfig(server.URL, time.Second)

	aircraft, err := client.AircraftInBox(context.Background(), Box{42.4, 42.8, 23.1, 23.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The vector with a null longitude is skipped, never fatal.
	if len(aircraft) != 2 {
		t.Fatalf("expected 2 aircraft, got %d", len(aircraft))
	}

	first := aircraft[0]
	if first.ICAO24 != "4ca1fa" {
		t.Errorf("icao24 = %q", first.ICAO24)
	}
	if first.Callsign != "RYR123" {
		t.Errorf("callsign not trimmed: %q", first.Callsign)
	}
	if first.Latitude != 42.6 || first.Longitude != 23.3 {
		t.Errorf("position = (%v, %v)", first.Latitude, first.Longitude)
	}
	if first.Velocity != 220.5 || first.Heading != 145.2 {
		t.Errorf("velocity=%v heading=%v", first.Velocity, first.Heading)
	}
	if first.Timestamp != time.Unix(1699999990, 0).UTC() {
		t.Errorf("timestamp = %v", first.Timestamp)
	}

	// Null time_position falls back to the response time.
	if aircraft[1].Timestamp != time.Unix(1700000000, 0).UTC() {
		t.Errorf("fallback timestamp = %v", aircraft[1].Timestamp)
	}
}

func TestAircraftInBox_ForwardsBounds(t *testing.T) {
	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"time": 0, "states": []}`))
	}))
	defer server.Close()

	client := NewClientWithConfig(server.URL, time.Second)
	if _, err := client.AircraftInBox(context.Background(), Box{42.4, 42.8, 23.1, 23.5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{"lamin": "42.4", "lamax": "42.8", "lomin": "23.1", "lomax": "23.5"}
	for key, value := range want {
		if got := query.Get(key); got != value {
			t.Errorf("param %s = %q, want %q", key, got, value)
		}
	}
}

func TestAircraftInBox_InvalidBoxSkipsNetwork(t *testing.T) {
	var calls atomic.Int64
	server := newStubServer(t, http.StatusOK, statesPayload, &calls)
	defer server.Close()

	client := NewClientWithConfig(server.URL, time.Second)

	_, err := client.AircraftInBox(context.Background(), Box{42.8, 42.4, 23.1, 23.5})
	if !errors.Is(err, tools.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("expected 0 network calls, got %d", calls.Load())
	}
}

func TestAircraftInBox_APIError(t *testing.T) {
	var calls atomic.Int64
	server := newStubServer(t, http.StatusBadGateway, "upstream broken", &calls)
	defer server.Close()

	client := NewClientWithConfig(server.URL, time.Second)

	_, err := client.AircraftInBox(context.Background(), Box{42.4, 42.8, 23.1, 23.5})
	if !errors.Is(err, tools.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestAircraftInBox_MalformedResponse(t *testing.T) {
	var calls atomic.Int64
	server := newStubServer(t, http.StatusOK, "not json", &calls)
	defer server.Close()

	client := NewClientWithConfig(server.URL, time.Second)

	_, err := client.AircraftInBox(context.Background(), Box{42.4, 42.8, 23.1, 23.5})
	if !errors.Is(err, tools.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestAircraftInBox_NoStates(t *testing.T) {
	var calls atomic.Int64
	server := newStubServer(t, http.StatusOK, `{"time": 1700000000, "states": null}`, &calls)
	defer server.Close()

	client := NewClientWithConfig(server.URL, time.Second)

	aircraft, err := client.AircraftInBox(context.Background(), Box{42.4, 42.8, 23.1, 23.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(aircraft) != 0 {
		t.Errorf("expected no aircraft, got %d", len(aircraft))
	}
}
