package flight

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"datachat/internal/tools"
)

func TestToolDescribe(t *testing.T) {
	tool := NewTool(NewClient())

	first := tool.Describe()
	second := tool.Describe()

	if !reflect.DeepEqual(first, second) {
		t.Error("Describe is not idempotent")
	}
	if first.Name != ToolName {
		t.Errorf("name = %q, want %q", first.Name, ToolName)
	}

	want := []string{"min_lat", "max_lat", "min_lon", "max_lon"}
	if !reflect.DeepEqual(first.InputSchema.Required, want) {
		t.Errorf("required = %v, want %v", first.InputSchema.Required, want)
	}
	for _, name := range want {
		if first.InputSchema.Properties[name].Type != "number" {
			t.Errorf("parameter %s must be a number", name)
		}
	}
}

func TestToolExecute(t *testing.T) {
	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(statesPayload))
	}))
	defer server.Close()

	tool := NewTool(NewClientWithConfig(server.URL, time.Second))

	payload, err := tool.Execute(context.Background(), map[string]any{
		"min_lat": 42.4,
		"max_lat": 42.8,
		"min_lon": 23.1,
		"max_lon": 23.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The model's parameters map straight onto the request bounds.
	want := map[string]string{"lamin": "42.4", "lamax": "42.8", "lomin": "23.1", "lomax": "23.5"}
	for key, value := range want {
		if got := query.Get(key); got != value {
			t.Errorf("param %s = %q, want %q", key, got, value)
		}
	}

	if !strings.Contains(payload, "2 aircraft found") {
		t.Errorf("unexpected payload: %q", payload)
	}
	if !strings.Contains(payload, "callsign=RYR123") {
		t.Errorf("payload missing formatted record: %q", payload)
	}
}

func TestToolExecute_MissingParameter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected")
	}))
	defer server.Close()

	tool := NewTool(NewClientWithConfig(server.URL, time.Second))

	_, err := tool.Execute(context.Background(), map[string]any{
		"min_lat": 42.4,
		"max_lat": 42.8,
		"min_lon": 23.1,
	})
	if !errors.Is(err, tools.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFormatAircraft_Empty(t *testing.T) {
	if got := formatAircraft(nil); !strings.Contains(got, "No aircraft found") {
		t.Errorf("unexpected empty formatting: %q", got)
	}
}
