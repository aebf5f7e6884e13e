package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"datachat/internal/tools"
)

func TestToolDescribe(t *testing.T) {
	tool := NewTool(NewClientWithConfig("test-key", DefaultBaseURL, time.Second))

	first := tool.Describe()
	second := tool.Describe()

	if !reflect.DeepEqual(first, second) {
		t.Error("Describe is not idempotent")
	}
	if first.Name != ToolName {
		t.Errorf("name = %q, want %q", first.Name, ToolName)
	}
	if !reflect.DeepEqual(first.InputSchema.Required, []string{"city"}) {
		t.Errorf("required = %v", first.InputSchema.Required)
	}
	if first.InputSchema.Properties["city"].Type != "string" {
		t.Error("city parameter must be a string")
	}
}

func TestToolExecute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(currentPayload))
	}))
	defer server.Close()

	tool := NewTool(NewClientWithConfig("test-key", server.URL, time.Second))

	payload, err := tool.Execute(context.Background(), map[string]any{"city": "Paris"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Paris, FR", "temperature=24.3C", "humidity=48%", "wind_speed=3.6m/s"} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload missing %q:\n%s", want, payload)
		}
	}
}

func TestToolExecute_MissingCity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected")
	}))
	defer server.Close()

	tool := NewTool(NewClientWithConfig("test-key", server.URL, time.Second))

	_, err := tool.Execute(context.Background(), map[string]any{})
	if !errors.Is(err, tools.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
