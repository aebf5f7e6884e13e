package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"datachat/internal/agent"
)

type fakeRunner struct {
	answer    string
	err       error
	lastQuery string
}

func (r *fakeRunner) Run(ctx context.Context, userQuery string) (string, error) {
	r.lastQuery = userQuery
	if r.err != nil {
		return "", r.err
	}
	return r.answer, nil
}

func newTestServer(runner agent.Runner) *http.ServeMux {
	registry := agent.NewRegistry()
	registry.Register("weather", runner)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewQueryHandler(registry, "weather", logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", HealthCheck)
	mux.HandleFunc("POST /api/query", h.Query)
	mux.HandleFunc("POST /api/{source}/query", h.QuerySource)
	return mux
}

func postJSON(t *testing.T, mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestQuery(t *testing.T) {
	runner := &fakeRunner{answer: "It is sunny in Paris."}
	mux := newTestServer(runner)

	rec := postJSON(t, mux, "/api/query", `{"query": "What's the weather in Paris?"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp QueryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Response != "It is sunny in Paris." {
		t.Errorf("response = %q", resp.Response)
	}
	if runner.lastQuery != "What's the weather in Paris?" {
		t.Errorf("runner received %q", runner.lastQuery)
	}
}

func TestQuery_SourceRouting(t *testing.T) {
	runner := &fakeRunner{answer: "ok"}
	mux := newTestServer(runner)

	t.Run("path source", func(t *testing.T) {
		rec := postJSON(t, mux, "/api/weather/query", `{"query": "hi"}`)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("unknown source", func(t *testing.T) {
		rec := postJSON(t, mux, "/api/flights/query", `{"query": "hi"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("body source overrides default", func(t *testing.T) {
		rec := postJSON(t, mux, "/api/query", `{"query": "hi", "source": "nope"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestQuery_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing query field", `{}`},
		{"blank query", `{"query": ""}`},
		{"invalid JSON", `{"query":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newTestServer(&fakeRunner{answer: "ok"})
			rec := postJSON(t, mux, "/api/query", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid error body: %v", err)
			}
			if body["error"] == "" || body["message"] == "" {
				t.Errorf("error body missing fields: %v", body)
			}
		})
	}
}

func TestQuery_RunnerFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("anthropic API call failed: connection refused")}
	mux := newTestServer(runner)

	rec := postJSON(t, mux, "/api/query", `{"query": "hello"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	// Internal detail must not leak to the client.
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Errorf("error detail leaked: %s", rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if body["message"] != "An unexpected error occurred" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestHealthCheck(t *testing.T) {
	mux := newTestServer(&fakeRunner{})

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("body = %s", rec.Body.String())
	}
}
