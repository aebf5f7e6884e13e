package handler

import (
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"datachat/internal/agent"
	"datachat/internal/httputil"
)

// QueryRequest is the body of a natural-language query call.
type QueryRequest struct {
	Query  string `json:"query"`
	Source string `json:"source,omitempty"`
}

// Validate checks the request body.
func (r QueryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query,
			validation.Required,
			validation.Length(1, 4000),
		),
	)
}

// QueryResponse is the body of a successful query call.
type QueryResponse struct {
	Response string `json:"response"`
}

// QueryHandler answers natural-language queries by dispatching to the
// orchestrator registered for the requested data source.
type QueryHandler struct {
	registry      *agent.Registry
	defaultSource string
	logger        *slog.Logger
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(registry *agent.Registry, defaultSource string, logger *slog.Logger) *QueryHandler {
	return &QueryHandler{
		registry:      registry,
		defaultSource: defaultSource,
		logger:        logger,
	}
}

// Query processes a query against the default (or body-selected) source.
// POST /api/query
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, `Request must include a "query" field`)
		return
	}

	source := req.Source
	if source == "" {
		source = h.defaultSource
	}

	h.answer(w, r, source, req)
}

// QuerySource processes a query against the source named in the path.
// POST /api/{source}/query
func (h *QueryHandler) QuerySource(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, `Request must include a "query" field`)
		return
	}

	h.answer(w, r, r.PathValue("source"), req)
}

func (h *QueryHandler) answer(w http.ResponseWriter, r *http.Request, source string, req QueryRequest) {
	if err := req.Validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	runner := h.registry.Get(source)
	if runner == nil {
		httputil.RespondError(w, http.StatusBadRequest, "unknown data source: "+source)
		return
	}

	answer, err := runner.Run(r.Context(), req.Query)
	if err != nil {
		// Detail stays server-side; the client gets a generic failure.
		h.logger.Error("query failed",
			"source", source,
			"error", err,
		)
		httputil.RespondError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, QueryResponse{Response: answer})
}
