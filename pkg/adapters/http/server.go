package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/dto"
	"github.com/aretw0/pushdown/internal/presentation/graph"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/ports"
	"github.com/aretw0/pushdown/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// maxBodySize bounds POST bodies; inputs themselves are bounded by runner.ValidateInput.
const maxBodySize = 1 << 20

// Server implements the generated ServerInterface over an Executor.
type Server struct {
	Executor ports.Executor
	Store    ports.RunStore
	Streams  *StreamManager
	Logger   *slog.Logger

	metrics http.Handler
}

var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithStore enables GET /runs/{runID}. Without it the route answers 404.
func WithStore(store ports.RunStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithMetricsHandler replaces the default promhttp handler served on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// RunResponse wraps a result; Error is set when the run aborted.
type RunResponse struct {
	*domain.Result
	Error string `json:"error,omitempty"`
}

// NewHandler creates a new HTTP handler for the executor.
func NewHandler(exec ports.Executor, opts ...Option) http.Handler {
	s := &Server{
		Executor: exec,
		Streams:  NewStreamManager(),
		Logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		metrics:  promhttp.Handler(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		doc, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load OpenAPI document", http.StatusInternalServerError)
			s.Logger.Error("Failed to load OpenAPI document", "error", err)
			return
		}
		w.Write(doc)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics)

	return enableCORS(HandlerFromMux(s, r))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Pushdown API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// ListAutomata handles GET /automata.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Executor.Definitions(r.Context())
	if err != nil {
		s.fail(w, "list automata", err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetAutomaton handles GET /automata/{id}.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request, id AutomatonID) {
	def, err := s.Executor.Definition(r.Context(), id)
	if err != nil {
		s.fail(w, "get automaton", err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.FromDomain(def))
}

// GetGraph handles GET /automata/{id}/graph, answering with a Mermaid state diagram.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request, id AutomatonID) {
	def, err := s.Executor.Definition(r.Context(), id)
	if err != nil {
		s.fail(w, "get graph", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(def, nil))
}

// CreateRun handles POST /automata/{id}/runs.
func (s *Server) CreateRun(w http.ResponseWriter, r *http.Request, id AutomatonID) {
	var body CreateRunJSONRequestBody
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("CreateRun: Invalid request body", "error", err)
		return
	}

	if err := runner.ValidateInput(body.Input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.Executor.Run(r.Context(), id, body.Input)
	if result == nil {
		s.fail(w, "run", err)
		return
	}

	if !body.Trace {
		result.Trace = nil
	}

	resp := RunResponse{Result: result}
	status := http.StatusCreated
	if err != nil {
		// The run itself was executed; the automaton aborted it.
		resp.Error = err.Error()
		status = http.StatusUnprocessableEntity
	}

	if payload, err := json.Marshal(resp); err == nil {
		s.Streams.Broadcast(id, string(payload))
	}
	s.writeJSON(w, status, resp)
}

// GetRun handles GET /runs/{runID}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request, runID string) {
	if s.Store == nil {
		http.Error(w, "run storage is disabled", http.StatusNotFound)
		return
	}

	result, err := s.Store.Load(r.Context(), runID)
	if err != nil {
		s.fail(w, "load run", err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, InfoResponse{
		App:     "pushdown-http",
		Version: strings.TrimSpace(pushdown.Version),
	})
}

// SubscribeEvents handles GET /events (SSE). Every finished run is pushed as a
// JSON RunResponse; ?automaton=<id> narrows the stream to one automaton.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, params SubscribeEventsParams) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var topic string
	if params.Automaton != nil {
		topic = *params.Automaton
	}
	ch, cancel := s.Streams.Subscribe(topic)
	defer cancel()

	s.Logger.Info("SSE: Subscribing to runs", "automaton", topic)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE Client Disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: run\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

// fail maps domain errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrDefinitionNotFound), errors.Is(err, domain.ErrRunNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrMalformedDefinition):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Warn(op+" failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}
