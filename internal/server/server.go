// Package server hosts the assistant's tool surface over HTTP. Tools
// are invoked MCP-style: a POST carries a CallToolRequest naming the
// tool and its arguments, and the reply is a CallToolResult whose text
// content is a JSON document.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/parisaaghdam/fitness-pal-agent/internal/agent"
	"github.com/parisaaghdam/fitness-pal-agent/internal/config"
	"github.com/parisaaghdam/fitness-pal-agent/internal/health"
	"github.com/parisaaghdam/fitness-pal-agent/internal/storage"
)

// Server routes tool calls to the agents and the store.
type Server struct {
	httpServer *http.Server
	store      *storage.Store
	health     *agent.HealthAgent
	nutrition  *agent.NutritionAgent
}

// New assembles the HTTP server around already-constructed
// collaborators. The caller owns the store's lifecycle.
func New(cfg *config.Config, store *storage.Store, healthAgent *agent.HealthAgent, nutritionAgent *agent.NutritionAgent) *Server {
	s := &Server{
		store:     store,
		health:    healthAgent,
		nutrition: nutritionAgent,
	}

	r := mux.NewRouter()
	r.HandleFunc("/mcp", s.handleToolCall).Methods(http.MethodPost)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}).Methods(http.MethodGet)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(r)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: handler,
	}
	return s
}

// Handler exposes the routing stack for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleToolCall(w http.ResponseWriter, r *http.Request) {
	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	handler, ok := s.tools()[request.Name]
	if !ok {
		http.Error(w, fmt.Sprintf("unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}

	result, err := handler(r.Context(), &request)
	if err != nil {
		http.Error(w, err.Error(), toolErrorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// toolErrorStatus maps tool failures onto HTTP status codes: bad
// arguments and engine validation are the caller's fault, missing
// records are 404, everything else is a server error.
func toolErrorStatus(err error) int {
	switch {
	case errors.Is(err, errBadParams), errors.Is(err, health.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, agent.ErrNoAssessment):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Start blocks serving HTTP until the listener fails or Stop is called.
func (s *Server) Start() error {
	log.Printf("listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) jsonResult(data any) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
