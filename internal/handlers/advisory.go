package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/registry"
)

// handleInsights returns AI guidance for the dashboard. The advisory call
// is best-effort: a failure degrades to canned guidance, never an error.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	orch, err := s.verifiedSession(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user := orch.User()
	loans := orch.Loans().ListLoans(registry.FilterAll)
	insights := s.advisory.DashboardInsights(r.Context(), &user, loans)
	writeJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{"insights": insights}})
}

// ChatRequest carries one user message to the assistant.
type ChatRequest struct {
	Message string `json:"message"`
}

// handleChat answers a chat message in the assistant persona.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	orch, err := s.verifiedSession(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req ChatRequest
	if err := decodeBody(r, &req); err != nil || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "message is required"})
		return
	}

	user := orch.User()
	loans := orch.Loans().ListLoans(registry.FilterAll)
	reply := s.advisory.ChatReply(r.Context(), &user, loans, req.Message)
	writeJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{"reply": reply}})
}

// handleAvatar returns the mascot image, generating and caching it on
// first request. Not session-scoped: the avatar is shared process-wide.
func (s *Server) handleAvatar(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	image := s.avatar.Ensure(r.Context())
	writeJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{"avatar": image}})
}

// handleHealth reports liveness for load balancers.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "finscoreai-engine",
			"stage":     getEnvOrDefault("STAGE", "unknown"),
		},
	})
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
