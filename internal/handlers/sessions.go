package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/models"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/orchestrator"
)

// ErrSessionNotFound is returned when a request carries no valid session id.
var ErrSessionNotFound = errors.New("session not found")

// SessionHeader carries the session id on every per-session request.
const SessionHeader = "X-Session-ID"

// SessionManager owns one orchestrator per active session. Sessions live in
// process memory only and disappear with the process.
type SessionManager struct {
	cfg    orchestrator.Config
	bureau orchestrator.CreditBureau

	mu       sync.Mutex
	sessions map[string]*orchestrator.Orchestrator
}

// NewSessionManager creates an empty manager; new sessions use the given
// bureau and config.
func NewSessionManager(bureau orchestrator.CreditBureau, cfg orchestrator.Config) *SessionManager {
	return &SessionManager{
		cfg:      cfg,
		bureau:   bureau,
		sessions: make(map[string]*orchestrator.Orchestrator),
	}
}

// Create starts a fresh session and returns its id.
func (m *SessionManager) Create() (string, *orchestrator.Orchestrator) {
	id := uuid.New().String()
	orch := orchestrator.New(m.bureau, m.cfg)

	m.mu.Lock()
	m.sessions[id] = orch
	m.mu.Unlock()
	return id, orch
}

// Get returns the session with the given id.
func (m *SessionManager) Get(id string) (*orchestrator.Orchestrator, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	orch, ok := m.sessions[id]
	return orch, ok
}

// Delete tears a session down; its state is discarded.
func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// session resolves the orchestrator for the request's session header.
func (s *Server) session(r *http.Request) (*orchestrator.Orchestrator, error) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		return nil, ErrSessionNotFound
	}
	orch, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return orch, nil
}

// verifiedSession resolves the session and additionally requires that the
// user has completed OTP verification.
func (s *Server) verifiedSession(r *http.Request) (*orchestrator.Orchestrator, error) {
	orch, err := s.session(r)
	if err != nil {
		return nil, err
	}
	user := orch.User()
	if !user.Verified() {
		return nil, models.ErrSessionNotVerified
	}
	return orch, nil
}

// handleSession creates (POST) or tears down (DELETE) a session.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		id, orch := s.sessions.Create()
		writeJSON(w, http.StatusCreated, Response{
			Success: true,
			Data: map[string]interface{}{
				"session_id": id,
				"view":       orch.View(),
			},
		})
	case http.MethodDelete:
		if id := r.Header.Get(SessionHeader); id != "" {
			s.sessions.Delete(id)
		}
		writeJSON(w, http.StatusOK, Response{Success: true, Message: "session ended"})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Error: "method not allowed"})
	}
}
