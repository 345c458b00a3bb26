package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/devgrade/interview-agent/internal/app/interview"
	"github.com/devgrade/interview-agent/internal/domain"
	"github.com/devgrade/interview-agent/internal/observability"
)

type Server struct {
	svc *interview.Service
}

func NewServer(svc *interview.Service) http.Handler {
	s := &Server{svc: svc}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /sessions → start interview (POST)
	mux.HandleFunc("/sessions", s.handleSessions)

	// /sessions/{id}          →  GET: session snapshot
	// /sessions/{id}/answers  → POST: submit candidate answer
	mux.HandleFunc("/sessions/", s.handleSessionWithID)

	return chainMiddlewares(mux, withLogging, withRequestID, withCORS)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type startSessionRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Level string `json:"level"`
	Stack string `json:"stack"`
}

type startSessionResponse struct {
	SessionID string `json:"session_id"`
	Utterance string `json:"interviewer_utterance"`
}

type submitAnswerRequest struct {
	Text string `json:"text"`
}

type submitAnswerResponse struct {
	Utterance      string   `json:"interviewer_utterance"`
	ReasoningNotes []string `json:"reasoning_notes"`
	Terminated     bool     `json:"is_terminated"`
	FinalReport    string   `json:"final_report,omitempty"`
}

type sessionSnapshotResponse struct {
	SessionID     string              `json:"session_id"`
	Phase         string              `json:"phase"`
	Profile       startSessionRequest `json:"profile"`
	TopicsCovered []string            `json:"topics_covered"`
	TurnsRecorded int                 `json:"turns_recorded"`
	FinalReport   string              `json:"final_report,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ─────────────────────────────────────────────
// Basic routing
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// /sessions
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleStartSession(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /sessions/{id} or /sessions/{id}/answers
func (s *Server) handleSessionWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/sessions/")
	if path == "" {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id := parts[0]
	if id == "" {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handleGetSession(w, r, domain.SessionID(id))
		default:
			methodNotAllowed(w)
		}
		return
	}

	if len(parts) == 2 && parts[1] == "answers" {
		switch r.Method {
		case http.MethodPost:
			s.handleSubmitAnswer(w, r, domain.SessionID(id))
		default:
			methodNotAllowed(w)
		}
		return
	}

	http.NotFound(w, r)
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" || req.Stack == "" {
		writeError(w, http.StatusBadRequest, "name and stack are required")
		return
	}

	out, err := s.svc.StartSession(r.Context(), interview.StartSessionInput{
		Profile: domain.CandidateProfile{
			Name:  req.Name,
			Role:  req.Role,
			Level: req.Level,
			Stack: req.Stack,
		},
	})
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error("start session failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not start session")
		return
	}

	writeJSON(w, http.StatusCreated, startSessionResponse{
		SessionID: string(out.SessionID),
		Utterance: out.Utterance,
	})
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	out, err := s.svc.SubmitAnswer(r.Context(), interview.SubmitAnswerInput{
		SessionID: id,
		Text:      req.Text,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, submitAnswerResponse{
		Utterance:      out.Utterance,
		ReasoningNotes: out.ReasoningNotes,
		Terminated:     out.Terminated,
		FinalReport:    out.FinalReport,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	state, err := s.svc.GetSession(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionSnapshotResponse{
		SessionID: string(state.ID),
		Phase:     string(state.Phase),
		Profile: startSessionRequest{
			Name:  state.Profile.Name,
			Role:  state.Profile.Role,
			Level: state.Profile.Level,
			Stack: state.Profile.Stack,
		},
		TopicsCovered: state.TopicsCovered,
		TurnsRecorded: len(state.TurnLog),
		FinalReport:   state.FinalReport,
	})
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrSessionTerminated):
		writeError(w, http.StatusConflict, "session already terminated")
	default:
		observability.LoggerFromContext(r.Context()).Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
