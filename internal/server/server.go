// Package server exposes the wellness API over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"mindwell/internal/app"
	"mindwell/internal/ratelimit"
	"mindwell/internal/util"
	"mindwell/pkg/domain"
	"mindwell/pkg/store"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App      *app.App
	Sessions store.SessionStore
	// Limiter is applied per profile to POST /chat. Nil disables limiting.
	Limiter *ratelimit.FixedWindowLimiter
}

// Server exposes HTTP endpoints for the wellness service.
type Server struct {
	app      *app.App
	sessions store.SessionStore
	limiter  *ratelimit.FixedWindowLimiter
	mux      *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app:      cfg.App,
		sessions: cfg.Sessions,
		limiter:  cfg.Limiter,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithSecurityHeaders(util.WithCORS(util.WithRequestLog(util.WithRequestID(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/session", s.handleSession)
	s.mux.Handle("/chat", s.withProfile(s.handleChat))
	s.mux.Handle("/chat/messages", s.withProfile(s.handleMessages))
	s.mux.Handle("/journal", s.withProfile(s.handleJournal))
	s.mux.Handle("/journal/export", s.withProfile(s.handleJournalExport))
	s.mux.Handle("/checkins", s.withProfile(s.handleCheckins))
	s.mux.Handle("/moods", s.withProfile(s.handleMoods))
	s.mux.Handle("/analytics/summary", s.withProfile(s.handleSummary))
	s.mux.Handle("/digest", s.withProfile(s.handleDigest))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type sessionRequest struct {
	Name       string `json:"name"`
	Passphrase string `json:"passphrase"`
}

type sessionResponse struct {
	Token   string         `json:"token"`
	Profile domain.Profile `json:"profile"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req sessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	profile, err := s.app.OpenProfile(req.Name, req.Passphrase)
	if err != nil {
		writeAppError(w, err)
		return
	}
	token, err := s.sessions.NewSession(profile.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, Profile: profile})
}

type profileHandler func(http.ResponseWriter, *http.Request, string)

func (s *Server) withProfile(next profileHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		profileID, ok, err := s.sessions.GetProfileIDByToken(token)
		if err != nil || !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, profileID)
	})
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request, profileID string) {
	switch r.Method {
	case http.MethodPost:
		if s.limiter != nil && !s.limiter.Allow(profileID) {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		var req chatRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		outcome, err := s.app.ProcessUserTurn(r.Context(), profileID, req.Message)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, outcome)
	case http.MethodDelete:
		if err := s.app.ClearConversation(profileID); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request, profileID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	messages, err := s.app.ListMessages(profileID, queryInt(r, "limit"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

type journalRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request, profileID string) {
	switch r.Method {
	case http.MethodPost:
		var req journalRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		entry, err := s.app.SaveJournalEntry(r.Context(), profileID, req.Text)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, entry)
	case http.MethodGet:
		sentiment := domain.Sentiment("")
		if raw := r.URL.Query().Get("sentiment"); raw != "" {
			sentiment = domain.NormalizeSentiment(raw)
		}
		entries, err := s.app.SearchJournal(profileID, r.URL.Query().Get("q"), sentiment)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleJournalExport(w http.ResponseWriter, r *http.Request, profileID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	url, err := s.app.ExportJournal(r.Context(), profileID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

type checkinRequest struct {
	Label     string `json:"label"`
	Intensity int    `json:"intensity"`
}

func (s *Server) handleCheckins(w http.ResponseWriter, r *http.Request, profileID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req checkinRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Label == "" {
		writeError(w, http.StatusBadRequest, "label is required")
		return
	}
	record, err := s.app.ManualCheckin(r.Context(), profileID, req.Label, req.Intensity)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleMoods(w http.ResponseWriter, r *http.Request, profileID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	records, err := s.app.ListMoodRecords(profileID, queryInt(r, "limit"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"moods": records})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request, profileID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	summary, err := s.app.Summary(r.Context(), profileID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request, profileID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	digest, err := s.app.Digest(r.Context(), profileID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, digest)
}

func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst)
}

func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeAppError maps application errors onto HTTP status codes.
func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrEmptyMessage),
		errors.Is(err, app.ErrEmptyEntry),
		errors.Is(err, app.ErrInvalidProfileName):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrWrongPassphrase):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, app.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrExportUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}
