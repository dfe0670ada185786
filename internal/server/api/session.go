// Package api provides the HTTP API handlers for the fingerspelling
// recognizer.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/fingerspell/internal/app"
	"github.com/ayusman/fingerspell/internal/classify"
	"github.com/ayusman/fingerspell/internal/store"
)

// Session is the live recognition session the handlers operate on.
// *app.App satisfies it.
type Session interface {
	Text() string
	Smoothed() classify.Symbol
	Clear()
	Backspace()
	SaveTranscript() (*store.Transcript, error)
}

// SessionHandler exposes the live transcript and the UI text operations:
// clear, backspace, and save-to-archive.
type SessionHandler struct {
	session Session
}

// NewSessionHandler creates a SessionHandler for the given session.
func NewSessionHandler(s Session) *SessionHandler {
	return &SessionHandler{session: s}
}

type sessionResponse struct {
	Symbol string `json:"symbol"`
	Text   string `json:"text"`
}

// ServeHTTP routes session requests.
//   GET  /api/session           - current smoothed symbol and text
//   POST /api/session/clear     - empty the transcript
//   POST /api/session/backspace - strip the last character
//   POST /api/session/save      - archive the transcript and clear it
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	op := strings.TrimPrefix(r.URL.Path, "/api/session")
	op = strings.TrimPrefix(op, "/")

	if op == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{
			Symbol: string(h.session.Smoothed()),
			Text:   h.session.Text(),
		})
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch op {
	case "clear":
		h.session.Clear()
		w.WriteHeader(http.StatusNoContent)
	case "backspace":
		h.session.Backspace()
		w.WriteHeader(http.StatusNoContent)
	case "save":
		h.save(w)
	default:
		writeError(w, http.StatusNotFound, "Unknown session operation")
	}
}

func (h *SessionHandler) save(w http.ResponseWriter) {
	t, err := h.session.SaveTranscript()
	if err != nil {
		if errors.Is(err, app.ErrEmptyTranscript) {
			writeError(w, http.StatusBadRequest, "Transcript is empty")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save transcript")
		return
	}
	writeJSON(w, http.StatusCreated, toTranscriptResponse(t))
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
