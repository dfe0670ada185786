package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/fingerspell/internal/store"
)

// TranscriptHandler handles HTTP requests for archived transcripts.
type TranscriptHandler struct {
	store *store.Store
}

// NewTranscriptHandler creates a TranscriptHandler with the given store.
func NewTranscriptHandler(s *store.Store) *TranscriptHandler {
	return &TranscriptHandler{store: s}
}

type transcriptResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Words     int    `json:"words"`
	StartedAt string `json:"started_at"`
	SavedAt   string `json:"saved_at"`
}

type listTranscriptsResponse struct {
	Transcripts []transcriptResponse `json:"transcripts"`
}

func toTranscriptResponse(t *store.Transcript) transcriptResponse {
	return transcriptResponse{
		ID:        t.ID,
		Text:      t.Text,
		Words:     t.Words,
		StartedAt: t.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		SavedAt:   t.SavedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ServeHTTP routes transcript requests.
//   GET    /api/transcripts      - list archived transcripts
//   GET    /api/transcripts/{id} - fetch one transcript
//   DELETE /api/transcripts/{id} - remove one transcript
func (h *TranscriptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/transcripts")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TranscriptHandler) list(w http.ResponseWriter, r *http.Request) {
	transcripts, err := h.store.Transcripts().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list transcripts")
		return
	}

	response := listTranscriptsResponse{
		Transcripts: make([]transcriptResponse, 0, len(transcripts)),
	}
	for _, t := range transcripts {
		response.Transcripts = append(response.Transcripts, toTranscriptResponse(t))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *TranscriptHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	t, err := h.store.Transcripts().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Transcript not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get transcript")
		return
	}

	writeJSON(w, http.StatusOK, toTranscriptResponse(t))
}

func (h *TranscriptHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Transcripts().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Transcript not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete transcript")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
