package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ayusman/fingerspell/internal/app"
	"github.com/ayusman/fingerspell/internal/classify"
	"github.com/ayusman/fingerspell/internal/store"
)

// fakeSession is a canned Session implementation for handler tests.
type fakeSession struct {
	text     string
	smoothed classify.Symbol

	cleared    bool
	backspaced bool
	saveResult *store.Transcript
	saveErr    error
	saveCalled bool
}

func (f *fakeSession) Text() string              { return f.text }
func (f *fakeSession) Smoothed() classify.Symbol { return f.smoothed }
func (f *fakeSession) Clear()                    { f.cleared = true }
func (f *fakeSession) Backspace()                { f.backspaced = true }

func (f *fakeSession) SaveTranscript() (*store.Transcript, error) {
	f.saveCalled = true
	return f.saveResult, f.saveErr
}

func TestSessionHandler_Get(t *testing.T) {
	session := &fakeSession{text: "HELLO D", smoothed: "D"}
	handler := NewSessionHandler(session)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp sessionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Symbol != "D" || resp.Text != "HELLO D" {
		t.Errorf("response = %+v", resp)
	}
}

func TestSessionHandler_MethodNotAllowed(t *testing.T) {
	handler := NewSessionHandler(&fakeSession{})

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/session"},
		{http.MethodGet, "/api/session/clear"},
		{http.MethodDelete, "/api/session/save"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, w.Code, http.StatusMethodNotAllowed)
		}
	}
}

func TestSessionHandler_ClearAndBackspace(t *testing.T) {
	session := &fakeSession{}
	handler := NewSessionHandler(session)

	req := httptest.NewRequest(http.MethodPost, "/api/session/clear", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("clear: status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if !session.cleared {
		t.Error("clear was not forwarded to the session")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/session/backspace", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("backspace: status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if !session.backspaced {
		t.Error("backspace was not forwarded to the session")
	}
}

func TestSessionHandler_Save(t *testing.T) {
	session := &fakeSession{
		saveResult: &store.Transcript{
			ID:        "abc",
			Text:      "HI THERE",
			Words:     2,
			StartedAt: time.Now().Add(-time.Minute),
			SavedAt:   time.Now(),
		},
	}
	handler := NewSessionHandler(session)

	req := httptest.NewRequest(http.MethodPost, "/api/session/save", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	var resp transcriptResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "abc" || resp.Words != 2 {
		t.Errorf("response = %+v", resp)
	}
}

func TestSessionHandler_SaveEmpty(t *testing.T) {
	session := &fakeSession{saveErr: app.ErrEmptyTranscript}
	handler := NewSessionHandler(session)

	req := httptest.NewRequest(http.MethodPost, "/api/session/save", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected an error message")
	}
}

func TestSessionHandler_UnknownOp(t *testing.T) {
	handler := NewSessionHandler(&fakeSession{})

	req := httptest.NewRequest(http.MethodPost, "/api/session/frobnicate", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
