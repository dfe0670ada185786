package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// newTestStore creates a Store backed by a throwaway database file.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "fingerspell-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestTranscriptRepository_Create(t *testing.T) {
	s := newTestStore(t)
	repo := s.Transcripts()

	transcript := &Transcript{
		ID:        "session-1",
		Text:      "HELLO WORLD AB",
		StartedAt: time.Now().Add(-time.Minute),
	}

	if err := repo.Create(transcript); err != nil {
		t.Fatalf("failed to create transcript: %v", err)
	}

	// Words is derived from the text when left at zero.
	if transcript.Words != 3 {
		t.Errorf("Words = %d, want 3", transcript.Words)
	}
	if transcript.SavedAt.IsZero() {
		t.Error("SavedAt should be set after create")
	}

	retrieved, err := repo.GetByID("session-1")
	if err != nil {
		t.Fatalf("failed to get transcript by ID: %v", err)
	}
	if retrieved.Text != transcript.Text {
		t.Errorf("Text = %q, want %q", retrieved.Text, transcript.Text)
	}
	if retrieved.Words != 3 {
		t.Errorf("Words = %d, want 3", retrieved.Words)
	}
	if retrieved.StartedAt.IsZero() {
		t.Error("StartedAt should round-trip")
	}
}

func TestTranscriptRepository_ExplicitWordCount(t *testing.T) {
	s := newTestStore(t)
	repo := s.Transcripts()

	transcript := &Transcript{
		ID:        "session-2",
		Text:      "ABC",
		Words:     7, // caller-supplied count wins
		StartedAt: time.Now(),
	}
	if err := repo.Create(transcript); err != nil {
		t.Fatalf("failed to create transcript: %v", err)
	}

	retrieved, err := repo.GetByID("session-2")
	if err != nil {
		t.Fatalf("failed to get transcript: %v", err)
	}
	if retrieved.Words != 7 {
		t.Errorf("Words = %d, want 7", retrieved.Words)
	}
}

func TestTranscriptRepository_GetByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Transcripts().GetByID("no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestTranscriptRepository_List(t *testing.T) {
	s := newTestStore(t)
	repo := s.Transcripts()

	base := time.Now()
	for i, text := range []string{"FIRST", "SECOND", "THIRD"} {
		tr := &Transcript{
			ID:        text,
			Text:      text,
			StartedAt: base,
		}
		if err := repo.Create(tr); err != nil {
			t.Fatalf("failed to create transcript %d: %v", i, err)
		}
		// Distinct saved_at values so the ordering is observable.
		tr.SavedAt = base.Add(time.Duration(i) * time.Second)
		if _, err := s.DB().Exec(`UPDATE transcripts SET saved_at = ? WHERE id = ?`, tr.SavedAt, tr.ID); err != nil {
			t.Fatalf("failed to adjust saved_at: %v", err)
		}
	}

	list, err := repo.List()
	if err != nil {
		t.Fatalf("failed to list transcripts: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	if list[0].ID != "THIRD" || list[2].ID != "FIRST" {
		t.Errorf("list order = [%s %s %s], want newest first", list[0].ID, list[1].ID, list[2].ID)
	}
}

func TestTranscriptRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Transcripts()

	transcript := &Transcript{ID: "doomed", Text: "X", StartedAt: time.Now()}
	if err := repo.Create(transcript); err != nil {
		t.Fatalf("failed to create transcript: %v", err)
	}

	if err := repo.Delete("doomed"); err != nil {
		t.Fatalf("failed to delete transcript: %v", err)
	}
	if _, err := repo.GetByID("doomed"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: error = %v, want ErrNotFound", err)
	}

	if err := repo.Delete("doomed"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: error = %v, want ErrNotFound", err)
	}
}
