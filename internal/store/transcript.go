package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Transcript is one archived recognition session.
type Transcript struct {
	ID        string
	Text      string
	Words     int
	StartedAt time.Time
	SavedAt   time.Time
}

// TranscriptRepository provides CRUD operations for transcripts.
type TranscriptRepository struct {
	db *sql.DB
}

// Transcripts returns the transcript repository for this store.
func (s *Store) Transcripts() *TranscriptRepository {
	return &TranscriptRepository{db: s.db}
}

// Create inserts a new transcript. Words is derived from the text when
// left at zero.
func (r *TranscriptRepository) Create(t *Transcript) error {
	if t.Words == 0 {
		t.Words = len(strings.Fields(t.Text))
	}
	t.SavedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO transcripts (id, text, words, started_at, saved_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Text, t.Words, t.StartedAt, t.SavedAt,
	)
	return err
}

// GetByID retrieves a transcript by its ID.
func (r *TranscriptRepository) GetByID(id string) (*Transcript, error) {
	t := &Transcript{}

	err := r.db.QueryRow(
		`SELECT id, text, words, started_at, saved_at
		 FROM transcripts WHERE id = ?`,
		id,
	).Scan(&t.ID, &t.Text, &t.Words, &t.StartedAt, &t.SavedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

// List retrieves all transcripts, newest first.
func (r *TranscriptRepository) List() ([]*Transcript, error) {
	rows, err := r.db.Query(
		`SELECT id, text, words, started_at, saved_at
		 FROM transcripts ORDER BY saved_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transcripts []*Transcript
	for rows.Next() {
		t := &Transcript{}
		if err := rows.Scan(&t.ID, &t.Text, &t.Words, &t.StartedAt, &t.SavedAt); err != nil {
			return nil, err
		}
		transcripts = append(transcripts, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transcripts, nil
}

// Delete removes a transcript by its ID.
func (r *TranscriptRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM transcripts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
