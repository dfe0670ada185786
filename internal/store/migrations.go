package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Transcripts table - archived session transcripts
		`CREATE TABLE IF NOT EXISTS transcripts (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			words INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL,
			saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - engine tuning as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_transcripts_saved_at ON transcripts(saved_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
