package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Nomadcxx/bakus/internal/rename"
)

// RenameStatus is the outcome of a rename submission
type RenameStatus string

const (
	StatusSubmitted RenameStatus = "submitted"
	StatusFailed    RenameStatus = "failed"
	StatusDryRun    RenameStatus = "dry_run"
)

// RenameRecord is one logged rename session
type RenameRecord struct {
	ID           string
	AdditionName string
	Flow         rename.Flow
	Request      rename.RenameRequest
	Status       RenameStatus
	Error        string
	CreatedAt    time.Time
}

// LogRename records a rename session and its files. An empty ID gets a new UUID.
func (s *Store) LogRename(rec RenameRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	var season sql.NullInt64
	if rec.Request.Season != nil {
		season = sql.NullInt64{Int64: int64(*rec.Request.Season), Valid: true}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO rename_sessions (
			id, addition_id, addition_name, flow, new_title, season,
			delete_untouched, status, error, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Request.AdditionID, rec.AdditionName, string(rec.Flow), rec.Request.NewTitle,
		season, rec.Request.DeleteUntouched, string(rec.Status), rec.Error, rec.CreatedAt.UTC())
	if err != nil {
		return "", fmt.Errorf("failed to log rename session: %w", err)
	}

	for _, f := range rec.Request.Files {
		if _, err := tx.Exec(`
			INSERT INTO rename_files (session_id, current_name, new_name) VALUES (?, ?, ?)
		`, rec.ID, f.CurrentName, f.NewName); err != nil {
			return "", fmt.Errorf("failed to log rename file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// RecentRenames returns the most recent rename sessions, newest first
func (s *Store) RecentRenames(limit int) ([]RenameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, addition_id, addition_name, flow, new_title, season,
		       delete_untouched, status, error, created_at
		FROM rename_sessions
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}

	var records []RenameRecord
	for rows.Next() {
		var rec RenameRecord
		var flow, status string
		var season sql.NullInt64
		if err := rows.Scan(&rec.ID, &rec.Request.AdditionID, &rec.AdditionName, &flow,
			&rec.Request.NewTitle, &season, &rec.Request.DeleteUntouched, &status,
			&rec.Error, &rec.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		rec.Flow = rename.Flow(flow)
		rec.Status = RenameStatus(status)
		if season.Valid {
			n := int(season.Int64)
			rec.Request.Season = &n
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// Single connection for in-memory stores: load files after the session cursor is closed.
	for i := range records {
		files, err := s.renameFiles(records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Request.Files = files
	}

	return records, nil
}

func (s *Store) renameFiles(sessionID string) ([]rename.FileRename, error) {
	rows, err := s.db.Query(`
		SELECT current_name, new_name FROM rename_files WHERE session_id = ? ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []rename.FileRename
	for rows.Next() {
		var f rename.FileRename
		if err := rows.Scan(&f.CurrentName, &f.NewName); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
