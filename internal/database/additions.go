package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Nomadcxx/bakus/internal/bakus"
)

// CachedAddition is an addition as last seen on the server
type CachedAddition struct {
	bakus.Addition
	RefreshedAt time.Time
}

// ReplaceAdditions swaps the cached list for the given one, keeping server order
func (s *Store) ReplaceAdditions(additions []bakus.Addition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM additions`); err != nil {
		return fmt.Errorf("failed to clear additions: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO additions (id, name, state, progress, files_json, position, refreshed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, a := range additions {
		files, err := json.Marshal(a.Files)
		if err != nil {
			return fmt.Errorf("failed to encode files for %s: %w", a.ID, err)
		}
		if _, err := stmt.Exec(a.ID, a.Name, string(a.State), a.Progress, string(files), i, now); err != nil {
			return fmt.Errorf("failed to cache addition %s: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

// ListAdditions returns the cached additions in server order
func (s *Store) ListAdditions() ([]CachedAddition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, state, progress, files_json, refreshed_at
		FROM additions ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CachedAddition
	for rows.Next() {
		var c CachedAddition
		var state, files string
		if err := rows.Scan(&c.ID, &c.Name, &state, &c.Progress, &files, &c.RefreshedAt); err != nil {
			return nil, err
		}
		c.State = bakus.AdditionState(state)
		if err := json.Unmarshal([]byte(files), &c.Files); err != nil {
			return nil, fmt.Errorf("failed to decode files for %s: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetAddition returns one cached addition, or nil when it is not cached
func (s *Store) GetAddition(id string) (*CachedAddition, error) {
	all, err := s.ListAdditions()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, nil
}

// RemoveAddition drops an addition from the cache. Returns false if it was not there.
func (s *Store) RemoveAddition(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM additions WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
