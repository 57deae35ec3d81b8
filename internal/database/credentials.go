package database

import (
	"database/sql"
	"errors"
	"time"
)

// Credentials is the stored server login
type Credentials struct {
	Username string
	Token    string
	Expiry   time.Time // zero when the server sent none
	SavedAt  time.Time
}

// Expired reports whether the token is past its expiry at now
func (c Credentials) Expired(now time.Time) bool {
	return !c.Expiry.IsZero() && now.After(c.Expiry)
}

// SaveToken stores the token, replacing any previous one
func (s *Store) SaveToken(username, token string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exp sql.NullTime
	if !expiry.IsZero() {
		exp = sql.NullTime{Time: expiry.UTC(), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO credentials (id, username, token, expiry, saved_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			token = excluded.token,
			expiry = excluded.expiry,
			saved_at = excluded.saved_at
	`, username, token, exp, time.Now().UTC())
	return err
}

// Credentials returns the stored login, or nil when logged out
func (s *Store) Credentials() (*Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Credentials
	var exp sql.NullTime
	err := s.db.QueryRow(`
		SELECT username, token, expiry, saved_at FROM credentials WHERE id = 1
	`).Scan(&c.Username, &c.Token, &exp, &c.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if exp.Valid {
		c.Expiry = exp.Time
	}
	return &c, nil
}

// Token returns the stored token, empty when logged out
func (s *Store) Token() (string, error) {
	c, err := s.Credentials()
	if err != nil || c == nil {
		return "", err
	}
	return c.Token, nil
}

// ClearToken removes the stored login
func (s *Store) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM credentials`)
	return err
}
