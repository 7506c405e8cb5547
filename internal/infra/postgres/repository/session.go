package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/studyquiz/internal/infra/postgres"
)

const sessionQueryTimeout = 3 * time.Second

// SessionStorage keeps HTTP session payloads in PostgreSQL. It satisfies
// fiber.Storage, whose methods carry no context, so every call uses its own
// short deadline. Expired rows read as missing and are removed on access.
type SessionStorage struct {
	db postgres.DBTX
}

// NewSessionStorage creates a new SessionStorage with the provided database pool.
func NewSessionStorage(db postgres.DBTX) *SessionStorage {
	return &SessionStorage{db: db}
}

// Get returns the stored value, or nil when the key is missing or expired.
func (s *SessionStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), sessionQueryTimeout)
	defer cancel()

	query := `SELECT data, expires_at FROM http_sessions WHERE key = $1`

	var (
		data      []byte
		expiresAt *time.Time
	)
	err := s.db.QueryRow(ctx, query, key).Scan(&data, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if expiresAt != nil && !expiresAt.After(time.Now()) {
		if _, err := s.db.Exec(ctx, `DELETE FROM http_sessions WHERE key = $1`, key); err != nil {
			return nil, fmt.Errorf("delete expired session: %w", err)
		}
		return nil, nil
	}

	return data, nil
}

// Set stores val under key. Zero exp means no expiration.
func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), sessionQueryTimeout)
	defer cancel()

	var expiresAt *time.Time
	if exp > 0 {
		t := time.Now().Add(exp)
		expiresAt = &t
	}

	query := `
		INSERT INTO http_sessions (key, data, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			data = EXCLUDED.data,
			expires_at = EXCLUDED.expires_at
	`

	if _, err := s.db.Exec(ctx, query, key, val, expiresAt); err != nil {
		return fmt.Errorf("set session: %w", err)
	}

	return nil
}

// Delete removes key.
func (s *SessionStorage) Delete(key string) error {
	if key == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), sessionQueryTimeout)
	defer cancel()

	if _, err := s.db.Exec(ctx, `DELETE FROM http_sessions WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// Reset removes every session.
func (s *SessionStorage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), sessionQueryTimeout)
	defer cancel()

	if _, err := s.db.Exec(ctx, `DELETE FROM http_sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}

	return nil
}

// Close is a no-op; the pool is owned by the caller.
func (s *SessionStorage) Close() error {
	return nil
}
