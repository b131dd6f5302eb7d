package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/teamboard/internal/client/api"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// ErrNoSession means no login state is stored locally.
var ErrNoSession = errors.New("no stored session")

// Store reads and writes login state in the session table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

// Save stores the token and the user profile it belongs to.
func (s *Store) Save(ctx context.Context, token string, user *api.User) error {
	if err := s.set(ctx, keyToken, []byte(token)); err != nil {
		return err
	}

	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return s.set(ctx, keyUser, b)
}

// Load returns the stored token and user. ErrNoSession means nothing is
// stored; the caller should prompt for a login.
func (s *Store) Load(ctx context.Context) (string, *api.User, error) {
	token, err := s.get(ctx, keyToken)
	if err != nil {
		return "", nil, err
	}
	if len(token) == 0 {
		return "", nil, ErrNoSession
	}

	b, err := s.get(ctx, keyUser)
	if err != nil {
		return "", nil, err
	}

	user := &api.User{}
	if len(b) > 0 {
		if err := json.Unmarshal(b, user); err != nil {
			return "", nil, fmt.Errorf("failed to decode user: %w", err)
		}
	}

	return string(token), user, nil
}

// Clear removes all stored login state.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
