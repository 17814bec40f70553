package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dagimg/prdesk/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Store is the single authoritative holder of the bearer token and the cached
// user profile. Every component reads through it and only login/logout (or a
// forced invalidation on an authentication failure) mutate it. The state is
// persisted in the local SQLite database so a new process picks up the
// existing session.
type Store struct {
	db *sql.DB

	mu          sync.RWMutex
	token       string
	user        *domain.User
	invalidated bool
	listeners   []func()
}

// NewStore creates a Store backed by the given database and loads any
// persisted session into memory.
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.load(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Token returns the current bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Current returns a copy of the cached user profile, or nil when signed out.
// All "who am I" reads go through here rather than re-parsing ambient state.
func (s *Store) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a session is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Set stores a new session, replacing any existing one. This is the only
// write path besides Clear.
func (s *Store) Set(ctx context.Context, token string, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `INSERT INTO sessions (id, token, user_id, username, email, first_name, last_name, is_hod, saved_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			user_id = excluded.user_id,
			username = excluded.username,
			email = excluded.email,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			is_hod = excluded.is_hod,
			saved_at = excluded.saved_at`
	_, err := s.db.ExecContext(ctx, query,
		token,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		boolToInt(user.IsHOD),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	s.token = token
	u := user
	s.user = &u
	s.invalidated = false
	return nil
}

// Clear removes the session without notifying listeners. Used for a normal,
// user-initiated logout.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

// Invalidate clears the session and fires the invalidation listeners exactly
// once. Called by any component that observes an authentication failure, so
// dependents redirect to login instead of polling for a vanished token.
func (s *Store) Invalidate(ctx context.Context) {
	s.mu.Lock()
	if s.invalidated || s.token == "" {
		s.mu.Unlock()
		return
	}
	s.invalidated = true
	_ = s.clearLocked(ctx)
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// OnInvalidate registers a callback fired when the session is force-cleared.
func (s *Store) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// TokenExpired reports whether the stored token carries a JWT expiry claim in
// the past. The token is otherwise opaque to the client; when it is not a
// parseable JWT the client cannot tell and returns false, letting the server
// answer with 401.
func (s *Store) TokenExpired(now time.Time) bool {
	token := s.Token()
	if token == "" {
		return false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

func (s *Store) clearLocked(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = 1`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	s.token = ""
	s.user = nil
	return nil
}

func (s *Store) load(ctx context.Context) error {
	query := `SELECT token, user_id, username, email, first_name, last_name, is_hod
		FROM sessions WHERE id = 1`
	row := s.db.QueryRowContext(ctx, query)

	var u domain.User
	var token string
	var isHOD int
	err := row.Scan(&token, &u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &isHOD)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	u.IsHOD = isHOD != 0
	s.token = token
	s.user = &u
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
