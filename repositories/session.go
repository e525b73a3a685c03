//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=../mocks/mock_session_repository.go -package=mocks
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"chat-relay/domain"
	"chat-relay/errors"
)

type ISessionRepository interface {
	FindByUserID(ctx context.Context, userID string) (domain.Session, error)
	Upsert(ctx context.Context, session domain.Session) error
	FindAllOnline(ctx context.Context) ([]string, error)
}

type SessionRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSessionRepository(db *sql.DB, log *slog.Logger) SessionRepository {
	return SessionRepository{db: db, log: log}
}

func (r SessionRepository) FindByUserID(ctx context.Context, userID string) (domain.Session, error) {
	var (
		s      domain.Session
		online int
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, is_online, last_activity FROM user_sessions WHERE user_id = ?`,
		userID).Scan(&s.ID, &s.UserID, &online, &s.LastActivity)
	if err == sql.ErrNoRows {
		return domain.Session{}, errors.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}
	s.Online = online != 0
	s.LastActivity = s.LastActivity.UTC()
	return s, nil
}

// Upsert writes the session keyed by user id. The store serializes writes per
// key; concurrent logins are last-write-wins.
func (r SessionRepository) Upsert(ctx context.Context, session domain.Session) error {
	online := 0
	if session.Online {
		online = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_sessions (user_id, is_online, last_activity)
		 VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET is_online = excluded.is_online, last_activity = excluded.last_activity`,
		session.UserID, online, session.LastActivity.UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert session for %s: %w", session.UserID, err)
	}
	return nil
}

func (r SessionRepository) FindAllOnline(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM user_sessions WHERE is_online = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}
