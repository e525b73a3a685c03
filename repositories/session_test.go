package repositories

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chat-relay/domain"
	"chat-relay/errors"

	"github.com/stretchr/testify/require"
)

func Test_Session_Upsert_Creates_Then_Updates(t *testing.T) {
	req := require.New(t)
	repository := NewSessionRepository(newTestDB(t), slog.Default())
	ctx := context.Background()

	_, err := repository.FindByUserID(ctx, "user1")
	req.ErrorIs(err, errors.ErrSessionNotFound)

	first := time.Now().UTC().Truncate(time.Second)
	req.NoError(repository.Upsert(ctx, domain.Session{
		UserID: "user1", Online: true, LastActivity: first,
	}))

	session, err := repository.FindByUserID(ctx, "user1")
	req.NoError(err)
	req.True(session.Online)
	req.Positive(session.ID)

	// second login overwrites in place, no new row
	later := first.Add(time.Hour)
	req.NoError(repository.Upsert(ctx, domain.Session{
		UserID: "user1", Online: false, LastActivity: later,
	}))

	updated, err := repository.FindByUserID(ctx, "user1")
	req.NoError(err)
	req.Equal(session.ID, updated.ID)
	req.False(updated.Online)
	req.WithinDuration(later, updated.LastActivity, time.Second)
}

func Test_Session_Find_All_Online(t *testing.T) {
	req := require.New(t)
	repository := NewSessionRepository(newTestDB(t), slog.Default())
	ctx := context.Background()
	now := time.Now().UTC()

	req.NoError(repository.Upsert(ctx, domain.Session{UserID: "user1", Online: true, LastActivity: now}))
	req.NoError(repository.Upsert(ctx, domain.Session{UserID: "user2", Online: false, LastActivity: now}))
	req.NoError(repository.Upsert(ctx, domain.Session{UserID: "user3", Online: true, LastActivity: now}))

	online, err := repository.FindAllOnline(ctx)
	req.NoError(err)
	req.ElementsMatch([]string{"user1", "user3"}, online)
}
