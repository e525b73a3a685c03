package repositories

import (
	"testing"

	"chat-relay/domain"
	"chat-relay/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func Test_Directory_Put_And_FindByID(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(newTestDirectory(t))

	alice := domain.User{ID: "user1", Name: "Alice Johnson", Email: "alice@example.com", Status: domain.StatusActive}
	req.NoError(repository.Put(alice))

	fetched, err := repository.FindByID("user1")
	req.NoError(err)
	req.Equal(alice, fetched)

	_, err = repository.FindByID("u404")
	req.ErrorIs(err, errors.ErrUserNotFound)
}

func Test_Directory_Find_All_By_Status(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(newTestDirectory(t))

	req.NoError(repository.Put(domain.User{ID: "user1", Name: "Alice Johnson", Status: domain.StatusActive}))
	req.NoError(repository.Put(domain.User{ID: "user2", Name: "Bob Smith", Status: "DISABLED"}))
	req.NoError(repository.Put(domain.User{ID: "user3", Name: "Carol Davis", Status: domain.StatusActive}))

	active, err := repository.FindAllByStatus(domain.StatusActive)
	req.NoError(err)
	req.Len(active, 2)
	names := []string{active[0].Name, active[1].Name}
	req.ElementsMatch([]string{"Alice Johnson", "Carol Davis"}, names)
}
