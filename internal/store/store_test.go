package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"driftline/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(name string) *models.User {
	return &models.User{
		ID:        uuid.NewString(),
		Username:  name,
		Email:     name + "@example.com",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestTableFindByID(t *testing.T) {
	st := New()
	u := newUser("alice")
	st.Users.Insert(u)

	found, ok := st.Users.FindByID(u.ID)
	require.True(t, ok)
	assert.Equal(t, "alice", found.Username)

	_, ok = st.Users.FindByID("missing")
	assert.False(t, ok)
}

func TestTableScanKeepsInsertionOrder(t *testing.T) {
	st := New()
	for _, name := range []string{"first", "second", "third"} {
		st.Users.Insert(newUser(name))
	}

	all := st.Users.All()
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Username)
	assert.Equal(t, "second", all[1].Username)
	assert.Equal(t, "third", all[2].Username)
}

func TestTableScanFilters(t *testing.T) {
	st := New()
	alice := newUser("alice")
	st.Users.Insert(alice)
	st.Users.Insert(newUser("bob"))

	matched := st.Users.Scan(func(u *models.User) bool { return u.Username == "alice" })
	require.Len(t, matched, 1)
	assert.Equal(t, alice.ID, matched[0].ID)

	assert.Equal(t, 2, st.Users.Count(nil))
	assert.Equal(t, 1, st.Users.Count(func(u *models.User) bool { return u.Username == "bob" }))
}

func TestTableRemove(t *testing.T) {
	st := New()
	u := newUser("alice")
	st.Users.Insert(u)
	st.Users.Insert(newUser("bob"))

	assert.True(t, st.Users.Remove(u.ID))
	assert.Equal(t, 1, st.Users.Len())
	_, ok := st.Users.FindByID(u.ID)
	assert.False(t, ok)

	// removing twice is a no-op
	assert.False(t, st.Users.Remove(u.ID))
	assert.Equal(t, 1, st.Users.Len())
}

func TestSaveAndOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	st, err := Open(path)
	require.NoError(t, err)

	alice := newUser("alice")
	st.Users.Insert(alice)
	st.Posts.Insert(&models.Post{
		ID:       uuid.NewString(),
		AuthorID: alice.ID,
		Content:  "hello",
	})
	st.Friendships.Insert(&models.Friendship{
		ID:          uuid.NewString(),
		RequesterID: alice.ID,
		AddresseeID: uuid.NewString(),
		Status:      models.FriendshipStatusPending,
	})
	require.NoError(t, st.Save())

	reopened, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, 1, reopened.Users.Len())
	assert.Equal(t, 1, reopened.Posts.Len())
	assert.Equal(t, 1, reopened.Friendships.Len())

	u, ok := reopened.Users.FindByID(alice.ID)
	require.True(t, ok)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, alice.CreatedAt, u.CreatedAt)
}

func TestSavePreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	st, err := Open(path)
	require.NoError(t, err)
	for _, name := range []string{"first", "second", "third"} {
		st.Users.Insert(newUser(name))
	}
	require.NoError(t, st.Save())

	reopened, err := Open(path)
	require.NoError(t, err)

	all := reopened.Users.All()
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Username)
	assert.Equal(t, "third", all[2].Username)
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, st.Users.Len())
}

func TestOpenCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "store.json")

	st, err := Open(path)
	require.NoError(t, err)
	st.Users.Insert(newUser("alice"))
	require.NoError(t, st.Save())

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestInMemoryStoreSaveIsNoOp(t *testing.T) {
	st := New()
	st.Users.Insert(newUser("alice"))
	assert.NoError(t, st.Save())
}
