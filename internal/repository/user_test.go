package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/neurotracker/neurotracker-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore fails every call, standing in for an unreachable backend.
type failingStore struct{}

var errBackend = errors.New("backend unavailable")

func (failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errBackend }
func (failingStore) Set(context.Context, string, []byte) error         { return errBackend }
func (failingStore) Delete(context.Context, string) error              { return errBackend }

func TestCredentialStoreAddAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewCredentialStore(NewMemoryStore())

	_, found, err := repo.FindUser(ctx, "a@b.co")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.AddUser(ctx, model.User{Email: "a@b.co", Password: "hash", Name: "Ann"}))

	u, found, err := repo.FindUser(ctx, "a@b.co")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Ann", u.Name)

	_, found, err = repo.FindUser(ctx, "A@B.CO")
	require.NoError(t, err)
	assert.False(t, found, "lookup is case sensitive")
}

func TestCredentialStoreAddDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewCredentialStore(NewMemoryStore())

	require.NoError(t, repo.AddUser(ctx, model.User{Email: "a@b.co"}))
	assert.ErrorIs(t, repo.AddUser(ctx, model.User{Email: "a@b.co"}), ErrDuplicateEmail)
}

func TestCredentialStoreUpdatePassword(t *testing.T) {
	ctx := context.Background()
	repo := NewCredentialStore(NewMemoryStore())
	require.NoError(t, repo.AddUser(ctx, model.User{Email: "a@b.co", Password: "old"}))

	ok, err := repo.UpdatePassword(ctx, "a@b.co", "new")
	require.NoError(t, err)
	assert.True(t, ok)

	u, _, _ := repo.FindUser(ctx, "a@b.co")
	assert.Equal(t, "new", u.Password)

	ok, err = repo.UpdatePassword(ctx, "missing@b.co", "new")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialStoreChangeEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewCredentialStore(NewMemoryStore())
	require.NoError(t, repo.AddUser(ctx, model.User{Email: "a@b.co", Name: "Ann"}))
	require.NoError(t, repo.AddUser(ctx, model.User{Email: "taken@b.co"}))

	assert.ErrorIs(t, repo.ChangeEmail(ctx, "a@b.co", "taken@b.co"), ErrDuplicateEmail)
	assert.ErrorIs(t, repo.ChangeEmail(ctx, "nobody@b.co", "x@b.co"), ErrUserNotFound)

	require.NoError(t, repo.ChangeEmail(ctx, "a@b.co", "ann@b.co"))
	_, found, _ := repo.FindUser(ctx, "a@b.co")
	assert.False(t, found)
	u, found, _ := repo.FindUser(ctx, "ann@b.co")
	assert.True(t, found)
	assert.Equal(t, "Ann", u.Name)
}

func TestCredentialStoreCorruptDataReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, usersKey, []byte("{not json")))

	repo := NewCredentialStore(store)
	_, found, err := repo.FindUser(ctx, "a@b.co")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.AddUser(ctx, model.User{Email: "a@b.co"}))
	_, found, _ = repo.FindUser(ctx, "a@b.co")
	assert.True(t, found)
}

func TestCredentialStoreBackendError(t *testing.T) {
	repo := NewCredentialStore(failingStore{})

	_, _, err := repo.FindUser(context.Background(), "a@b.co")
	assert.ErrorIs(t, err, errBackend)
	assert.ErrorIs(t, repo.AddUser(context.Background(), model.User{Email: "a@b.co"}), errBackend)
}
