package session_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shophub/storefront/internal/domain"
	"github.com/shophub/storefront/internal/session"
	"github.com/shophub/storefront/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_Store_SaveAndReload(t *testing.T) {
	mem := storage.NewMemoryStorage()
	ctx := context.Background()

	first := session.NewStore(mem, discardLogger())
	require.NoError(t, first.Load(ctx))
	require.NoError(t, first.Save(ctx, domain.UserInfo{
		Token: "jwt-token",
		Name:  "Asha",
		Email: "asha@example.com",
		Phone: "9999999999",
	}))

	second := session.NewStore(mem, discardLogger())
	require.NoError(t, second.Load(ctx))

	assert.Equal(t, "jwt-token", second.Token())
	user := second.Current()
	require.NotNil(t, user)
	assert.Equal(t, "Asha", user.Name)
}

func Test_Store_LoadWithoutRecordIsLoggedOut(t *testing.T) {
	store := session.NewStore(storage.NewMemoryStorage(), discardLogger())

	assert.NoError(t, store.Load(context.Background()))
	assert.Nil(t, store.Current())
	assert.Equal(t, "", store.Token())
}

func Test_Store_LoadCorruptRecordIsLoggedOut(t *testing.T) {
	mem := storage.NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, mem.Put(ctx, session.StorageKey, []byte("garbage")))

	store := session.NewStore(mem, discardLogger())

	assert.NoError(t, store.Load(ctx), "corrupt session is recovered, not fatal")
	assert.Nil(t, store.Current())
}

func Test_Store_InvalidateClearsEverything(t *testing.T) {
	mem := storage.NewMemoryStorage()
	ctx := context.Background()

	store := session.NewStore(mem, discardLogger())
	require.NoError(t, store.Load(ctx))
	require.NoError(t, store.Save(ctx, domain.UserInfo{Token: "t"}))

	require.NoError(t, store.Invalidate(ctx))

	assert.Equal(t, "", store.Token())
	_, err := mem.Get(ctx, session.StorageKey)
	assert.True(t, storage.IsNotFound(err), "persisted record is removed")
}

func Test_Store_CurrentReturnsCopy(t *testing.T) {
	store := session.NewStore(storage.NewMemoryStorage(), discardLogger())
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.UserInfo{Token: "t", Name: "Asha"}))

	user := store.Current()
	user.Name = "mutated"

	assert.Equal(t, "Asha", store.Current().Name, "callers cannot mutate the stored session")
}
