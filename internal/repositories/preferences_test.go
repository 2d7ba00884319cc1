package repositories

import (
	"context"
	"testing"

	"currency-converter/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRepo(t *testing.T) (*RedisPreferencesRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisPreferencesRepository(client), mr
}

func TestRedisPreferencesRepository_SaveAndGet(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	err := repo.Save(ctx, "client-1", models.Preferences{DarkMode: true, Language: "vi"})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, models.Preferences{DarkMode: true, Language: "vi"}, got)

	dark, err := mr.Get("prefs:client-1:dark_mode")
	require.NoError(t, err)
	assert.Equal(t, "true", dark)
	lang, err := mr.Get("prefs:client-1:language")
	require.NoError(t, err)
	assert.Equal(t, "vi", lang)
}

func TestRedisPreferencesRepository_Missing(t *testing.T) {
	repo, _ := newRedisRepo(t)

	got, err := repo.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, models.Preferences{}, got)
}

func TestRedisPreferencesRepository_Unavailable(t *testing.T) {
	repo, mr := newRedisRepo(t)
	mr.Close()

	_, err := repo.Get(context.Background(), "client-1")
	assert.Error(t, err)
}

func TestMemoryPreferencesRepository(t *testing.T) {
	repo := NewMemoryPreferencesRepository()
	ctx := context.Background()

	got, err := repo.Get(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, models.Preferences{}, got)

	require.NoError(t, repo.Save(ctx, "client-1", models.Preferences{Language: "en"}))
	got, err = repo.Get(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "en", got.Language)
}
