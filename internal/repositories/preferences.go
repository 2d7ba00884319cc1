package repositories

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"currency-converter/internal/models"

	"github.com/redis/go-redis/v9"
)

// PreferencesRepository stores per-client settings. Missing values come back
// as zero values.
type PreferencesRepository interface {
	Get(ctx context.Context, clientID string) (models.Preferences, error)
	Save(ctx context.Context, clientID string, prefs models.Preferences) error
}

func darkModeKey(clientID string) string { return "prefs:" + clientID + ":dark_mode" }
func languageKey(clientID string) string { return "prefs:" + clientID + ":language" }

type RedisPreferencesRepository struct {
	redis *redis.Client
}

func NewRedisPreferencesRepository(redis *redis.Client) *RedisPreferencesRepository {
	return &RedisPreferencesRepository{redis: redis}
}

func (r *RedisPreferencesRepository) Get(ctx context.Context, clientID string) (models.Preferences, error) {
	values, err := r.redis.MGet(ctx, darkModeKey(clientID), languageKey(clientID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return models.Preferences{}, err
	}

	var prefs models.Preferences
	if len(values) == 2 {
		if s, ok := values[0].(string); ok {
			prefs.DarkMode, _ = strconv.ParseBool(s)
		}
		if s, ok := values[1].(string); ok {
			prefs.Language = s
		}
	}
	return prefs, nil
}

func (r *RedisPreferencesRepository) Save(ctx context.Context, clientID string, prefs models.Preferences) error {
	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, darkModeKey(clientID), strconv.FormatBool(prefs.DarkMode), 0)
		pipe.Set(ctx, languageKey(clientID), prefs.Language, 0)
		return nil
	})
	return err
}

// MemoryPreferencesRepository is used when no Redis is configured.
type MemoryPreferencesRepository struct {
	mu    sync.RWMutex
	prefs map[string]models.Preferences
}

func NewMemoryPreferencesRepository() *MemoryPreferencesRepository {
	return &MemoryPreferencesRepository{prefs: map[string]models.Preferences{}}
}

func (r *MemoryPreferencesRepository) Get(_ context.Context, clientID string) (models.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.prefs[clientID], nil
}

func (r *MemoryPreferencesRepository) Save(_ context.Context, clientID string, prefs models.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[clientID] = prefs
	return nil
}
