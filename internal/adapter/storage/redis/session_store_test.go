package redis

import (
	"context"
	"testing"
	"time"

	"demo-bank/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(token string) *domain.Session {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Session{
		Token:     token,
		UserID:    1,
		Username:  "demo_user",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewSessionStore(client)
	ctx := context.Background()

	// Get before save => nil
	result, err := store.Get(ctx, "tok-1")
	assert.NoError(t, err)
	assert.Nil(t, result)

	sess := newTestSession("tok-1")
	require.NoError(t, store.Save(ctx, sess, time.Hour))

	result, err = store.Get(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, sess.UserID, result.UserID)
	assert.Equal(t, sess.Username, result.Username)
	assert.True(t, sess.ExpiresAt.Equal(result.ExpiresAt))

	assert.True(t, s.Exists("session:tok-1"))
	assert.Equal(t, time.Hour, s.TTL("session:tok-1"))
}

func TestSessionStore_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newTestSession("tok-2"), time.Second))

	// Fast-forward time in miniredis
	s.FastForward(2 * time.Second)

	result, err := store.Get(ctx, "tok-2")
	assert.NoError(t, err)
	assert.Nil(t, result, "expired session should return nil")
}

func TestSessionStore_Delete(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newTestSession("tok-3"), time.Hour))
	require.NoError(t, store.Delete(ctx, "tok-3"))

	result, err := store.Get(ctx, "tok-3")
	assert.NoError(t, err)
	assert.Nil(t, result)

	// Idempotent
	assert.NoError(t, store.Delete(ctx, "tok-3"))
}

func TestSessionStore_CorruptValue(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewSessionStore(client)

	require.NoError(t, s.Set("session:bad", "not-json"))

	result, err := store.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestSessionStore_ConnectionError(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr(), MaxRetries: -1})
	store := NewSessionStore(client)
	s.Close()

	_, err := store.Get(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis session get")

	err = store.Save(context.Background(), newTestSession("tok"), time.Hour)
	require.Error(t, err)
}
