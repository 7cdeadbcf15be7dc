package memory

import (
	"context"
	"testing"
	"time"

	"demo-bank/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newClockedStore() (*SessionStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewSessionStore()
	s.now = clock.Now
	return s, clock
}

func TestSessionStore_SaveGetDelete(t *testing.T) {
	s, _ := newClockedStore()
	ctx := context.Background()

	got, err := s.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Save(ctx, &domain.Session{Token: "tok", UserID: 1, Username: "demo_user"}, time.Hour))

	got, err = s.Get(ctx, "tok")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.UserID)

	require.NoError(t, s.Delete(ctx, "tok"))
	require.NoError(t, s.Delete(ctx, "tok"))

	got, err = s.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_Expiry(t *testing.T) {
	s, clock := newClockedStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &domain.Session{Token: "tok", UserID: 1}, time.Minute))

	clock.now = clock.now.Add(59 * time.Second)
	got, err := s.Get(ctx, "tok")
	require.NoError(t, err)
	assert.NotNil(t, got)

	clock.now = clock.now.Add(time.Second)
	got, err = s.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, got, "session must expire once its ttl elapses")
}

func TestSessionStore_Sweep(t *testing.T) {
	s, clock := newClockedStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &domain.Session{Token: "short"}, time.Minute))
	require.NoError(t, s.Save(ctx, &domain.Session{Token: "long"}, time.Hour))

	clock.now = clock.now.Add(2 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Sweep())

	got, err := s.Get(ctx, "long")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestSessionStore_RunSweeperStopsOnCancel(t *testing.T) {
	s := NewSessionStore()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.RunSweeper(ctx, time.Millisecond, zerolog.Nop())
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
