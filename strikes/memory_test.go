package strikes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEscalatesToBlock(t *testing.T) {
	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(Policy{Limit: 3, Window: 30 * time.Minute, BlockDuration: 2 * time.Hour}).
		WithClock(func() time.Time { return clock })
	ctx := context.Background()

	count, blocked, err := s.Register(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.False(t, blocked)

	_, blocked, _ = s.Register(ctx, "u1")
	assert.False(t, blocked)

	count, blocked, err = s.Register(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.True(t, blocked)

	isBlocked, err := s.IsBlocked(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, isBlocked)

	// block expires after the configured duration
	clock = clock.Add(2*time.Hour + time.Minute)
	isBlocked, _ = s.IsBlocked(ctx, "u1")
	assert.False(t, isBlocked)
}

func TestWindowResetsCount(t *testing.T) {
	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(Policy{Limit: 3, Window: 30 * time.Minute, BlockDuration: 2 * time.Hour}).
		WithClock(func() time.Time { return clock })
	ctx := context.Background()

	s.Register(ctx, "u1")
	s.Register(ctx, "u1")

	// the window lapses, counting starts over
	clock = clock.Add(31 * time.Minute)
	count, blocked, err := s.Register(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.False(t, blocked)
}

func TestUsersAreIndependent(t *testing.T) {
	s := NewMemoryStore(Policy{Limit: 2, Window: time.Hour, BlockDuration: time.Hour})
	ctx := context.Background()

	s.Register(ctx, "u1")
	_, blocked, _ := s.Register(ctx, "u1")
	assert.True(t, blocked)

	isBlocked, _ := s.IsBlocked(ctx, "u2")
	assert.False(t, isBlocked)
	_, blocked, _ = s.Register(ctx, "u2")
	assert.False(t, blocked)
}

func TestBlockSurvivesWindowReset(t *testing.T) {
	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(Policy{Limit: 2, Window: 10 * time.Minute, BlockDuration: 2 * time.Hour}).
		WithClock(func() time.Time { return clock })
	ctx := context.Background()

	s.Register(ctx, "u1")
	s.Register(ctx, "u1")

	// window lapses but the block from the previous window must hold
	clock = clock.Add(20 * time.Minute)
	isBlocked, _ := s.IsBlocked(ctx, "u1")
	assert.True(t, isBlocked)
}
