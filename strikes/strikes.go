// Package strikes tracks per-user abuse strikes and temporary submission
// blocks. Only counts and timestamps are kept, never the offending text.
package strikes

import (
	"context"
	"time"
)

// Policy configures escalation: Limit strikes within Window blocks the user
// for BlockDuration.
type Policy struct {
	Limit         int
	Window        time.Duration
	BlockDuration time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Limit: 3, Window: 30 * time.Minute, BlockDuration: 2 * time.Hour}
}

// Store is the strike/block state. Increments must be atomic per user;
// different users never contend.
type Store interface {
	// Register records one strike and reports the count inside the current
	// window plus whether the user is now blocked.
	Register(ctx context.Context, userID string) (count int, blocked bool, err error)
	// IsBlocked reports whether the user currently has an active block.
	IsBlocked(ctx context.Context, userID string) (bool, error)
}
