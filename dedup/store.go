package dedup

import (
	"context"

	"github.com/goldjoker92/vigiApp-sub000/types"
)

// Tx is the per-key transactional view the upsert runs against. Reads happen
// before writes (the Firestore implementation requires that ordering).
type Tx interface {
	// Incident loads the canonical record, or nil when the key is vacant.
	Incident(id string) (*types.CanonicalIncident, error)
	SetIncident(id string, inc *types.CanonicalIncident) error
	// SetFootprint writes the immutable read-side trace. Called only on
	// incident creation.
	SetFootprint(fp types.Footprint) error
}

// Store linearizes all writes to a grouping key through one atomic
// transaction. Conflicting transactions are retried by the implementation;
// the callback may run more than once and must be side-effect free.
type Store interface {
	RunIncidentTx(ctx context.Context, id string, fn func(tx Tx) error) error
}
