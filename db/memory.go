package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goldjoker92/vigiApp-sub000/dedup"
	"github.com/goldjoker92/vigiApp-sub000/types"
)

// MemoryStore is an in-process document store with the same transactional
// contract as FirestoreStore. It backs tests and credential-less local runs.
type MemoryStore struct {
	mu         sync.Mutex
	incidents  map[string]types.CanonicalIncident
	footprints map[string]types.Footprint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		incidents:  make(map[string]types.CanonicalIncident),
		footprints: make(map[string]types.Footprint),
	}
}

// RunIncidentTx serializes all transactions through one lock. Writes are
// staged and applied only when fn succeeds, so a failed transaction leaves no
// partial state.
func (m *MemoryStore) RunIncidentTx(_ context.Context, _ string, fn func(tx dedup.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{store: m}
	if err := fn(tx); err != nil {
		return err
	}
	for id, inc := range tx.stagedIncidents {
		m.incidents[id] = inc
	}
	for id, fp := range tx.stagedFootprints {
		m.footprints[id] = fp
	}
	return nil
}

type memTx struct {
	store            *MemoryStore
	stagedIncidents  map[string]types.CanonicalIncident
	stagedFootprints map[string]types.Footprint
}

func (t *memTx) Incident(id string) (*types.CanonicalIncident, error) {
	inc, ok := t.store.incidents[id]
	if !ok {
		return nil, nil
	}
	// deep-ish copy so callers cannot mutate committed state outside a tx
	cp := inc
	cp.Declarants = make(map[string]bool, len(inc.Declarants))
	for k, v := range inc.Declarants {
		cp.Declarants[k] = v
	}
	cp.CategoryAliases = append([]string(nil), inc.CategoryAliases...)
	return &cp, nil
}

func (t *memTx) SetIncident(id string, inc *types.CanonicalIncident) error {
	if t.stagedIncidents == nil {
		t.stagedIncidents = make(map[string]types.CanonicalIncident)
	}
	t.stagedIncidents[id] = *inc
	return nil
}

func (t *memTx) SetFootprint(fp types.Footprint) error {
	if t.stagedFootprints == nil {
		t.stagedFootprints = make(map[string]types.Footprint)
	}
	t.stagedFootprints[fp.ID] = fp
	return nil
}

// ScanGeohashRange mirrors the Firestore range scan: geohash in [start, end],
// ordered by geohash.
func (m *MemoryStore) ScanGeohashRange(_ context.Context, start, end string, limit int) ([]types.Footprint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []types.Footprint
	for _, fp := range m.footprints {
		if fp.Geohash >= start && fp.Geohash <= end {
			out = append(out, fp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Geohash < out[j].Geohash })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Incident returns a committed record. Tests only.
func (m *MemoryStore) Incident(id string) (types.CanonicalIncident, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inc, ok := m.incidents[id]
	return inc, ok
}

// Footprint returns a committed trace. Tests only.
func (m *MemoryStore) Footprint(id string) (types.Footprint, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fp, ok := m.footprints[id]
	return fp, ok
}

// AddFootprint seeds a trace directly, bypassing the dedup path. Tests only.
func (m *MemoryStore) AddFootprint(fp types.Footprint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.footprints[fp.ID] = fp
}

// HotIncidents mirrors FirestoreStore.HotIncidents.
func (m *MemoryStore) HotIncidents(_ context.Context, since time.Time, minReports int) ([]types.CanonicalIncident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var hot []types.CanonicalIncident
	for _, inc := range m.incidents {
		if !inc.LastReportAt.Before(since) && inc.ReportsCount >= minReports {
			hot = append(hot, inc)
		}
	}
	sort.Slice(hot, func(i, j int) bool { return hot[i].ID < hot[j].ID })
	return hot, nil
}

// SweepExpiredFootprints mirrors FirestoreStore.SweepExpiredFootprints.
func (m *MemoryStore) SweepExpiredFootprints(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for id, inc := range m.incidents {
		if inc.Expired(now) {
			if _, ok := m.footprints[id]; ok {
				delete(m.footprints, id)
				deleted++
			}
		}
	}
	return deleted, nil
}

// SetDigestOnce mirrors FirestoreStore.SetDigestOnce.
func (m *MemoryStore) SetDigestOnce(_ context.Context, id, digest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	inc, ok := m.incidents[id]
	if !ok || inc.Digest != "" {
		return nil
	}
	inc.Digest = digest
	m.incidents[id] = inc
	return nil
}
