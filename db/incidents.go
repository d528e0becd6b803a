package db

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/goldjoker92/vigiApp-sub000/dedup"
	"github.com/goldjoker92/vigiApp-sub000/types"
)

const (
	incidentsCollection  = "incidents"
	footprintsCollection = "footprints"
)

// FirestoreStore backs the dedup engine and the footprint reader with
// Firestore. Per-key atomicity comes from RunTransaction: concurrent upserts
// on the same grouping key conflict and are retried by the client library.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// RunIncidentTx executes fn inside a Firestore transaction. fn may run more
// than once under contention.
func (s *FirestoreStore) RunIncidentTx(ctx context.Context, id string, fn func(tx dedup.Tx) error) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return fn(&firestoreTx{client: s.client, tx: tx})
	})
}

type firestoreTx struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (t *firestoreTx) Incident(id string) (*types.CanonicalIncident, error) {
	doc, err := t.tx.Get(t.client.Collection(incidentsCollection).Doc(id))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get incident %s: %w", id, err)
	}
	var inc types.CanonicalIncident
	if err := doc.DataTo(&inc); err != nil {
		return nil, fmt.Errorf("decode incident %s: %w", id, err)
	}
	inc.ID = id
	return &inc, nil
}

func (t *firestoreTx) SetIncident(id string, inc *types.CanonicalIncident) error {
	return t.tx.Set(t.client.Collection(incidentsCollection).Doc(id), inc)
}

func (t *firestoreTx) SetFootprint(fp types.Footprint) error {
	return t.tx.Set(t.client.Collection(footprintsCollection).Doc(fp.ID), fp)
}

// HotIncidents returns incidents contributed to since the cutoff with at
// least minReports distinct reporters. Only lastReportAt is filtered
// server-side; the count filter runs client-side.
func (s *FirestoreStore) HotIncidents(ctx context.Context, since time.Time, minReports int) ([]types.CanonicalIncident, error) {
	docs, err := s.client.Collection(incidentsCollection).
		Where("lastReportAt", ">=", since).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}

	var hot []types.CanonicalIncident
	for _, doc := range docs {
		var inc types.CanonicalIncident
		if err := doc.DataTo(&inc); err != nil {
			return nil, err
		}
		inc.ID = doc.Ref.ID
		if inc.ReportsCount >= minReports {
			hot = append(hot, inc)
		}
	}
	return hot, nil
}

// SetDigestOnce stores the ops digest for an incident, write-once: a digest
// already present wins.
func (s *FirestoreStore) SetDigestOnce(ctx context.Context, id, digest string) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := s.client.Collection(incidentsCollection).Doc(id)
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var inc types.CanonicalIncident
		if err := doc.DataTo(&inc); err != nil {
			return err
		}
		if inc.Digest != "" {
			return nil
		}
		return tx.Set(ref, map[string]interface{}{"digest": digest}, firestore.MergeAll)
	})
}
