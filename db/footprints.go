package db

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/goldjoker92/vigiApp-sub000/logging"
	"github.com/goldjoker92/vigiApp-sub000/types"
)

// ScanGeohashRange returns footprints whose geohash falls in [start, end],
// ordered by geohash. This is the coarse prefilter behind circle/bbox
// queries; callers always exact-filter the result.
func (s *FirestoreStore) ScanGeohashRange(ctx context.Context, start, end string, limit int) ([]types.Footprint, error) {
	q := s.client.Collection(footprintsCollection).
		OrderBy("geohash", firestore.Asc).
		StartAt(start).
		EndAt(end)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []types.Footprint
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fp types.Footprint
		if err := doc.DataTo(&fp); err != nil {
			return nil, err
		}
		fp.ID = doc.Ref.ID
		out = append(out, fp)
	}
	return out, nil
}

// SweepExpiredFootprints deletes the read-side traces of incidents past their
// retention horizon. The canonical records themselves are purged by an
// external retention job; this only keeps the map layer honest.
func (s *FirestoreStore) SweepExpiredFootprints(ctx context.Context, now time.Time) (int, error) {
	docs, err := s.client.Collection(incidentsCollection).
		Where("expiresAt", "<=", now).
		Documents(ctx).
		GetAll()
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, doc := range docs {
		if _, err := s.client.Collection(footprintsCollection).Doc(doc.Ref.ID).Delete(ctx); err != nil {
			logging.L().Warnw("footprint sweep delete failed", "incident", doc.Ref.ID, "err", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}
