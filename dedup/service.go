// Package dedup groups crowd-sourced incident reports by space and time:
// first report in a cell/hour bucket creates the canonical record, later
// reports in the same bucket only touch counters and aliases.
package dedup

import (
	"context"
	"time"

	geohash "github.com/TomiHiltunen/geohash-golang"

	"github.com/goldjoker92/vigiApp-sub000/guardrail"
	"github.com/goldjoker92/vigiApp-sub000/logging"
	"github.com/goldjoker92/vigiApp-sub000/types"
)

const (
	DefaultTTLDays = 90

	// one grid cell worth of public trace
	footprintRadiusM = 1000

	footprintGeohashPrecision = 9
)

// Config tunes the bucketing. Zero values fall back to the defaults.
type Config struct {
	WindowMinutes int
	GridKm        float64
	TTLDays       int
}

// SimilarityHook is a future split policy: given the canonical record and an
// incoming report it may veto the merge. The current system merges all
// same-bucket reports unconditionally, so the hook defaults to nil and is an
// extension point only.
type SimilarityHook func(canonical *types.CanonicalIncident, incoming types.IncidentReport) bool

// Service is the dedup engine. All writes go through Store's per-key
// transaction; the guardrail gates content before anything is written.
type Service struct {
	store Store
	guard *guardrail.Guard
	cfg   Config
	hook  SimilarityHook
	now   func() time.Time
}

func NewService(store Store, guard *guardrail.Guard, cfg Config) *Service {
	if cfg.WindowMinutes <= 0 {
		cfg.WindowMinutes = DefaultWindowMinutes
	}
	if cfg.GridKm <= 0 {
		cfg.GridKm = DefaultGridKm
	}
	if cfg.TTLDays <= 0 {
		cfg.TTLDays = DefaultTTLDays
	}
	return &Service{store: store, guard: guard, cfg: cfg, now: time.Now}
}

// WithSimilarityHook installs the optional merge-veto hook.
func (s *Service) WithSimilarityHook(h SimilarityHook) *Service {
	s.hook = h
	return s
}

// WithClock overrides the time source. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Upsert screens and admits one report. The returned ID is the grouping key
// of the canonical incident the report landed in.
func (s *Service) Upsert(ctx context.Context, report types.IncidentReport, ttlDays int) (string, error) {
	if report.UserID == "" {
		return "", types.ErrAuthRequired
	}
	if !report.Coords.Valid() {
		return "", types.ErrCoordsRequired
	}
	if s.guard != nil {
		res := s.guard.Check(ctx, report.UserID, report.Payload.Description)
		if !res.OK {
			return "", types.PrivacyBlocked(res.Suggestion)
		}
	}

	if ttlDays <= 0 || ttlDays > s.cfg.TTLDays {
		ttlDays = s.cfg.TTLDays
	}
	now := s.now()
	id := GroupingKey(now, report.Coords.Latitude, report.Coords.Longitude, s.cfg.WindowMinutes, s.cfg.GridKm)

	err := s.store.RunIncidentTx(ctx, id, func(tx Tx) error {
		cur, err := tx.Incident(id)
		if err != nil {
			return err
		}
		if cur == nil {
			inc := newCanonical(id, report, now, ttlDays)
			if err := tx.SetIncident(id, inc); err != nil {
				return err
			}
			return tx.SetFootprint(footprintFor(inc))
		}
		if s.hook != nil && !s.hook(cur, report) {
			// hook vetoed the merge; current policy still merges, the veto
			// is only logged until a split policy exists
			logging.L().Debugw("similarity hook vetoed merge, merging anyway", "incident", id)
		}
		applyContribution(cur, report, now)
		return tx.SetIncident(id, cur)
	})
	if err != nil {
		logging.L().Errorw("incident upsert transaction failed", "incident", id, "err", err)
		return "", types.Unavailable()
	}
	return id, nil
}

func newCanonical(id string, report types.IncidentReport, now time.Time, ttlDays int) *types.CanonicalIncident {
	return &types.CanonicalIncident{
		ID:              id,
		Payload:         report.Payload,
		Location:        report.Coords,
		CreatedAt:       now,
		ExpiresAt:       now.AddDate(0, 0, ttlDays),
		ReportsCount:    1,
		Declarants:      map[string]bool{report.UserID: true},
		LastReportAt:    now,
		CategoryAliases: appendAlias(nil, report.Payload.Category),
	}
}

// applyContribution merges a same-bucket report into the canonical record.
// The first-writer payload is never overwritten; a user already in the
// declarants map only refreshes lastReportAt.
func applyContribution(cur *types.CanonicalIncident, report types.IncidentReport, now time.Time) {
	if cur.Declarants == nil {
		cur.Declarants = make(map[string]bool)
	}
	if !cur.Declarants[report.UserID] {
		cur.Declarants[report.UserID] = true
		cur.ReportsCount++
		cur.CategoryAliases = appendAlias(cur.CategoryAliases, report.Payload.Category)
	}
	cur.LastReportAt = now
}

// appendAlias keeps the alias list distinct and bounded, evicting oldest
// entries first.
func appendAlias(aliases []string, category string) []string {
	if category == "" {
		return aliases
	}
	for _, a := range aliases {
		if a == category {
			return aliases
		}
	}
	aliases = append(aliases, category)
	if len(aliases) > types.MaxCategoryAliases {
		aliases = aliases[len(aliases)-types.MaxCategoryAliases:]
	}
	return aliases
}

// footprintFor derives the write-once public trace of a new incident.
func footprintFor(inc *types.CanonicalIncident) types.Footprint {
	return types.Footprint{
		ID:        inc.ID,
		Lat:       inc.Location.Latitude,
		Lng:       inc.Location.Longitude,
		RadiusM:   footprintRadiusM,
		Kind:      inc.Payload.Category,
		AlertID:   inc.ID,
		UserID:    firstDeclarant(inc.Declarants),
		CreatedAt: inc.CreatedAt.UnixMilli(),
		Geohash:   geohash.EncodeWithPrecision(inc.Location.Latitude, inc.Location.Longitude, footprintGeohashPrecision),
		Street:    inc.Payload.Street,
		Number:    inc.Payload.Number,
		City:      inc.Payload.City,
		UF:        inc.Payload.UF,
	}
}

func firstDeclarant(declarants map[string]bool) string {
	for u := range declarants {
		return u
	}
	return ""
}
