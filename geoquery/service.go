// Package geoquery answers "which incident footprints fall inside this circle
// or bbox, created in the last N days". Geohash range scans are only a
// candidate prefilter; inclusion is always decided by exact geometry.
package geoquery

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goldjoker92/vigiApp-sub000/types"
)

type Mode string

const (
	ModeCircle Mode = "circle"
	ModeBbox   Mode = "bbox"
)

const (
	DefaultRadiusM   = 1000.0
	DefaultSinceDays = 90
	MaxSinceDays     = 90
	MaxLimit         = 10000
)

// Reader is the read-only footprint scan the service fans out over.
type Reader interface {
	ScanGeohashRange(ctx context.Context, start, end string, limit int) ([]types.Footprint, error)
}

// Params carries the defensively-parsed query input. Zero values mean unset.
type Params struct {
	Lat     float64
	Lng     float64
	RadiusM float64

	North float64
	South float64
	East  float64
	West  float64

	Since     time.Time
	SinceDays int
	Limit     int
}

// Item is one result row with its render-ready tooltip.
type Item struct {
	types.Footprint
	Tooltip Tooltip `json:"tooltip"`
}

// Response is the query envelope returned to the map layer.
type Response struct {
	OK    bool   `json:"ok"`
	Mode  Mode   `json:"mode"`
	Since string `json:"since"`
	Count int    `json:"count"`
	Items []Item `json:"items"`
}

type Service struct {
	reader Reader
	now    func() time.Time
}

func NewService(reader Reader) *Service {
	return &Service{reader: reader, now: time.Now}
}

// WithClock overrides the time source. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Query runs a circle or bbox retrieval. Malformed geometry is a client
// error; scan failures bubble up for the handler to wrap.
func (s *Service) Query(ctx context.Context, mode Mode, p Params) (*Response, error) {
	cutoff := s.resolveCutoff(p)
	limit := p.Limit
	if limit <= 0 || limit > MaxLimit {
		limit = MaxLimit
	}

	var (
		bounds []Bound
		keep   func(fp types.Footprint) bool
	)
	switch mode {
	case ModeCircle:
		if p.Lat == 0 && p.Lng == 0 {
			return nil, fmt.Errorf("circle mode requires lat and lng")
		}
		radius := p.RadiusM
		if radius <= 0 {
			radius = DefaultRadiusM
		}
		bounds = CoverCircle(p.Lat, p.Lng, radius)
		keep = func(fp types.Footprint) bool {
			return haversineMeters(p.Lat, p.Lng, fp.Lat, fp.Lng) <= radius
		}
	case ModeBbox:
		if p.South > p.North || p.West > p.East {
			return nil, fmt.Errorf("invalid bbox: south<=north and west<=east required")
		}
		centerLat := (p.North + p.South) / 2
		centerLng := (p.East + p.West) / 2
		radius := maxCornerDistanceM(centerLat, centerLng, p)
		bounds = CoverCircle(centerLat, centerLng, radius)
		keep = func(fp types.Footprint) bool {
			return fp.Lat >= p.South && fp.Lat <= p.North &&
				fp.Lng >= p.West && fp.Lng <= p.East
		}
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	candidates, err := s.fetchBounds(ctx, bounds)
	if err != nil {
		return nil, err
	}

	cutoffMs := cutoff.UnixMilli()
	items := make([]Item, 0, len(candidates))
	for _, fp := range candidates {
		if fp.CreatedAt < cutoffMs {
			continue
		}
		if !keep(fp) {
			continue
		}
		items = append(items, Item{Footprint: fp, Tooltip: tooltipFor(fp)})
	}

	// deterministic order for reproducible pagination
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt != items[j].CreatedAt {
			return items[i].CreatedAt > items[j].CreatedAt
		}
		return items[i].ID < items[j].ID
	})
	if len(items) > limit {
		items = items[:limit]
	}

	return &Response{
		OK:    true,
		Mode:  mode,
		Since: cutoff.UTC().Format(time.RFC3339),
		Count: len(items),
		Items: items,
	}, nil
}

// fetchBounds issues one range scan per bound in parallel and deduplicates
// candidates by ID: a footprint near a cell edge can surface in two bounds.
func (s *Service) fetchBounds(ctx context.Context, bounds []Bound) ([]types.Footprint, error) {
	var (
		mu  sync.Mutex
		all []types.Footprint
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, b := range bounds {
		bound := b
		g.Go(func() error {
			fps, err := s.reader.ScanGeohashRange(gctx, bound.Start, bound.End, 0)
			if err != nil {
				return fmt.Errorf("scan [%s,%s]: %w", bound.Start, bound.End, err)
			}
			mu.Lock()
			all = append(all, fps...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(all))
	deduped := all[:0]
	for _, fp := range all {
		if seen[fp.ID] {
			continue
		}
		seen[fp.ID] = true
		deduped = append(deduped, fp)
	}
	return deduped, nil
}

func (s *Service) resolveCutoff(p Params) time.Time {
	if !p.Since.IsZero() {
		return p.Since
	}
	days := p.SinceDays
	if days <= 0 {
		days = DefaultSinceDays
	}
	if days > MaxSinceDays {
		days = MaxSinceDays
	}
	return s.now().AddDate(0, 0, -days)
}

func maxCornerDistanceM(centerLat, centerLng float64, p Params) float64 {
	corners := [4][2]float64{
		{p.North, p.East},
		{p.North, p.West},
		{p.South, p.East},
		{p.South, p.West},
	}
	max := 0.0
	for _, c := range corners {
		if d := haversineMeters(centerLat, centerLng, c[0], c[1]); d > max {
			max = d
		}
	}
	return max
}
