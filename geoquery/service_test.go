package geoquery

import (
	"context"
	"fmt"
	"testing"
	"time"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldjoker92/vigiApp-sub000/db"
	"github.com/goldjoker92/vigiApp-sub000/types"
)

var queryNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

const (
	centerLat = -3.7305
	centerLng = -38.5218
)

func footprintAt(id string, lat, lng float64, createdAt time.Time) types.Footprint {
	return types.Footprint{
		ID:        id,
		Lat:       lat,
		Lng:       lng,
		RadiusM:   1000,
		Kind:      "Assalto",
		AlertID:   id,
		UserID:    "u1",
		CreatedAt: createdAt.UnixMilli(),
		Geohash:   geohash.EncodeWithPrecision(lat, lng, 9),
	}
}

func newQueryService(fps ...types.Footprint) *Service {
	store := db.NewMemoryStore()
	for _, fp := range fps {
		store.AddFootprint(fp)
	}
	return NewService(store).WithClock(func() time.Time { return queryNow })
}

func TestPrecisionForRadius(t *testing.T) {
	assert.Equal(t, 5, precisionForRadius(1000))
	assert.Equal(t, 6, precisionForRadius(300))
	assert.Equal(t, 4, precisionForRadius(10000))
	assert.Equal(t, 1, precisionForRadius(6000*1000))
}

func TestCoverCircleBounds(t *testing.T) {
	bounds := CoverCircle(centerLat, centerLng, 1000)
	require.NotEmpty(t, bounds)
	assert.LessOrEqual(t, len(bounds), 9)

	center := geohash.EncodeWithPrecision(centerLat, centerLng, 5)
	found := false
	for _, b := range bounds {
		assert.Len(t, b.Start, 5)
		assert.Equal(t, b.Start+"~", b.End)
		if b.Start == center {
			found = true
		}
	}
	assert.True(t, found, "center cell must be covered")
}

func TestQueryCircleExactRadiusFilter(t *testing.T) {
	recent := queryNow.Add(-1 * time.Hour)
	svc := newQueryService(
		footprintAt("at-center", centerLat, centerLng, recent),
		footprintAt("inside-999m", centerLat+0.0089851, centerLng, recent),
		footprintAt("outside-1001m", centerLat+0.0090031, centerLng, recent),
		footprintAt("far-away", centerLat+0.02, centerLng, recent),
	)

	resp, err := svc.Query(context.Background(), ModeCircle, Params{
		Lat: centerLat, Lng: centerLng, RadiusM: 1000,
	})
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, ModeCircle, resp.Mode)
	require.Equal(t, 2, resp.Count)
	ids := []string{resp.Items[0].ID, resp.Items[1].ID}
	assert.ElementsMatch(t, []string{"at-center", "inside-999m"}, ids)
}

func TestQueryCircleDefaultRadius(t *testing.T) {
	recent := queryNow.Add(-1 * time.Hour)
	svc := newQueryService(
		footprintAt("inside", centerLat+0.004, centerLng, recent),
		footprintAt("outside", centerLat+0.02, centerLng, recent),
	)

	resp, err := svc.Query(context.Background(), ModeCircle, Params{Lat: centerLat, Lng: centerLng})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "inside", resp.Items[0].ID)
}

func TestQueryCircleRequiresCenter(t *testing.T) {
	svc := newQueryService()
	_, err := svc.Query(context.Background(), ModeCircle, Params{})
	assert.Error(t, err)
}

func TestQueryBboxEdgesInclusive(t *testing.T) {
	recent := queryNow.Add(-1 * time.Hour)
	p := Params{South: -3.74, North: -3.72, West: -38.53, East: -38.51}
	svc := newQueryService(
		footprintAt("inside", -3.73, -38.52, recent),
		footprintAt("north-edge", -3.72, -38.52, recent),
		footprintAt("west-edge", -3.73, -38.53, recent),
		footprintAt("just-north", -3.7199, -38.52, recent),
		footprintAt("just-east", -3.73, -38.5099, recent),
	)

	resp, err := svc.Query(context.Background(), ModeBbox, p)
	require.NoError(t, err)
	require.Equal(t, 3, resp.Count)
	var ids []string
	for _, it := range resp.Items {
		ids = append(ids, it.ID)
	}
	assert.ElementsMatch(t, []string{"inside", "north-edge", "west-edge"}, ids)
}

func TestQueryBboxInvalid(t *testing.T) {
	svc := newQueryService()
	_, err := svc.Query(context.Background(), ModeBbox, Params{South: 1, North: -1, West: 0, East: 1})
	assert.Error(t, err)
	_, err = svc.Query(context.Background(), ModeBbox, Params{South: -1, North: 1, West: 2, East: 1})
	assert.Error(t, err)
}

func TestQueryUnknownMode(t *testing.T) {
	svc := newQueryService()
	_, err := svc.Query(context.Background(), Mode("square"), Params{})
	assert.Error(t, err)
}

func TestQueryCutoffFilter(t *testing.T) {
	svc := newQueryService(
		footprintAt("fresh", centerLat, centerLng, queryNow.AddDate(0, 0, -50)),
		footprintAt("stale", centerLat+0.0001, centerLng, queryNow.AddDate(0, 0, -91)),
	)

	// sinceDays above the cap still clamps to the retention horizon
	resp, err := svc.Query(context.Background(), ModeCircle, Params{
		Lat: centerLat, Lng: centerLng, SinceDays: 200,
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "fresh", resp.Items[0].ID)

	// explicit since narrows further
	resp, err = svc.Query(context.Background(), ModeCircle, Params{
		Lat: centerLat, Lng: centerLng, Since: queryNow.AddDate(0, 0, -10),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
}

func TestQuerySortAndLimit(t *testing.T) {
	svc := newQueryService(
		footprintAt("oldest", centerLat, centerLng, queryNow.Add(-3*time.Hour)),
		footprintAt("newest", centerLat+0.0001, centerLng, queryNow.Add(-1*time.Hour)),
		footprintAt("middle", centerLat+0.0002, centerLng, queryNow.Add(-2*time.Hour)),
	)

	resp, err := svc.Query(context.Background(), ModeCircle, Params{
		Lat: centerLat, Lng: centerLng, Limit: 2,
	})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "newest", resp.Items[0].ID)
	assert.Equal(t, "middle", resp.Items[1].ID)
}

// dupReader returns the same footprint from every range scan, as a footprint
// near a cell edge would.
type dupReader struct{ fp types.Footprint }

func (r dupReader) ScanGeohashRange(context.Context, string, string, int) ([]types.Footprint, error) {
	return []types.Footprint{r.fp}, nil
}

func TestQueryDeduplicatesAcrossBounds(t *testing.T) {
	fp := footprintAt("edge", centerLat, centerLng, queryNow.Add(-1*time.Hour))
	svc := NewService(dupReader{fp: fp}).WithClock(func() time.Time { return queryNow })

	resp, err := svc.Query(context.Background(), ModeCircle, Params{Lat: centerLat, Lng: centerLng})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
}

func TestQueryScanErrorBubbles(t *testing.T) {
	svc := NewService(errReader{}).WithClock(func() time.Time { return queryNow })
	_, err := svc.Query(context.Background(), ModeCircle, Params{Lat: centerLat, Lng: centerLng})
	assert.Error(t, err)
}

type errReader struct{}

func (errReader) ScanGeohashRange(context.Context, string, string, int) ([]types.Footprint, error) {
	return nil, fmt.Errorf("backend down")
}

func TestTooltip(t *testing.T) {
	fp := footprintAt("a", centerLat, centerLng, queryNow)
	fp.Street = "Rua Major Facundo"
	fp.Number = "123"
	tt := tooltipFor(fp)
	assert.Equal(t, "Assalto", tt.Title)
	assert.Equal(t, "Rua Major Facundo, 123", tt.Subtitle)
	assert.Equal(t, "1,0 km", tt.Meta.RadiusText)
	assert.Equal(t, "a", tt.Meta.AlertID)

	fp.Street, fp.Number = "", ""
	fp.City, fp.UF = "Fortaleza", "CE"
	assert.Equal(t, "Fortaleza/CE", subtitleFor(fp))

	fp.City, fp.UF = "", ""
	assert.Equal(t, "sua região", subtitleFor(fp))

	fp.Kind = ""
	fp.RadiusM = 500
	tt = tooltipFor(fp)
	assert.Equal(t, "Ocorrência", tt.Title)
	assert.Equal(t, "500 m", tt.Meta.RadiusText)
}
