package dedup_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldjoker92/vigiApp-sub000/db"
	"github.com/goldjoker92/vigiApp-sub000/dedup"
	"github.com/goldjoker92/vigiApp-sub000/guardrail"
	"github.com/goldjoker92/vigiApp-sub000/remoteconfig"
	"github.com/goldjoker92/vigiApp-sub000/strikes"
	"github.com/goldjoker92/vigiApp-sub000/types"
)

var fortaleza = types.GeoPoint{Latitude: -3.7305, Longitude: -38.5218}

func report(user, category string) types.IncidentReport {
	return types.IncidentReport{
		UserID: user,
		Coords: fortaleza,
		Payload: types.ReportPayload{
			Category:    category,
			Description: "ocorrencia em andamento na rua",
		},
	}
}

func newService(store *db.MemoryStore, at time.Time) *dedup.Service {
	svc := dedup.NewService(store, nil, dedup.Config{})
	clock := at
	return svc.WithClock(func() time.Time { return clock })
}

func TestUpsertCreatesCanonicalAndFootprint(t *testing.T) {
	store := db.NewMemoryStore()
	at := time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC)
	svc := dedup.NewService(store, nil, dedup.Config{}).WithClock(func() time.Time { return at })

	id, err := svc.Upsert(context.Background(), report("u1", "Incêndio"), 0)
	require.NoError(t, err)

	inc, ok := store.Incident(id)
	require.True(t, ok)
	assert.Equal(t, 1, inc.ReportsCount)
	assert.True(t, inc.Declarants["u1"])
	assert.Equal(t, []string{"Incêndio"}, inc.CategoryAliases)
	assert.Equal(t, at.AddDate(0, 0, 90), inc.ExpiresAt)

	fp, ok := store.Footprint(id)
	require.True(t, ok)
	assert.Equal(t, id, fp.AlertID)
	assert.Equal(t, "Incêndio", fp.Kind)
	assert.Equal(t, at.UnixMilli(), fp.CreatedAt)
	assert.NotEmpty(t, fp.Geohash)
}

func TestUpsertIdempotentForSameUser(t *testing.T) {
	store := db.NewMemoryStore()
	at := time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC)
	clock := at
	svc := dedup.NewService(store, nil, dedup.Config{}).WithClock(func() time.Time { return clock })

	id1, err := svc.Upsert(context.Background(), report("u1", "Assalto"), 0)
	require.NoError(t, err)

	clock = at.Add(20 * time.Minute)
	id2, err := svc.Upsert(context.Background(), report("u1", "Assalto"), 0)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	inc, _ := store.Incident(id1)
	assert.Equal(t, 1, inc.ReportsCount, "same user must not double-count")
	assert.Equal(t, clock, inc.LastReportAt, "lastReportAt must refresh")
}

func TestUpsertCountsDistinctUsers(t *testing.T) {
	store := db.NewMemoryStore()
	at := time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC)
	svc := newService(store, at)

	var id string
	for i := 0; i < 3; i++ {
		var err error
		id, err = svc.Upsert(context.Background(), report(fmt.Sprintf("u%d", i), "Assalto"), 0)
		require.NoError(t, err)
	}

	inc, _ := store.Incident(id)
	assert.Equal(t, 3, inc.ReportsCount)
	assert.Len(t, inc.Declarants, 3)
}

func TestUpsertHourBoundarySplitsIncidents(t *testing.T) {
	store := db.NewMemoryStore()
	clock := time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC)
	svc := dedup.NewService(store, nil, dedup.Config{}).WithClock(func() time.Time { return clock })

	id1, err := svc.Upsert(context.Background(), report("u1", "Assalto"), 0)
	require.NoError(t, err)

	clock = clock.Add(61 * time.Minute)
	id2, err := svc.Upsert(context.Background(), report("u1", "Assalto"), 0)
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	inc2, _ := store.Incident(id2)
	assert.Equal(t, 1, inc2.ReportsCount)
}

func TestUpsertFirstWriterWins(t *testing.T) {
	store := db.NewMemoryStore()
	at := time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC)
	svc := newService(store, at)

	first := report("u1", "Incêndio")
	first.Payload.Description = "fogo no mercadinho"
	id, err := svc.Upsert(context.Background(), first, 0)
	require.NoError(t, err)

	second := report("u2", "Explosão")
	second.Payload.Description = "outra descricao"
	_, err = svc.Upsert(context.Background(), second, 0)
	require.NoError(t, err)

	inc, _ := store.Incident(id)
	assert.Equal(t, "fogo no mercadinho", inc.Payload.Description)
	assert.Equal(t, "Incêndio", inc.Payload.Category)
	assert.Equal(t, []string{"Incêndio", "Explosão"}, inc.CategoryAliases)

	// footprint is write-once: still the first reporter's trace
	fp, _ := store.Footprint(id)
	assert.Equal(t, "Incêndio", fp.Kind)
	assert.Equal(t, at.UnixMilli(), fp.CreatedAt)
}

func TestUpsertAliasListBounded(t *testing.T) {
	store := db.NewMemoryStore()
	svc := newService(store, time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC))

	var id string
	for i := 0; i < types.MaxCategoryAliases+5; i++ {
		var err error
		id, err = svc.Upsert(context.Background(), report(fmt.Sprintf("u%d", i), fmt.Sprintf("Categoria %02d", i)), 0)
		require.NoError(t, err)
	}

	inc, _ := store.Incident(id)
	require.Len(t, inc.CategoryAliases, types.MaxCategoryAliases)
	// oldest evicted first
	assert.Equal(t, "Categoria 05", inc.CategoryAliases[0])
	assert.Equal(t, fmt.Sprintf("Categoria %02d", types.MaxCategoryAliases+4), inc.CategoryAliases[len(inc.CategoryAliases)-1])
}

func TestUpsertValidation(t *testing.T) {
	store := db.NewMemoryStore()
	svc := newService(store, time.Now())

	noUser := report("", "Assalto")
	_, err := svc.Upsert(context.Background(), noUser, 0)
	assert.Equal(t, types.CodeAuthRequired, types.ErrCode(err))

	noCoords := report("u1", "Assalto")
	noCoords.Coords = types.GeoPoint{}
	_, err = svc.Upsert(context.Background(), noCoords, 0)
	assert.Equal(t, types.CodeCoordsRequired, types.ErrCode(err))

	badLat := report("u1", "Assalto")
	badLat.Coords = types.GeoPoint{Latitude: 120, Longitude: -38}
	_, err = svc.Upsert(context.Background(), badLat, 0)
	assert.Equal(t, types.CodeCoordsRequired, types.ErrCode(err))
}

func TestUpsertPrivacyRejectionWritesNothing(t *testing.T) {
	store := db.NewMemoryStore()
	guard := guardrail.New(remoteconfig.Static{}, strikes.NewMemoryStore(strikes.DefaultPolicy()))
	at := time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC)
	svc := dedup.NewService(store, guard, dedup.Config{}).WithClock(func() time.Time { return at })

	r := report("u1", "Assalto")
	r.Payload.Description = "meu CPF é 123.456.789-09"
	_, err := svc.Upsert(context.Background(), r, 0)
	require.Error(t, err)
	assert.Equal(t, types.CodePrivacyBlocked, types.ErrCode(err))

	ce := err.(*types.CodedError)
	assert.NotContains(t, ce.Suggestion, "123.456.789-09")

	id := dedup.GroupingKey(at, fortaleza.Latitude, fortaleza.Longitude, 60, 1)
	_, ok := store.Incident(id)
	assert.False(t, ok, "rejected report must not create state")
}

func TestEndToEndScenario(t *testing.T) {
	store := db.NewMemoryStore()
	clock := time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC)
	svc := dedup.NewService(store, nil, dedup.Config{}).WithClock(func() time.Time { return clock })

	a := types.IncidentReport{
		UserID:  "U1",
		Coords:  types.GeoPoint{Latitude: -3.7305, Longitude: -38.5218},
		Payload: types.ReportPayload{Category: "Incêndio", Description: "fogo"},
	}
	idA, err := svc.Upsert(context.Background(), a, 0)
	require.NoError(t, err)
	incA, _ := store.Incident(idA)
	assert.Equal(t, 1, incA.ReportsCount)

	clock = time.Date(2025, 3, 10, 10, 40, 0, 0, time.UTC)
	b := types.IncidentReport{
		UserID:  "U2",
		Coords:  types.GeoPoint{Latitude: -3.7308, Longitude: -38.5220},
		Payload: types.ReportPayload{Category: "Incêndio", Description: "fogo"},
	}
	idB, err := svc.Upsert(context.Background(), b, 0)
	require.NoError(t, err)
	assert.Equal(t, idA, idB)
	incB, _ := store.Incident(idB)
	assert.Equal(t, 2, incB.ReportsCount)
	assert.Equal(t, []string{"Incêndio"}, incB.CategoryAliases)

	clock = time.Date(2025, 3, 10, 11, 20, 0, 0, time.UTC)
	idC, err := svc.Upsert(context.Background(), a, 0)
	require.NoError(t, err)
	assert.NotEqual(t, idA, idC)
	incC, _ := store.Incident(idC)
	assert.Equal(t, 1, incC.ReportsCount)
}
