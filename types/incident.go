package types

import "time"

// GeoPoint is a device-reported position. Accuracy/Heading/Speed come straight
// from the phone's location API and may be zero.
type GeoPoint struct {
	Latitude  float64 `firestore:"latitude" json:"latitude"`
	Longitude float64 `firestore:"longitude" json:"longitude"`
	Accuracy  float64 `firestore:"accuracy,omitempty" json:"accuracy,omitempty"`
	Heading   float64 `firestore:"heading,omitempty" json:"heading,omitempty"`
	Speed     float64 `firestore:"speed,omitempty" json:"speed,omitempty"`
}

// Valid reports whether the point is usable as a report position. (0,0) is in
// the Atlantic and never a legitimate user position, so it is treated as unset.
func (g GeoPoint) Valid() bool {
	if g.Latitude == 0 && g.Longitude == 0 {
		return false
	}
	return g.Latitude >= -90 && g.Latitude <= 90 && g.Longitude >= -180 && g.Longitude <= 180
}

// ReportPayload is the first-writer content of a canonical incident. Address
// fields are optional; the footprint subtitle falls back through them.
type ReportPayload struct {
	Category    string `firestore:"category" json:"category"`
	Description string `firestore:"description" json:"description"`
	Severity    string `firestore:"severity,omitempty" json:"severity,omitempty"`
	Street      string `firestore:"street,omitempty" json:"street,omitempty"`
	Number      string `firestore:"number,omitempty" json:"number,omitempty"`
	City        string `firestore:"city,omitempty" json:"city,omitempty"`
	UF          string `firestore:"uf,omitempty" json:"uf,omitempty"`
}

// IncidentReport is one user submission. It is consumed by the dedup upsert
// and never persisted as-is.
type IncidentReport struct {
	UserID     string        `json:"userId"`
	Coords     GeoPoint      `json:"coords"`
	Payload    ReportPayload `json:"payload"`
	ClientTime time.Time     `json:"clientTime,omitempty"`
}

// CanonicalIncident is the persisted record, one per grouping key. The
// grouping key doubles as the Firestore document ID, so concurrent reporters
// in the same cell/hour race for the same document.
type CanonicalIncident struct {
	ID              string          `firestore:"-"` // document ID, not a field
	Payload         ReportPayload   `firestore:"payload"`
	Location        GeoPoint        `firestore:"location"`
	CreatedAt       time.Time       `firestore:"createdAt"`
	ExpiresAt       time.Time       `firestore:"expiresAt"`
	ReportsCount    int             `firestore:"reportsCount"`
	Declarants      map[string]bool `firestore:"declarantsMap"`
	LastReportAt    time.Time       `firestore:"lastReportAt"`
	CategoryAliases []string        `firestore:"categoryAliases,omitempty"`
	Digest          string          `firestore:"digest,omitempty"` // ops digest, write-once
}

// Expired reports whether the record is past its retention horizon. Physical
// purge is an external job; readers must still treat these as gone.
func (c *CanonicalIncident) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// MaxCategoryAliases bounds the per-incident alias list. Oldest entries are
// evicted first.
const MaxCategoryAliases = 20

// Footprint is the immutable public trace of a canonical incident, written
// once at creation and used for map/heatmap rendering. It is never updated on
// later merges, so footprint density reflects distinct incidents, not report
// volume.
type Footprint struct {
	ID        string  `firestore:"-" json:"id"`
	Lat       float64 `firestore:"lat" json:"lat"`
	Lng       float64 `firestore:"lng" json:"lng"`
	RadiusM   float64 `firestore:"radiusM" json:"radius_m"`
	Kind      string  `firestore:"kind" json:"kind"`
	AlertID   string  `firestore:"alertId" json:"alertId"`
	UserID    string  `firestore:"userId" json:"userId"`
	CreatedAt int64   `firestore:"createdAt" json:"createdAt"` // epoch millis
	Geohash   string  `firestore:"geohash" json:"geohash"`
	Street    string  `firestore:"street,omitempty" json:"-"`
	Number    string  `firestore:"number,omitempty" json:"-"`
	City      string  `firestore:"city,omitempty" json:"-"`
	UF        string  `firestore:"uf,omitempty" json:"-"`
}
