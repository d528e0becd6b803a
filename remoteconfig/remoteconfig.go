package remoteconfig

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/goldjoker92/vigiApp-sub000/logging"
)

// Rules is the remotely-editable part of the guardrail: extra forbidden
// aliases (slang drifts faster than deploys) and the known-place whitelist
// that gets masked before term matching.
type Rules struct {
	ForbiddenAliases []string `firestore:"forbiddenAliases"`
	KnownPlaces      []string `firestore:"knownPlaces"`
}

// Provider hands out the current rules. Implementations must never surface a
// fetch failure to the caller; they fall back to last-known or default data.
type Provider interface {
	Rules(ctx context.Context) Rules
	Invalidate()
}

// defaultRules is the hardcoded minimal fallback used before the first
// successful fetch.
var defaultRules = Rules{
	ForbiddenAliases: []string{
		"comando vermelho",
		"primeiro comando da capital",
	},
	KnownPlaces: []string{
		"praca do ferreira",
		"beira mar",
	},
}

const rulesDocPath = "config/guardrail"

// FirestoreProvider caches the guardrail rules document in-process with a TTL.
// A cache miss triggers a bounded fetch; any failure keeps serving the
// last-known snapshot (or the hardcoded defaults before first load).
type FirestoreProvider struct {
	client       *firestore.Client
	ttl          time.Duration
	fetchTimeout time.Duration

	mu        sync.Mutex
	cached    Rules
	loaded    bool
	fetchedAt time.Time
}

func NewFirestoreProvider(client *firestore.Client, ttl, fetchTimeout time.Duration) *FirestoreProvider {
	return &FirestoreProvider{
		client:       client,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
		cached:       defaultRules,
	}
}

func (p *FirestoreProvider) Rules(ctx context.Context) Rules {
	p.mu.Lock()
	if p.loaded && time.Since(p.fetchedAt) < p.ttl {
		r := p.cached
		p.mu.Unlock()
		return r
	}
	p.mu.Unlock()

	fetched, err := p.fetch(ctx)
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		logging.L().Warnw("guardrail rules fetch failed, serving cached", "err", err)
		// refresh the timestamp so a flapping backend is not hammered
		p.fetchedAt = time.Now()
		return p.cached
	}
	p.cached = fetched
	p.loaded = true
	p.fetchedAt = time.Now()
	return p.cached
}

// Invalidate forces the next Rules call to refetch.
func (p *FirestoreProvider) Invalidate() {
	p.mu.Lock()
	p.loaded = false
	p.mu.Unlock()
}

func (p *FirestoreProvider) fetch(ctx context.Context) (Rules, error) {
	fctx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	doc, err := p.client.Doc(rulesDocPath).Get(fctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			// no document yet: defaults are the intended rules
			return defaultRules, nil
		}
		return Rules{}, err
	}
	var r Rules
	if err := doc.DataTo(&r); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// Static is a fixed-rules provider for tests and offline tooling.
type Static struct {
	R Rules
}

func (s Static) Rules(context.Context) Rules { return s.R }
func (s Static) Invalidate()                 {}
