// Package enrich resolves cluster briefs and actor images through a
// two-tier cache backed by an asynchronous fetch pipeline.
package enrich

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/pitchline/internal/adapters/repository"
	"github.com/okian/pitchline/internal/clients/brief"
	"github.com/okian/pitchline/internal/clients/roster"
	"github.com/okian/pitchline/internal/domain/model"
	"github.com/okian/pitchline/internal/domain/types"
	"github.com/okian/pitchline/internal/enrich/inflight"
	"github.com/okian/pitchline/pkg/logger"
	"github.com/okian/pitchline/pkg/metrics"
)

// Cache tier labels for metrics.
const (
	tierMemory = "memory"
	tierStore  = "store"
)

// SessionKey derives the stable cache scope for a match. Two requests
// for the same match always land in the same session.
func SessionKey(match model.MatchContext) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(match.Identity())).String()
}

// Enqueuer hands fetch jobs to the background pipeline.
type Enqueuer interface {
	Enqueue(ctx context.Context, j model.EnrichJob) bool
}

// Resolver serves briefs and images for one match session. A returned
// brief is never empty: a cache miss produces a local placeholder
// immediately and schedules the remote fetch in the background.
type Resolver struct {
	sessionKey string
	match      model.MatchContext
	store      repository.Store
	tracker    inflight.Tracker
	enqueuer   Enqueuer
	briefs     brief.Client
	rosters    roster.Client
	logger     logger.Logger

	mu          sync.RWMutex
	briefCache  map[string]types.Brief
	imageCache  map[string]string
	rosterCache map[model.Side][]roster.Player
}

// NewResolver creates a resolver scoped to one match session.
func NewResolver(match model.MatchContext, opts ...Option) *Resolver {
	r := &Resolver{
		sessionKey:  SessionKey(match),
		match:       match,
		store:       repository.NewMemoryStore(),
		tracker:     inflight.NewInMemoryTracker(),
		logger:      logger.Get().Named("resolver"),
		briefCache:  make(map[string]types.Brief),
		imageCache:  make(map[string]string),
		rosterCache: make(map[model.Side][]roster.Player),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SessionKey returns the session scope of this resolver.
func (r *Resolver) SessionKey() string {
	return r.sessionKey
}

// Match returns the match context of this resolver.
func (r *Resolver) Match() model.MatchContext {
	return r.match
}

// ResolveBrief returns the brief for a cluster. On a cache miss it
// returns a pending placeholder and schedules the remote fetch; callers
// poll again to observe the resolved text.
func (r *Resolver) ResolveBrief(ctx context.Context, cluster model.Cluster) types.Brief {
	key := cluster.Key()

	r.mu.RLock()
	cached, ok := r.briefCache[key]
	r.mu.RUnlock()
	if ok {
		metrics.RecordBriefCacheHit(tierMemory)
		return cached
	}

	if rec, err := r.store.GetBrief(ctx, r.sessionKey, key); err == nil {
		metrics.RecordBriefCacheHit(tierStore)
		b := types.Brief{Text: rec.Text, Provenance: rec.Provenance}
		// A persisted fallback is a hint, not an answer. It seeds the
		// placeholder, and this session retries the remote fetch.
		b.Pending = rec.Provenance == types.ProvenanceFallback
		r.mu.Lock()
		r.briefCache[key] = b
		r.mu.Unlock()
		if b.Pending {
			r.schedule(ctx, key, cluster)
		}
		return b
	}

	metrics.RecordBriefCacheMiss()
	placeholder := types.Brief{
		Text:       FallbackBrief(cluster, r.match),
		Provenance: types.ProvenanceFallback,
		Pending:    true,
	}
	metrics.RecordBriefPlaceholder()

	r.mu.Lock()
	// Another goroutine may have raced past the read lock above.
	if existing, exists := r.briefCache[key]; exists {
		r.mu.Unlock()
		return existing
	}
	r.briefCache[key] = placeholder
	r.mu.Unlock()

	r.schedule(ctx, key, cluster)
	return placeholder
}

// schedule enqueues the remote fetch unless one is already in flight.
func (r *Resolver) schedule(ctx context.Context, key string, cluster model.Cluster) {
	if r.enqueuer == nil || r.briefs == nil {
		// No pipeline configured, settle on the fallback immediately.
		r.settleFallback(ctx, key)
		return
	}

	if r.tracker.SeenAndRecord(ctx, key) {
		return
	}

	job := model.EnrichJob{
		SessionKey: r.sessionKey,
		Key:        key,
		Cluster:    cluster,
		Match:      r.match,
	}
	if !r.enqueuer.Enqueue(ctx, job) {
		r.tracker.Unrecord(ctx, key)
		r.logger.Warn(ctx, "enrichment queue rejected job", logger.String("key", key))
		r.settleFallback(ctx, key)
	}
}

// ResolveJob performs the remote fetch for one job. Called from the
// worker pool, never from the request path.
func (r *Resolver) ResolveJob(ctx context.Context, job model.EnrichJob) error {
	defer r.tracker.Unrecord(ctx, job.Key)

	req := brief.BatchRequest{
		EventID:   r.match.MatchID,
		EventName: r.match.EventName(),
		Date:      r.match.Date,
		Events:    brief.PayloadForCluster(job.Cluster, r.match),
	}

	items, err := r.briefs.FetchBriefs(ctx, req)
	if err != nil {
		r.settleFallback(ctx, job.Key)
		return err
	}
	if len(items) == 0 {
		r.settleFallback(ctx, job.Key)
		return ErrNoItems
	}

	item := items[0]
	if PoorBrief(item.Brief) {
		metrics.RecordEnrichmentFallback()
		r.logger.Debug(ctx, "remote brief rejected by quality gate", logger.String("key", job.Key))
		r.settleFallback(ctx, job.Key)
		return nil
	}

	r.completeBrief(ctx, job.Key, item.Brief)
	r.cacheJobImages(ctx, job.Cluster, item)
	return nil
}

// completeBrief installs a remote brief in both cache tiers.
func (r *Resolver) completeBrief(ctx context.Context, key, text string) {
	b := types.Brief{Text: text, Provenance: types.ProvenanceRemote}

	r.mu.Lock()
	r.briefCache[key] = b
	r.mu.Unlock()

	if err := r.store.SaveBrief(ctx, repository.BriefRecord{
		SessionKey: r.sessionKey,
		CacheKey:   key,
		Text:       text,
		Provenance: types.ProvenanceRemote,
	}); err != nil {
		r.logger.Error(ctx, "persisting brief failed", logger.String("key", key), logger.Error(err))
	}
}

// settleFallback finalizes the placeholder as the answer. A remote
// brief that arrived in the meantime is left alone.
func (r *Resolver) settleFallback(ctx context.Context, key string) {
	r.mu.Lock()
	b, ok := r.briefCache[key]
	if !ok || b.Provenance == types.ProvenanceRemote {
		r.mu.Unlock()
		return
	}
	b.Pending = false
	r.briefCache[key] = b
	r.mu.Unlock()

	metrics.RecordEnrichmentFallback()
	if err := r.store.SaveBrief(ctx, repository.BriefRecord{
		SessionKey: r.sessionKey,
		CacheKey:   key,
		Text:       b.Text,
		Provenance: types.ProvenanceFallback,
	}); err != nil {
		r.logger.Error(ctx, "persisting fallback brief failed", logger.String("key", key), logger.Error(err))
	}
}
