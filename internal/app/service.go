// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	jobqueue "github.com/okian/pitchline/internal/adapters/mq/queue"
	workerpool "github.com/okian/pitchline/internal/adapters/mq/worker"
	repository "github.com/okian/pitchline/internal/adapters/repository"
	briefclient "github.com/okian/pitchline/internal/clients/brief"
	rosterclient "github.com/okian/pitchline/internal/clients/roster"
	"github.com/okian/pitchline/internal/domain/layout"
	"github.com/okian/pitchline/internal/domain/model"
	"github.com/okian/pitchline/internal/domain/timeline"
	"github.com/okian/pitchline/internal/domain/types"
	"github.com/okian/pitchline/internal/enrich"
	"github.com/okian/pitchline/pkg/logger"
	"github.com/okian/pitchline/pkg/metrics"
)

// Service implements the API dependencies for the timeline system. It
// owns the synthesis and layout engines, the enrichment pipeline, and
// one Resolver per active match session.
type Service struct {
	mu sync.RWMutex

	// Core components
	synthesizer *timeline.Synthesizer
	layouter    *layout.Engine
	store       repository.Store
	jobQueue    jobqueue.Queue
	workerPool  *workerpool.Pool
	briefs      briefclient.Client
	rosters     rosterclient.Client

	// Per-session resolvers keyed by session key.
	sessions map[string]*enrich.Resolver

	// Configuration
	workerCount    int
	queueSize      int
	cacheDBPath    string
	briefEndpoint  string
	briefAPIKey    string
	briefRate      float64
	briefBurst     int
	rosterEndpoint string
	rosterAPIKey   string
	defaultWidth   float64

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  runtime.NumCPU() * 4,
		queueSize:    10000,
		briefRate:    5,
		briefBurst:   10,
		defaultWidth: 960,
		sessions:     make(map[string]*enrich.Resolver),
		stopCh:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting timeline service...")

	s.synthesizer = timeline.New()
	s.layouter = layout.New()

	if s.store == nil {
		if s.cacheDBPath != "" {
			store, err := repository.OpenSQLite(s.cacheDBPath)
			if err != nil {
				return fmt.Errorf("open cache store: %w", err)
			}
			s.store = store
			s.logger.Info(ctx, "using sqlite cache store", logger.String("path", s.cacheDBPath))
		} else {
			s.store = repository.NewMemoryStore()
			s.logger.Info(ctx, "using in-memory cache store")
		}
	}

	if s.briefs == nil && s.briefEndpoint != "" {
		s.briefs = briefclient.New(s.briefEndpoint,
			briefclient.WithAPIKey(s.briefAPIKey),
			briefclient.WithRateLimit(s.briefRate, s.briefBurst),
		)
	}
	if s.rosters == nil && s.rosterEndpoint != "" {
		s.rosters = rosterclient.New(s.rosterEndpoint,
			rosterclient.WithAPIKey(s.rosterAPIKey),
		)
	}

	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "timeline service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	pool := s.workerPool
	store := s.store
	s.workerPool = nil
	s.store = nil
	s.jobQueue = nil
	s.sessions = make(map[string]*enrich.Resolver)
	// Workers take the service lock while resolving, so shut down
	// outside the critical section.
	s.mu.Unlock()

	ctx := context.Background()
	s.logger.Info(ctx, "stopping timeline service...")

	if pool != nil {
		_ = pool.Shutdown(ctx)
	}

	if store != nil {
		_ = store.Close()
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.logger.Info(ctx, "timeline service stopped")
}

// Resolve routes a dequeued job to its session's resolver. Implements
// the worker pool's Fetcher dependency.
func (s *Service) Resolve(ctx context.Context, j workerpool.Job) error {
	s.mu.RLock()
	resolver, ok := s.sessions[j.SessionKey]
	s.mu.RUnlock()

	if !ok {
		// Session created implicitly when a job outlives a restart.
		resolver = s.resolverFor(j.Match)
	}
	return resolver.ResolveJob(ctx, j)
}

// resolverFor returns the session resolver for a match, creating it on
// first use.
func (s *Service) resolverFor(match model.MatchContext) *enrich.Resolver {
	key := enrich.SessionKey(match)

	s.mu.RLock()
	resolver, ok := s.sessions[key]
	s.mu.RUnlock()
	if ok {
		return resolver
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if resolver, ok = s.sessions[key]; ok {
		return resolver
	}

	opts := []enrich.Option{
		enrich.WithStore(s.store),
		enrich.WithEnqueuer(s.jobQueue),
	}
	if s.briefs != nil {
		opts = append(opts, enrich.WithBriefClient(s.briefs))
	}
	if s.rosters != nil {
		opts = append(opts, enrich.WithRosterClient(s.rosters))
	}
	resolver = enrich.NewResolver(match, opts...)
	s.sessions[key] = resolver
	metrics.UpdateActiveSessions(len(s.sessions))
	return resolver
}

// Timeline synthesizes the canonical event list for a match payload.
func (s *Service) Timeline(ctx context.Context, payload model.MatchPayload) ([]model.CanonicalEvent, model.MatchContext) {
	events := s.synthesizer.Build(payload)
	match := timeline.Context(payload)
	return events, match
}

// Layout synthesizes, clusters, and positions a match payload. A width
// of zero or less uses the configured default.
func (s *Service) Layout(ctx context.Context, payload model.MatchPayload, width float64) (types.LayoutResult, model.MatchContext) {
	if width <= 0 {
		width = s.defaultWidth
	}
	events, match := s.Timeline(ctx, payload)
	return s.layouter.Layout(events, width), match
}

// ClusterBrief is one cluster paired with its resolved brief.
type ClusterBrief struct {
	Key     string        `json:"key"`
	Cluster model.Cluster `json:"cluster"`
	Brief   types.Brief   `json:"brief"`
}

// Briefs resolves a brief for every cluster of the payload's timeline.
// Unresolved briefs return as pending placeholders; callers poll again
// to observe remote text.
func (s *Service) Briefs(ctx context.Context, payload model.MatchPayload) []ClusterBrief {
	events, match := s.Timeline(ctx, payload)
	clusters := layout.ClusterEvents(events)
	resolver := s.resolverFor(match)

	briefs := make([]ClusterBrief, 0, len(clusters))
	for _, cluster := range clusters {
		briefs = append(briefs, ClusterBrief{
			Key:     cluster.Key(),
			Cluster: cluster,
			Brief:   resolver.ResolveBrief(ctx, cluster),
		})
	}
	return briefs
}

// EventImage is one event paired with its resolved image URL.
type EventImage struct {
	Minute string `json:"minute"`
	Actor  string `json:"actor,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Images resolves an image for every event of the payload's timeline.
func (s *Service) Images(ctx context.Context, payload model.MatchPayload) []EventImage {
	events, match := s.Timeline(ctx, payload)
	resolver := s.resolverFor(match)

	images := make([]EventImage, 0, len(events))
	for _, event := range events {
		images = append(images, EventImage{
			Minute: event.MinuteText,
			Actor:  event.PrimaryActor,
			URL:    resolver.ResolveImage(ctx, event),
		})
	}
	return images
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"sessions":    len(s.sessions),
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		stats["queueLength"] = queueLen

		if count, err := s.store.BriefCount(ctx); err == nil {
			stats["briefCount"] = count
		}

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.workerCount)
		metrics.UpdateActiveSessions(len(s.sessions))
	}

	return stats
}
