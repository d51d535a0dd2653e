package service

import (
	repository "github.com/okian/pitchline/internal/adapters/repository"
	briefclient "github.com/okian/pitchline/internal/clients/brief"
	rosterclient "github.com/okian/pitchline/internal/clients/roster"
	"github.com/okian/pitchline/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of enrichment workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the enrichment job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithCacheDBPath sets the SQLite file backing the enrichment cache.
// When empty the service keeps the cache in memory only.
func WithCacheDBPath(path string) Option {
	return func(s *Service) {
		s.cacheDBPath = path
	}
}

// WithBriefEndpoint sets the remote brief provider endpoint.
func WithBriefEndpoint(endpoint string) Option {
	return func(s *Service) {
		s.briefEndpoint = endpoint
	}
}

// WithBriefAPIKey sets the API key for the brief provider.
func WithBriefAPIKey(key string) Option {
	return func(s *Service) {
		s.briefAPIKey = key
	}
}

// WithBriefRateLimit sets the request rate and burst allowed against
// the brief provider.
func WithBriefRateLimit(perSecond float64, burst int) Option {
	return func(s *Service) {
		if perSecond > 0 {
			s.briefRate = perSecond
		}
		if burst > 0 {
			s.briefBurst = burst
		}
	}
}

// WithRosterEndpoint sets the roster provider endpoint.
func WithRosterEndpoint(endpoint string) Option {
	return func(s *Service) {
		s.rosterEndpoint = endpoint
	}
}

// WithRosterAPIKey sets the API key for the roster provider.
func WithRosterAPIKey(key string) Option {
	return func(s *Service) {
		s.rosterAPIKey = key
	}
}

// WithDefaultContainerWidth sets the container width used when a
// layout request does not specify one.
func WithDefaultContainerWidth(width float64) Option {
	return func(s *Service) {
		if width > 0 {
			s.defaultWidth = width
		}
	}
}

// WithLogger sets the logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets a pre-built cache store, bypassing the one the
// service would otherwise open on Start.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithBriefClient sets a pre-built brief provider client.
func WithBriefClient(c briefclient.Client) Option {
	return func(s *Service) {
		if c != nil {
			s.briefs = c
		}
	}
}

// WithRosterClient sets a pre-built roster provider client.
func WithRosterClient(c rosterclient.Client) Option {
	return func(s *Service) {
		if c != nil {
			s.rosters = c
		}
	}
}
