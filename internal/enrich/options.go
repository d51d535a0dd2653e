package enrich

import (
	"github.com/okian/pitchline/internal/adapters/repository"
	"github.com/okian/pitchline/internal/clients/brief"
	"github.com/okian/pitchline/internal/clients/roster"
	"github.com/okian/pitchline/internal/enrich/inflight"
	"github.com/okian/pitchline/pkg/logger"
)

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithStore sets the persisted cache tier.
func WithStore(store repository.Store) Option {
	return func(r *Resolver) {
		if store != nil {
			r.store = store
		}
	}
}

// WithTracker sets the in-flight request tracker.
func WithTracker(tracker inflight.Tracker) Option {
	return func(r *Resolver) {
		if tracker != nil {
			r.tracker = tracker
		}
	}
}

// WithEnqueuer sets the background fetch pipeline.
func WithEnqueuer(enqueuer Enqueuer) Option {
	return func(r *Resolver) {
		if enqueuer != nil {
			r.enqueuer = enqueuer
		}
	}
}

// WithBriefClient sets the remote brief provider client.
func WithBriefClient(client brief.Client) Option {
	return func(r *Resolver) {
		if client != nil {
			r.briefs = client
		}
	}
}

// WithRosterClient sets the roster provider client.
func WithRosterClient(client roster.Client) Option {
	return func(r *Resolver) {
		if client != nil {
			r.rosters = client
		}
	}
}

// WithLogger sets a custom logger for the resolver.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}
