package enrich

import (
	"context"
	"strings"
	"unicode"

	"github.com/okian/pitchline/internal/adapters/repository"
	"github.com/okian/pitchline/internal/clients/brief"
	"github.com/okian/pitchline/internal/clients/roster"
	"github.com/okian/pitchline/internal/domain/model"
	"github.com/okian/pitchline/pkg/logger"
	"github.com/okian/pitchline/pkg/metrics"
)

// ResolveImage returns the best image URL for an event's primary actor.
// Resolution order: provider-supplied URL on the event, cached
// resolution, roster photo by fuzzy name match, then the team logo.
// An empty string means nothing at all was available.
func (r *Resolver) ResolveImage(ctx context.Context, event model.CanonicalEvent) string {
	if event.ImageURL != "" {
		return event.ImageURL
	}

	actor := strings.TrimSpace(event.PrimaryActor)
	if actor == "" {
		return r.match.LogoFor(event.Side)
	}

	key := imageKey(event.Side, actor)

	r.mu.RLock()
	cached, ok := r.imageCache[key]
	r.mu.RUnlock()
	if ok {
		metrics.RecordImageCacheHit()
		return cached
	}

	if rec, err := r.store.GetImage(ctx, r.sessionKey, key); err == nil {
		metrics.RecordImageCacheHit()
		r.mu.Lock()
		r.imageCache[key] = rec.URL
		r.mu.Unlock()
		return rec.URL
	}

	metrics.RecordImageCacheMiss()

	url := r.rosterPhoto(ctx, event.Side, actor)
	if url == "" {
		url = r.match.LogoFor(event.Side)
	}
	if url != "" {
		r.cacheImage(ctx, key, url)
	}
	return url
}

func imageKey(side model.Side, actor string) string {
	return string(side) + "|" + foldActor(actor)
}

// foldActor reduces an actor name to a stable cache key: lowercase,
// punctuation dropped, runs of whitespace collapsed to single spaces.
// "A. Smith", "A  Smith" and "a smith" all map to the same key.
func foldActor(actor string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(actor) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func (r *Resolver) cacheImage(ctx context.Context, key, url string) {
	r.mu.Lock()
	r.imageCache[key] = url
	r.mu.Unlock()

	if err := r.store.SaveImage(ctx, repository.ImageRecord{
		SessionKey: r.sessionKey,
		CacheKey:   key,
		URL:        url,
	}); err != nil {
		r.logger.Error(ctx, "persisting image failed", logger.String("key", key), logger.Error(err))
	}
}

// cacheJobImages stores images returned alongside a remote brief, keyed
// to the cluster's actors so later lookups hit the cache.
func (r *Resolver) cacheJobImages(ctx context.Context, cluster model.Cluster, item brief.Item) {
	if item.PlayerImage != "" {
		for _, event := range cluster.Events {
			if event.PrimaryActor != "" {
				r.cacheImage(ctx, imageKey(event.Side, event.PrimaryActor), item.PlayerImage)
				break
			}
		}
	}
	if item.TeamLogo != "" && len(cluster.Events) > 0 {
		side := cluster.Events[0].Side
		if r.match.LogoFor(side) == "" {
			r.cacheImage(ctx, string(side)+"|team-logo", item.TeamLogo)
		}
	}
}

// rosterPhoto looks the actor up in the team roster, fetching and
// caching the roster on first use.
func (r *Resolver) rosterPhoto(ctx context.Context, side model.Side, actor string) string {
	if r.rosters == nil {
		return ""
	}

	r.mu.RLock()
	players, ok := r.rosterCache[side]
	r.mu.RUnlock()
	if !ok {
		var err error
		players, err = r.rosters.FetchRoster(ctx, r.match.TeamFor(side))
		if err != nil {
			r.logger.Debug(ctx, "roster fetch failed",
				logger.String("team", r.match.TeamFor(side)),
				logger.Error(err),
			)
			players = nil
		}
		r.mu.Lock()
		r.rosterCache[side] = players
		r.mu.Unlock()
	}

	if player, found := MatchPlayer(players, actor); found {
		return player.Photo
	}
	return ""
}

// MatchPlayer finds the roster row for an actor name. Providers report
// names inconsistently, so matching relaxes in stages: exact, substring,
// shared last name, initial plus last name, then shirt number.
func MatchPlayer(players []roster.Player, actor string) (roster.Player, bool) {
	target := strings.ToLower(strings.TrimSpace(actor))
	if target == "" {
		return roster.Player{}, false
	}

	for _, p := range players {
		if strings.ToLower(p.Name) == target {
			return p, true
		}
	}

	for _, p := range players {
		name := strings.ToLower(p.Name)
		if strings.Contains(name, target) || strings.Contains(target, name) {
			return p, true
		}
	}

	targetLast := lastWord(target)
	for _, p := range players {
		if targetLast != "" && lastWord(strings.ToLower(p.Name)) == targetLast {
			return p, true
		}
	}

	// "A. Smith" against "Alex Smith".
	if initial, last, ok := initialAndLast(target); ok {
		for _, p := range players {
			name := strings.ToLower(p.Name)
			if lastWord(name) == last && strings.HasPrefix(name, initial) {
				return p, true
			}
		}
	}

	for _, p := range players {
		if p.Number != "" && p.Number == target {
			return p, true
		}
		if p.ID != "" && p.ID == target {
			return p, true
		}
	}

	return roster.Player{}, false
}

func lastWord(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func initialAndLast(name string) (initial, last string, ok bool) {
	fields := strings.Fields(name)
	if len(fields) != 2 {
		return "", "", false
	}
	first := strings.TrimSuffix(fields[0], ".")
	if len(first) != 1 {
		return "", "", false
	}
	return first, fields[1], true
}
