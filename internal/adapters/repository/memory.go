package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/pitchline/internal/domain/types"
)

// memoryStore implements Store with plain maps, for tests and for
// running without a database file.
type memoryStore struct {
	mu     sync.RWMutex
	briefs map[string]BriefRecord
	images map[string]ImageRecord
	closed bool
}

// NewMemoryStore creates an in-memory Store.
func NewMemoryStore() Store {
	return &memoryStore{
		briefs: make(map[string]BriefRecord),
		images: make(map[string]ImageRecord),
	}
}

func recordKey(sessionKey, cacheKey string) string {
	return sessionKey + "\x00" + cacheKey
}

func (s *memoryStore) SaveBrief(ctx context.Context, rec BriefRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	key := recordKey(rec.SessionKey, rec.CacheKey)
	if existing, ok := s.briefs[key]; ok {
		if existing.Provenance == types.ProvenanceRemote && rec.Provenance != types.ProvenanceRemote {
			return nil
		}
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	s.briefs[key] = rec
	return nil
}

func (s *memoryStore) GetBrief(ctx context.Context, sessionKey, cacheKey string) (BriefRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return BriefRecord{}, ErrStoreClosed
	}

	rec, ok := s.briefs[recordKey(sessionKey, cacheKey)]
	if !ok {
		return BriefRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *memoryStore) BriefsForSession(ctx context.Context, sessionKey string) ([]BriefRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	var records []BriefRecord
	for _, rec := range s.briefs {
		if rec.SessionKey == sessionKey {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (s *memoryStore) SaveImage(ctx context.Context, rec ImageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	s.images[recordKey(rec.SessionKey, rec.CacheKey)] = rec
	return nil
}

func (s *memoryStore) GetImage(ctx context.Context, sessionKey, cacheKey string) (ImageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ImageRecord{}, ErrStoreClosed
	}

	rec, ok := s.images[recordKey(sessionKey, cacheKey)]
	if !ok {
		return ImageRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *memoryStore) BriefCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrStoreClosed
	}
	return len(s.briefs), nil
}

func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
