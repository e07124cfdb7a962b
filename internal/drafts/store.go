// Package drafts holds booking drafts between the booking view and the
// confirmation view. Drafts live only in memory and expire after a TTL.
package drafts

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/codr1/resort-booking/internal/models"
)

const (
	DefaultTTL      = 30 * time.Minute
	draftTokenBytes = 32
)

var ErrNotFound = errors.New("booking draft not found")

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type record struct {
	draft     models.BookingDraft
	expiresAt time.Time
}

// Store keeps drafts keyed by an opaque random token.
type Store struct {
	ttl   time.Duration
	clock Clock

	mu      sync.RWMutex
	records map[string]record
}

// NewStore creates a store. A non-positive ttl uses DefaultTTL; a nil
// clock uses system time.
func NewStore(ttl time.Duration, clock Clock) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = realClock{}
	}
	return &Store{
		ttl:     ttl,
		clock:   clock,
		records: make(map[string]record),
	}
}

// TTL returns how long drafts are kept.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Put stores a copy of draft and returns its token.
func (s *Store) Put(draft models.BookingDraft) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.records[token] = record{
		draft:     draft.Clone(),
		expiresAt: s.clock.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return token, nil
}

// Get returns a copy of the draft for token. Expired drafts are removed
// and reported as ErrNotFound.
func (s *Store) Get(token string) (models.BookingDraft, error) {
	if token == "" {
		return models.BookingDraft{}, ErrNotFound
	}

	s.mu.RLock()
	rec, ok := s.records[token]
	s.mu.RUnlock()
	if !ok {
		return models.BookingDraft{}, ErrNotFound
	}

	if !s.clock.Now().Before(rec.expiresAt) {
		s.Delete(token)
		return models.BookingDraft{}, ErrNotFound
	}
	return rec.draft.Clone(), nil
}

// Delete removes a draft.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	delete(s.records, token)
	s.mu.Unlock()
}

// Purge removes every expired draft and returns how many were removed.
func (s *Store) Purge() int {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, rec := range s.records {
		if !now.Before(rec.expiresAt) {
			delete(s.records, token)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored drafts, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func newToken() (string, error) {
	buf := make([]byte, draftTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
