package memstore

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/beanlog/beanlog/pkg/beanlog/internalerr"
	"github.com/beanlog/beanlog/pkg/beanlog/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu      sync.RWMutex
	cafes   map[string]store.Cafe
	order   []string
	entropy *ulid.MonotonicEntropy
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		cafes:   make(map[string]store.Cafe),
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// AddCafe appends a café and returns its assigned id.
func (s *Store) AddCafe(ctx context.Context, c store.Cafe) (string, error) {
	if c.Name == "" {
		return "", fmt.Errorf("%w: café name required", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := ulid.MustNew(ulid.Now(), s.entropy).String()
	c.ID = id
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now()
	}
	s.cafes[id] = copyCafe(c)
	s.order = append(s.order, id)
	return id, nil
}

// GetCafe returns a café by id.
func (s *Store) GetCafe(ctx context.Context, id string) (store.Cafe, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if cafe, ok := s.cafes[id]; ok {
		return copyCafe(cafe), true, nil
	}
	return store.Cafe{}, false, nil
}

// ListCafes returns all cafés in insertion order.
func (s *Store) ListCafes(ctx context.Context) ([]store.Cafe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Cafe, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, copyCafe(s.cafes[id]))
	}
	return out, nil
}

// UpdateCafe applies a partial update; nil fields stay untouched.
func (s *Store) UpdateCafe(ctx context.Context, id string, u store.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cafe, ok := s.cafes[id]
	if !ok {
		return fmt.Errorf("%w: café %s", internalerr.ErrNotFound, id)
	}

	if u.Name != nil {
		cafe.Name = *u.Name
	}
	if u.Address != nil {
		cafe.Address = *u.Address
	}
	if u.Category != nil {
		cafe.Category = *u.Category
	}
	if u.Phone != nil {
		p := *u.Phone
		cafe.Phone = &p
	}
	if u.ExternalLink != nil {
		cafe.ExternalLink = *u.ExternalLink
	}
	if u.ThumbnailURL != nil {
		cafe.ThumbnailURL = *u.ThumbnailURL
	}
	if u.Coordinates != nil {
		coords := *u.Coordinates
		cafe.Coordinates = &coords
	}
	cafe.UpdatedAt = u.UpdatedAt
	if cafe.UpdatedAt.IsZero() {
		cafe.UpdatedAt = time.Now()
	}

	s.cafes[id] = cafe
	return nil
}

func copyCafe(c store.Cafe) store.Cafe {
	out := c
	if c.LocationTags != nil {
		out.LocationTags = append([]string(nil), c.LocationTags...)
	}
	if c.Coordinates != nil {
		coords := *c.Coordinates
		out.Coordinates = &coords
	}
	if c.Phone != nil {
		p := *c.Phone
		out.Phone = &p
	}
	return out
}
