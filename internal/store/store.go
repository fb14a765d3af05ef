package store

import (
	"github.com/rs/zerolog"
)

// Entity is anything addressable by a server-assigned canonical ID.
type Entity interface {
	Key() string
}

// Store is an insertion-ordered collection keyed by canonical ID. It is the
// client-side view of one entity kind and is only ever mutated after the
// remote API has acknowledged the corresponding operation.
//
// A Store is owned by a single session and mutated from a single goroutine,
// so it carries no locking.
type Store[E Entity] struct {
	log   zerolog.Logger
	order []string
	items map[string]E
}

func New[E Entity](log zerolog.Logger) *Store[E] {
	return &Store[E]{
		log:   log,
		items: make(map[string]E),
	}
}

// ReplaceAll discards the current contents and loads items in order. Used on
// initial load and refresh.
func (s *Store[E]) ReplaceAll(items []E) {
	s.order = s.order[:0]
	clear(s.items)
	for _, item := range items {
		s.Add(item)
	}
}

// Add appends item, or replaces the existing entry in place when an item with
// the same canonical ID is already present. Insertion order is preserved
// either way.
func (s *Store[E]) Add(item E) {
	key := item.Key()
	if key == "" {
		s.log.Warn().Msg("store: dropping entity with empty canonical id")
		return
	}
	if _, ok := s.items[key]; !ok {
		s.order = append(s.order, key)
	}
	s.items[key] = item
}

func (s *Store[E]) AddMany(items []E) {
	for _, item := range items {
		s.Add(item)
	}
}

// Remove drops the entry with the given canonical ID. A miss is a silent
// no-op.
func (s *Store[E]) Remove(key string) {
	if _, ok := s.items[key]; !ok {
		return
	}
	delete(s.items, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Patch applies mutate to the entry with the given canonical ID. A miss logs
// a warning and leaves the Store untouched; it is a local-cache miss, not an
// error, so callers detect it through the returned flag or a follow-up read.
func (s *Store[E]) Patch(key string, mutate func(*E)) bool {
	item, ok := s.items[key]
	if !ok {
		s.log.Warn().Str("key", key).Msg("store: patch target not found")
		return false
	}
	mutate(&item)
	s.items[key] = item
	return true
}

func (s *Store[E]) Get(key string) (E, bool) {
	item, ok := s.items[key]
	return item, ok
}

// All returns the contents in insertion order.
func (s *Store[E]) All() []E {
	out := make([]E, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.items[key])
	}
	return out
}

// Find returns the first entry, in insertion order, satisfying pred.
func (s *Store[E]) Find(pred func(E) bool) (E, bool) {
	for _, key := range s.order {
		if pred(s.items[key]) {
			return s.items[key], true
		}
	}
	var zero E
	return zero, false
}

func (s *Store[E]) Len() int {
	return len(s.items)
}
