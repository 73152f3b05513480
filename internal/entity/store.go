package entity

import (
	"go-grid-defense/internal/types"
)

// Store — упорядоченное хранилище сущностей одного вида.
// Порядок обхода совпадает с порядком добавления. Удаление отложенное:
// Remove только помечает запись, Sweep физически чистит список между фазами,
// поэтому удалять можно прямо во время обхода.
type Store[T any] struct {
	ids   []types.EntityID
	items map[types.EntityID]*T
	dead  map[types.EntityID]struct{}
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		items: make(map[types.EntityID]*T),
		dead:  make(map[types.EntityID]struct{}),
	}
}

// Add inserts v under id. Re-adding a live id replaces the value in place.
func (s *Store[T]) Add(id types.EntityID, v *T) {
	if _, ok := s.items[id]; !ok {
		s.ids = append(s.ids, id)
	}
	s.items[id] = v
	delete(s.dead, id)
}

// Get resolves id; removed entries are not found even before Sweep.
func (s *Store[T]) Get(id types.EntityID) (*T, bool) {
	if _, gone := s.dead[id]; gone {
		return nil, false
	}
	v, ok := s.items[id]
	return v, ok
}

// Has reports whether id resolves.
func (s *Store[T]) Has(id types.EntityID) bool {
	_, ok := s.Get(id)
	return ok
}

// Remove marks id for removal.
func (s *Store[T]) Remove(id types.EntityID) {
	if _, ok := s.items[id]; ok {
		s.dead[id] = struct{}{}
	}
}

// Each visits live entries in insertion order until fn returns false.
// Entries added during the walk are not visited.
func (s *Store[T]) Each(fn func(id types.EntityID, v *T) bool) {
	n := len(s.ids)
	for i := 0; i < n; i++ {
		id := s.ids[i]
		if _, gone := s.dead[id]; gone {
			continue
		}
		if !fn(id, s.items[id]) {
			return
		}
	}
}

// IDs returns a copy of the live ids in insertion order.
func (s *Store[T]) IDs() []types.EntityID {
	out := make([]types.EntityID, 0, len(s.ids))
	s.Each(func(id types.EntityID, _ *T) bool {
		out = append(out, id)
		return true
	})
	return out
}

// Len returns the number of live entries.
func (s *Store[T]) Len() int {
	return len(s.items) - len(s.dead)
}

// Sweep drops entries marked by Remove.
func (s *Store[T]) Sweep() {
	if len(s.dead) == 0 {
		return
	}
	kept := s.ids[:0]
	for _, id := range s.ids {
		if _, gone := s.dead[id]; gone {
			delete(s.items, id)
			continue
		}
		kept = append(kept, id)
	}
	s.ids = kept
	clear(s.dead)
}
