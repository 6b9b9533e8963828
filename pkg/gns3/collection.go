package gns3

// Entity is a server-managed resource identified by a server-assigned ID.
type Entity interface {
	ID() string
}

// Named is an Entity with a human-readable key.
type Named interface {
	Entity
	DisplayName() string
}

// Set is a collection of entities unique by ID. It remembers the order in
// which entities were added, which is the server's listing order after a
// refresh; name resolution relies on that order for its first-match rule.
//
// A Set is not safe for concurrent use.
type Set[T Entity] struct {
	items []T
	index map[string]int
}

// NewSet returns a Set holding items. When two items share an ID the first
// one is kept.
func NewSet[T Entity](items ...T) *Set[T] {
	s := &Set[T]{
		items: make([]T, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, item := range items {
		if _, ok := s.index[item.ID()]; ok {
			continue
		}
		s.index[item.ID()] = len(s.items)
		s.items = append(s.items, item)
	}
	return s
}

// Add inserts item, replacing any member with the same ID in place.
func (s *Set[T]) Add(item T) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[item.ID()]; ok {
		s.items[i] = item
		return
	}
	s.index[item.ID()] = len(s.items)
	s.items = append(s.items, item)
}

// Remove deletes the member with the given ID and reports whether it was
// present.
func (s *Set[T]) Remove(id string) bool {
	if s == nil {
		return false
	}
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ID()] = j
	}
	return true
}

// Get returns the member with the given ID.
func (s *Set[T]) Get(id string) (T, bool) {
	if s == nil {
		var zero T
		return zero, false
	}
	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// Contains reports whether a member has the given ID.
func (s *Set[T]) Contains(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns the members in insertion order. The slice is a copy.
func (s *Set[T]) Items() []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// IDs returns the member IDs in insertion order.
func (s *Set[T]) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, len(s.items))
	for i, item := range s.items {
		ids[i] = item.ID()
	}
	return ids
}
