package status

import "sync"

// Store holds the current status of one editor. Updates replace the held
// pointer; a *Status returned by [Store.Current] is never modified afterwards.
type Store struct {
	mu      sync.RWMutex
	current *Status
}

// NewStore returns a store holding an idle status.
func NewStore() *Store {
	return &Store{current: Idle()}
}

// Current returns the current status.
func (s *Store) Current() *Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update replaces the current status with fn(current) and returns it.
func (s *Store) Update(fn func(*Status) *Status) *Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next := fn(s.current); next != nil {
		s.current = next
	}
	return s.current
}

// SetNodeStatus applies opts to node id.
func (s *Store) SetNodeStatus(id string, opts ...NodeOption) *Status {
	return s.Update(func(st *Status) *Status { return st.WithNodeStatus(id, opts...) })
}

// SetEdgeStatus applies opts to edge id.
func (s *Store) SetEdgeStatus(id string, opts ...EdgeOption) *Status {
	return s.Update(func(st *Status) *Status { return st.WithEdgeStatus(id, opts...) })
}

// SetDividerLineStatus marks the divider line of container id as moving or not.
func (s *Store) SetDividerLineStatus(id string, moving bool) *Status {
	return s.Update(func(st *Status) *Status { return st.WithDividerLineStatus(id, moving) })
}

// Reset returns the store to an idle status.
func (s *Store) Reset() *Status {
	return s.Update(func(*Status) *Status { return Idle() })
}
