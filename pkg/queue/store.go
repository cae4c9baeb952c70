package queue

import (
	"slices"
	"sync"
)

// Store is the FIFO of pending requests. Every method holds mu for its
// whole duration, so operations never interleave.
type Store struct {
	mu      sync.Mutex
	entries []HelpRequest
	groups  map[GroupID]struct{}
	seq     uint64
}

func NewStore() *Store {
	return &Store{groups: make(map[GroupID]struct{})}
}

// Insert appends req at the tail and assigns its sequence number.
// The stored entry is returned with its position filled in.
func (s *Store) Insert(req HelpRequest) (HelpRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[req.Group]; ok {
		return HelpRequest{}, ErrDuplicateGroup
	}
	s.seq++
	req.Seq = s.seq
	req.Position = 0
	s.entries = append(s.entries, req)
	s.groups[req.Group] = struct{}{}

	req.Position = len(s.entries)
	return req, nil
}

func (s *Store) PopFront() (HelpRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return HelpRequest{}, ErrQueueEmpty
	}
	head := s.entries[0]
	s.entries[0] = HelpRequest{}
	s.entries = s.entries[1:]
	delete(s.groups, head.Group)

	// Popped slots ahead of the slice are released the next time append
	// grows it, since only the live tail is copied.
	if len(s.entries) == 0 {
		s.entries = nil
	}

	head.Position = 1
	return head, nil
}

func (s *Store) Remove(group GroupID) (HelpRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[group]; !ok {
		return HelpRequest{}, ErrNotFound
	}
	i := slices.IndexFunc(s.entries, func(r HelpRequest) bool { return r.Group == group })
	removed := s.entries[i]
	s.entries = slices.Delete(s.entries, i, i+1)
	delete(s.groups, group)

	removed.Position = i + 1
	return removed, nil
}

func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	s.entries = nil
	clear(s.groups)
	return n
}

// Snapshot returns a copy of the pending requests in service order.
func (s *Store) Snapshot() []HelpRequest {
	s.mu.Lock()
	out := slices.Clone(s.entries)
	s.mu.Unlock()

	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
