package capacity

import (
	"context"
	"sync"
)

// InMemStore is an OccupancyStore kept in memory, a stand-in for the
// real persistence layer in the demo binary and in tests
type InMemStore struct {
	mu    sync.Mutex
	roles map[string]*roleState
}

type roleState struct {
	members int
	guests  int
	limit   int
	limited bool
}

func NewInMemStore() *InMemStore {
	return &InMemStore{
		roles: make(map[string]*roleState),
	}
}

// SetRole configures a role, limited=false makes it unbounded
func (s *InMemStore) SetRole(resourceKey string, limit int, limited bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.role(resourceKey)
	r.limit = limit
	r.limited = limited
}

func (s *InMemStore) AddMember(resourceKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role(resourceKey).members++
}

func (s *InMemStore) AddGuest(resourceKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role(resourceKey).guests++
}

func (s *InMemStore) role(resourceKey string) *roleState {
	r, ok := s.roles[resourceKey]
	if !ok {
		r = &roleState{}
		s.roles[resourceKey] = r
	}
	return r
}

func (s *InMemStore) CountActiveMembers(ctx context.Context, resourceKey string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.roles[resourceKey]; ok {
		return r.members, nil
	}
	return 0, ErrRoleNotFound
}

func (s *InMemStore) CountActiveGuests(ctx context.Context, resourceKey string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.roles[resourceKey]; ok {
		return r.guests, nil
	}
	return 0, ErrRoleNotFound
}

func (s *InMemStore) RoleLimit(ctx context.Context, resourceKey string) (limit int, limited bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.roles[resourceKey]; ok {
		return r.limit, r.limited, nil
	}
	return 0, false, ErrRoleNotFound
}
