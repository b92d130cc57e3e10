package memory

import (
	"container/list"
	"context"
	"sync"

	"facilitator/domain"
)

// store is the in-process registration queue. queue holds domain.Endpoint
// values in insertion order and index maps each queued key to its element,
// both guarded by mu.
type store struct {
	mu    sync.Mutex
	queue *list.List
	index map[domain.Key]*list.Element
}

// NewStore creates an empty in-memory implementation of interfaces.RegistrationStore.
func NewStore() *store {
	return &store{
		queue: list.New(),
		index: make(map[domain.Key]*list.Element),
	}
}

func (s *store) Add(_ context.Context, endpoint domain.Endpoint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := endpoint.Key()
	if _, ok := s.index[key]; ok {
		return false, nil
	}
	s.index[key] = s.queue.PushBack(endpoint)
	return true, nil
}

func (s *store) Take(_ context.Context) (domain.Endpoint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	front := s.queue.Front()
	if front == nil {
		return domain.Endpoint{}, false, nil
	}
	endpoint := s.queue.Remove(front).(domain.Endpoint)
	delete(s.index, endpoint.Key())
	return endpoint, true, nil
}

func (s *store) Size(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.queue.Len(), nil
}
