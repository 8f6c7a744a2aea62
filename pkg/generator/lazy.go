package generator

import "sync"

// lazyStore memoizes one value per key. Completed values are read without
// locking; creation is serialized per key so racing callers for the same
// key wait for one another while other keys proceed.
type lazyStore[K comparable] struct {
	values sync.Map

	mu    sync.Mutex
	locks map[K]*sync.Mutex
}

func (s *lazyStore[K]) load(key K) (any, bool) {
	return s.values.Load(key)
}

func (s *lazyStore[K]) lockFor(key K) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks == nil {
		s.locks = make(map[K]*sync.Mutex)
	}
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// getOrCreate returns the value for key, calling create at most once per
// successful creation. A failed create is not remembered.
func (s *lazyStore[K]) getOrCreate(key K, create func() (any, error)) (any, error) {
	if v, ok := s.values.Load(key); ok {
		return v, nil
	}

	l := s.lockFor(key)
	l.Lock()
	defer l.Unlock()

	if v, ok := s.values.Load(key); ok {
		return v, nil
	}
	v, err := create()
	if err != nil {
		return nil, err
	}
	s.values.Store(key, v)
	return v, nil
}
