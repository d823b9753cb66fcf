package session

import (
	"errors"
	"sync"
	"time"

	"calcpad/internal/calculator"
)

var (
	ErrNotFound    = errors.New("session not found")
	ErrStoreClosed = errors.New("session store closed")
)

type entry struct {
	state    calculator.State
	expireAt int64
}

// Store keeps one calculator per session and forgets sessions that stay
// idle longer than the TTL. Every access refreshes the TTL.
type Store struct {
	mu        sync.Mutex
	items     map[string]entry
	ttl       time.Duration
	closed    bool
	cleanerCh chan struct{}
	closeOnce sync.Once
	now       func() time.Time
}

// NewStore starts a store whose sweeper drops expired sessions every
// cleanupInterval. Call Close to stop it.
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	s := &Store{
		items:     make(map[string]entry),
		ttl:       ttl,
		cleanerCh: make(chan struct{}),
		now:       time.Now,
	}

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.cleanerCh:
				return
			case <-ticker.C:
				s.cleanExpired()
			}
		}
	}()
	return s
}

// Create registers id with a calculator in its initial configuration.
func (s *Store) Create(id string) (calculator.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return calculator.State{}, ErrStoreClosed
	}

	state := calculator.New()
	s.items[id] = entry{state: state, expireAt: s.expiry()}
	return state, nil
}

// Get returns the calculator of id.
func (s *Store) Get(id string) (calculator.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		return calculator.State{}, err
	}
	e.expireAt = s.expiry()
	s.items[id] = e
	return e.state, nil
}

// Update replaces the calculator of id with fn's result. fn runs with the
// store locked, so updates never interleave.
func (s *Store) Update(id string, fn func(calculator.State) calculator.State) (calculator.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		return calculator.State{}, err
	}
	e.state = fn(e.state)
	e.expireAt = s.expiry()
	s.items[id] = e
	return e.state, nil
}

// Delete forgets id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(id); err != nil {
		return err
	}
	delete(s.items, id)
	return nil
}

// Len counts sessions that have not expired.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UnixNano()
	n := 0
	for _, e := range s.items {
		if now <= e.expireAt {
			n++
		}
	}
	return n
}

// Close stops the sweeper and drops every session.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	s.closed = true
	s.closeOnce.Do(func() { close(s.cleanerCh) })
	clear(s.items)
	return nil
}

// lookup must be called with mu held.
func (s *Store) lookup(id string) (entry, error) {
	if s.closed {
		return entry{}, ErrStoreClosed
	}
	e, ok := s.items[id]
	if !ok || s.now().UnixNano() > e.expireAt {
		return entry{}, ErrNotFound
	}
	return e, nil
}

func (s *Store) expiry() int64 {
	return s.now().Add(s.ttl).UnixNano()
}

func (s *Store) cleanExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UnixNano()
	for k, e := range s.items {
		if now > e.expireAt {
			delete(s.items, k)
		}
	}
}
