package session

import (
	"errors"
	"testing"
	"time"

	"calcpad/internal/calculator"
)

// newTestStore returns a store whose sweeper never fires during a test and
// whose clock is controlled by the returned advance function.
func newTestStore(t *testing.T, ttl time.Duration) (*Store, func(time.Duration)) {
	t.Helper()

	s := NewStore(ttl, time.Hour)
	t.Cleanup(func() { _ = s.Close() })

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.mu.Lock()
	s.now = func() time.Time { return now }
	s.mu.Unlock()

	advance := func(d time.Duration) {
		s.mu.Lock()
		now = now.Add(d)
		s.mu.Unlock()
	}
	return s, advance
}

func TestStoreCreateAndGet(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)

	created, err := s.Create("a")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Display() != "0" {
		t.Fatalf("expected initial display %q, got %q", "0", created.Display())
	}

	got, err := s.Get("a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != calculator.New() {
		t.Fatalf("expected initial state, got %+v", got)
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreUpdateAppliesTransition(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)
	if _, err := s.Create("a"); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.Update("a", func(st calculator.State) calculator.State {
		return st.Digit('4').Operator(calculator.Mul).Digit('5').Equals()
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Display() != "20" {
		t.Fatalf("expected display %q, got %q", "20", got.Display())
	}

	stored, _ := s.Get("a")
	if stored.Display() != "20" {
		t.Fatalf("expected stored display %q, got %q", "20", stored.Display())
	}

	_, err = s.Update("missing", func(st calculator.State) calculator.State { return st })
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreExpiresIdleSessions(t *testing.T) {
	s, advance := newTestStore(t, time.Minute)
	if _, err := s.Create("a"); err != nil {
		t.Fatalf("create: %v", err)
	}

	advance(45 * time.Second)
	if _, err := s.Get("a"); err != nil {
		t.Fatalf("expected session alive, got %v", err)
	}

	// The Get above refreshed the TTL.
	advance(45 * time.Second)
	if _, err := s.Get("a"); err != nil {
		t.Fatalf("expected refreshed session alive, got %v", err)
	}

	advance(2 * time.Minute)
	if _, err := s.Get("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
	if n := s.Len(); n != 0 {
		t.Fatalf("expected 0 live sessions, got %d", n)
	}

	s.cleanExpired()
	s.mu.Lock()
	left := len(s.items)
	s.mu.Unlock()
	if left != 0 {
		t.Fatalf("expected sweeper to drop expired entries, %d left", left)
	}
}

func TestStoreDelete(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)
	if _, err := s.Create("a"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Delete("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStoreClose(t *testing.T) {
	s := NewStore(time.Minute, time.Hour)
	if _, err := s.Create("a"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.Close(); !errors.Is(err, ErrStoreClosed) {
		t.Fatalf("expected ErrStoreClosed on second close, got %v", err)
	}
	if _, err := s.Get("a"); !errors.Is(err, ErrStoreClosed) {
		t.Fatalf("expected ErrStoreClosed, got %v", err)
	}
	if _, err := s.Create("b"); !errors.Is(err, ErrStoreClosed) {
		t.Fatalf("expected ErrStoreClosed, got %v", err)
	}
}
