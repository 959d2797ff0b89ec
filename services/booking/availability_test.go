package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shutterhub/models"
)

// memReservationStore is an in-memory ReservationStore for tests.
type memReservationStore struct {
	mu           sync.Mutex
	reservations map[string]*models.Reservation // keyed by booking id
}

func newMemReservationStore() *memReservationStore {
	return &memReservationStore{reservations: make(map[string]*models.Reservation)}
}

func (s *memReservationStore) Insert(_ context.Context, r *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.reservations[r.BookingID] = &cp
	return nil
}

func (s *memReservationStore) Overlapping(_ context.Context, resourceID string, iv models.Interval) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Reservation
	for _, r := range s.reservations {
		if r.ResourceID == resourceID && r.Interval().Overlaps(iv) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memReservationStore) Remove(_ context.Context, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reservations, bookingID)
	return nil
}

func (s *memReservationStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reservations)
}

func testBooking(id, resourceID string, start string, days int) *models.Booking {
	s, _ := time.Parse(time.RFC3339, start)
	return &models.Booking{
		ID:         id,
		ResourceID: resourceID,
		Start:      s,
		End:        s.AddDate(0, 0, days),
		Status:     models.StatusPending,
		CreatedAt:  s,
	}
}

func TestReserveRejectsOverlap(t *testing.T) {
	store := newMemReservationStore()
	idx := NewAvailabilityIndex(store)
	ctx := context.Background()

	if err := idx.Reserve(ctx, testBooking("b1", "gear-1", "2025-06-01T00:00:00Z", 2)); err != nil {
		t.Fatalf("first reserve: %v", err)
	}

	err := idx.Reserve(ctx, testBooking("b2", "gear-1", "2025-06-02T00:00:00Z", 2))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if len(conflict.Conflicts) != 1 {
		t.Fatalf("expected 1 conflicting interval, got %d", len(conflict.Conflicts))
	}
	want, _ := time.Parse(time.RFC3339, "2025-06-01T00:00:00Z")
	if !conflict.Conflicts[0].Start.Equal(want) {
		t.Errorf("conflict start = %v, want %v", conflict.Conflicts[0].Start, want)
	}
	if store.count() != 1 {
		t.Errorf("failed reserve must write nothing, store has %d entries", store.count())
	}
}

func TestReserveDistinctResources(t *testing.T) {
	idx := NewAvailabilityIndex(newMemReservationStore())
	ctx := context.Background()

	if err := idx.Reserve(ctx, testBooking("b1", "gear-1", "2025-06-01T00:00:00Z", 2)); err != nil {
		t.Fatalf("reserve gear-1: %v", err)
	}
	if err := idx.Reserve(ctx, testBooking("b2", "gear-2", "2025-06-01T00:00:00Z", 2)); err != nil {
		t.Fatalf("same interval on another resource must succeed: %v", err)
	}
}

func TestReserveAdjacentIntervals(t *testing.T) {
	idx := NewAvailabilityIndex(newMemReservationStore())
	ctx := context.Background()

	if err := idx.Reserve(ctx, testBooking("b1", "gear-1", "2025-06-01T00:00:00Z", 2)); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	// [2025-06-03, 2025-06-05) touches the previous end; half-open means free.
	if err := idx.Reserve(ctx, testBooking("b2", "gear-1", "2025-06-03T00:00:00Z", 2)); err != nil {
		t.Fatalf("adjacent interval must not conflict: %v", err)
	}
}

func TestReleaseIsIdempotentAndFreesInterval(t *testing.T) {
	store := newMemReservationStore()
	idx := NewAvailabilityIndex(store)
	ctx := context.Background()

	if err := idx.Reserve(ctx, testBooking("b1", "gear-1", "2025-06-01T00:00:00Z", 2)); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := idx.Release(ctx, "b1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := idx.Release(ctx, "b1"); err != nil {
		t.Fatalf("second release must be a no-op: %v", err)
	}
	if err := idx.Release(ctx, "never-existed"); err != nil {
		t.Fatalf("releasing an unknown booking must be a no-op: %v", err)
	}

	if err := idx.Reserve(ctx, testBooking("b2", "gear-1", "2025-06-01T00:00:00Z", 2)); err != nil {
		t.Fatalf("identical interval after release must succeed: %v", err)
	}
}

func TestConcurrentReserveExactlyOneWins(t *testing.T) {
	store := newMemReservationStore()
	idx := NewAvailabilityIndex(store)
	ctx := context.Background()

	const attempts = 32
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			b := testBooking("b", "gear-1", "2025-06-01T00:00:00Z", 2)
			b.ID = b.ID + "-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
			errs[i] = idx.Reserve(ctx, b)
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for i, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var conflict *ConflictError
		if !errors.As(err, &conflict) {
			t.Errorf("attempt %d: expected ConflictError, got %v", i, err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("exactly one concurrent reserve must win, got %d", succeeded)
	}
	if store.count() != 1 {
		t.Fatalf("store must hold exactly one reservation, has %d", store.count())
	}
}

func TestQueryConflictsReportsIntervals(t *testing.T) {
	idx := NewAvailabilityIndex(newMemReservationStore())
	ctx := context.Background()

	for i, start := range []string{"2025-06-01T00:00:00Z", "2025-06-05T00:00:00Z", "2025-07-01T00:00:00Z"} {
		b := testBooking("b"+string(rune('1'+i)), "gear-1", start, 2)
		if err := idx.Reserve(ctx, b); err != nil {
			t.Fatalf("reserve %s: %v", start, err)
		}
	}

	from, _ := time.Parse(time.RFC3339, "2025-06-01T00:00:00Z")
	to, _ := time.Parse(time.RFC3339, "2025-06-30T00:00:00Z")
	conflicts, err := idx.QueryConflicts(ctx, "gear-1", models.Interval{Start: from, End: to})
	if err != nil {
		t.Fatalf("QueryConflicts: %v", err)
	}
	if len(conflicts) != 2 {
		t.Errorf("expected 2 blocked intervals in June, got %d", len(conflicts))
	}
}
