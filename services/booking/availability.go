package booking

import (
	"context"
	"fmt"
	"sync"

	"shutterhub/models"

	"go.uber.org/zap"
)

// ReservationStore persists availability-index entries. The Mongo
// implementation lives in database/repository/booking; tests use an
// in-memory store.
type ReservationStore interface {
	Insert(ctx context.Context, r *models.Reservation) error
	Overlapping(ctx context.Context, resourceID string, iv models.Interval) ([]models.Reservation, error)
	Remove(ctx context.Context, bookingID string) error
}

// AvailabilityIndex tracks reserved intervals per resource and guarantees
// that two overlapping reservations are never both accepted. Reserve holds a
// per-resource exclusive lock across its check-then-insert, so concurrent
// requests on the same resource serialize while distinct resources never
// contend. Releases do not take the lock: removing a reservation can only
// widen availability, so racing a release against a reserve is harmless.
type AvailabilityIndex struct {
	store ReservationStore
	locks sync.Map // resource id -> *sync.Mutex
}

// NewAvailabilityIndex constructs an index over the given store.
func NewAvailabilityIndex(store ReservationStore) *AvailabilityIndex {
	return &AvailabilityIndex{store: store}
}

func (ai *AvailabilityIndex) lockFor(resourceID string) *sync.Mutex {
	mu, _ := ai.locks.LoadOrStore(resourceID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// QueryConflicts returns the reserved intervals on the resource that
// intersect iv. The read is an unlocked snapshot; dashboards rendering
// blocked calendars do not need to observe in-flight reservations.
func (ai *AvailabilityIndex) QueryConflicts(ctx context.Context, resourceID string, iv models.Interval) ([]models.Interval, error) {
	reserved, err := ai.store.Overlapping(ctx, resourceID, iv)
	if err != nil {
		return nil, fmt.Errorf("query conflicts for resource %s: %w", resourceID, err)
	}
	out := make([]models.Interval, 0, len(reserved))
	for i := range reserved {
		out = append(out, reserved[i].Interval())
	}
	return out, nil
}

// Reserve atomically checks the booking's interval against existing
// reservations on its resource and inserts it. On overlap it returns a
// ConflictError carrying the colliding intervals and writes nothing.
func (ai *AvailabilityIndex) Reserve(ctx context.Context, b *models.Booking) error {
	mu := ai.lockFor(b.ResourceID)
	mu.Lock()
	defer mu.Unlock()

	conflicts, err := ai.QueryConflicts(ctx, b.ResourceID, b.Interval())
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &ConflictError{ResourceID: b.ResourceID, Conflicts: conflicts}
	}

	res := &models.Reservation{
		BookingID:  b.ID,
		ResourceID: b.ResourceID,
		Start:      b.Start,
		End:        b.End,
		CreatedAt:  b.CreatedAt,
	}
	if err := ai.store.Insert(ctx, res); err != nil {
		return fmt.Errorf("insert reservation for booking %s: %w", b.ID, err)
	}
	return nil
}

// Release removes the reservation held by a booking, freeing its interval
// for future requests. Releasing a booking that holds no reservation is a
// no-op, so callers may invoke it on any cancellation or deletion path.
func (ai *AvailabilityIndex) Release(ctx context.Context, bookingID string) error {
	if err := ai.store.Remove(ctx, bookingID); err != nil {
		return fmt.Errorf("release reservation for booking %s: %w", bookingID, err)
	}
	zap.L().Debug("reservation released", zap.String("bookingID", bookingID))
	return nil
}
