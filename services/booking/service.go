package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"shutterhub/models"
	"shutterhub/services/notification"
	"shutterhub/utils"

	"go.uber.org/zap"
)

const availabilityCacheTTL = 30 * time.Second

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// CreateBooking validates, prices, and atomically reserves a new booking.
// Online bookings start pending with an expiry clock; manual entries are
// recorded by the resource owner and settle offline.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req models.CreateBookingRequest, actorID string) (*models.Booking, error) {
	if req.ResourceID == "" {
		return nil, NewValidationError("resource_id is required")
	}
	iv := models.Interval{Start: req.Start.UTC(), End: req.End.UTC()}
	if !iv.IsValid() {
		return nil, NewValidationError("start must be before end")
	}

	source := req.Source
	if source == "" {
		source = models.SourceOnline
	}
	if source != models.SourceOnline && source != models.SourceManual {
		return nil, NewValidationError("unknown booking source %q", source)
	}

	res, err := s.Resources.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{Kind: "resource", ID: req.ResourceID}
		}
		return nil, fmt.Errorf("look up resource %s: %w", req.ResourceID, err)
	}

	requesterID := req.RequesterID
	switch source {
	case models.SourceOnline:
		// The authenticated caller is the requester.
		requesterID = actorID
		if iv.Start.Before(s.now()) {
			return nil, NewValidationError("booking cannot start in the past")
		}
	case models.SourceManual:
		// Only the owner records offline deals; backdated entries are fine
		// but they still contend for the interval.
		if actorID != res.OwnerID {
			return nil, &PermissionError{ActorID: actorID, Action: "create manual booking"}
		}
		if requesterID == "" {
			requesterID = actorID
		}
	}

	total, err := Quote(res, iv, s.Pricing)
	if err != nil {
		return nil, err
	}

	currency := res.Currency
	if currency == "" {
		currency = s.DefaultCurrency
	}

	nowTS := s.now()
	b := &models.Booking{
		ID:          uuid.New().String(),
		ResourceID:  res.ID,
		RequesterID: requesterID,
		OwnerID:     res.OwnerID,
		Start:       iv.Start,
		End:         iv.End,
		TotalPrice:  total,
		Currency:    currency,
		Status:      models.StatusPending,
		Source:      source,
		Notes:       req.Notes,
		CreatedAt:   nowTS,
		UpdatedAt:   nowTS,
	}

	if err := s.Availability.Reserve(ctx, b); err != nil {
		return nil, err
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		if relErr := s.Availability.Release(ctx, b.ID); relErr != nil {
			utils.GetLogger().Error("failed to roll back reservation",
				zap.String("bookingID", b.ID), zap.Error(relErr))
		}
		return nil, fmt.Errorf("persist booking %s: %w", b.ID, err)
	}

	if source == models.SourceOnline && s.Expiry != nil {
		if err := s.Expiry.ScheduleExpiry(ctx, b.ID, s.PendingTTL); err != nil {
			// The booking stands; an unscheduled reaper just means the hold
			// lives until someone cancels it.
			utils.GetLogger().Error("failed to schedule booking expiry",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}

	s.invalidateCalendar(ctx, b.ResourceID)
	s.notify(b, notification.EventBookingCreated, b.OwnerID)
	return b, nil
}

// ConfirmPayment charges the requester and promotes a pending online booking
// to confirmed. A failed charge leaves the booking pending and retryable.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actorID != b.RequesterID {
		return nil, &PermissionError{ActorID: actorID, Action: "pay for booking"}
	}
	if b.Source == models.SourceManual {
		return nil, NewValidationError("manual bookings are settled offline")
	}
	if b.Status != models.StatusPending {
		return nil, &InvalidTransitionError{From: b.Status, To: models.StatusConfirmed}
	}

	ref, err := s.Payments.Charge(ctx, b)
	if err != nil {
		return nil, &PaymentError{BookingID: b.ID, Err: err}
	}

	b.Status = models.StatusConfirmed
	b.PaymentRef = ref
	b.UpdatedAt = s.now()
	if err := s.Bookings.UpdateIfStatus(ctx, b, models.StatusPending); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// The booking moved on while the charge was in flight, typically a
			// cancellation. Its interval is already released; resurrecting the
			// record here would double-book the resource.
			utils.GetLogger().Warn("charge captured for a booking that left pending mid-flight",
				zap.String("bookingID", b.ID), zap.String("paymentRef", ref))
			return nil, s.transitionLost(ctx, b.ID, models.StatusConfirmed)
		}
		return nil, fmt.Errorf("persist confirmed booking %s: %w", b.ID, err)
	}

	s.notify(b, notification.EventBookingConfirmed, b.OwnerID, b.RequesterID)
	return b, nil
}

// UpdateStatus applies a lifecycle transition on behalf of an actor.
// Completing is owner-only. Cancelling is open to either party while the
// booking is live. Direct confirmation is reserved for manual entries.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID string, newStatus models.BookingStatus, actorID string) (*models.Booking, error) {
	if !newStatus.IsKnown() {
		return nil, NewValidationError("unknown status %q", newStatus)
	}

	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch newStatus {
	case models.StatusConfirmed:
		if b.Source != models.SourceManual {
			return nil, NewValidationError("online bookings are confirmed through payment")
		}
		if actorID != b.OwnerID {
			return nil, &PermissionError{ActorID: actorID, Action: "confirm booking"}
		}
	case models.StatusCompleted:
		if actorID != b.OwnerID {
			return nil, &PermissionError{ActorID: actorID, Action: "complete booking"}
		}
	case models.StatusCancelled:
		if actorID != b.OwnerID && actorID != b.RequesterID {
			return nil, &PermissionError{ActorID: actorID, Action: "cancel booking"}
		}
	default:
		return nil, NewValidationError("cannot move a booking to %q", newStatus)
	}

	if !models.CanTransition(b.Status, newStatus) {
		return nil, &InvalidTransitionError{From: b.Status, To: newStatus}
	}

	from := b.Status
	b.Status = newStatus
	b.UpdatedAt = s.now()
	if err := s.Bookings.UpdateIfStatus(ctx, b, from); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, s.transitionLost(ctx, b.ID, newStatus)
		}
		return nil, fmt.Errorf("persist booking %s status: %w", b.ID, err)
	}

	if newStatus == models.StatusCancelled {
		if err := s.Availability.Release(ctx, b.ID); err != nil {
			utils.GetLogger().Error("failed to release cancelled booking",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
		s.invalidateCalendar(ctx, b.ResourceID)
	}

	s.notify(b, eventFor(newStatus), b.OwnerID, b.RequesterID)
	return b, nil
}

// CancelBooking cancels on behalf of either party.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	return s.UpdateStatus(ctx, bookingID, models.StatusCancelled, actorID)
}

// DeleteBooking removes a booking record entirely. A live booking's interval
// is freed by the removal.
func (s *DefaultBookingService) DeleteBooking(ctx context.Context, bookingID, actorID string) error {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if actorID != b.OwnerID && actorID != b.RequesterID {
		return &PermissionError{ActorID: actorID, Action: "delete booking"}
	}

	if err := s.Availability.Release(ctx, b.ID); err != nil {
		return fmt.Errorf("release booking %s: %w", b.ID, err)
	}
	if err := s.Bookings.Delete(ctx, bookingID); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("delete booking %s: %w", bookingID, err)
	}
	s.invalidateCalendar(ctx, b.ResourceID)
	return nil
}

// GetBooking fetches one booking.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.getBooking(ctx, bookingID)
}

// ListBookings returns bookings matching the filter.
func (s *DefaultBookingService) ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	bookings, err := s.Bookings.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// QueryAvailability returns the blocked intervals on a resource within the
// requested window. Results are served from a short-lived cache; mutations
// drop the resource's snapshot, so calendars lag by at most the TTL.
func (s *DefaultBookingService) QueryAvailability(ctx context.Context, resourceID string, within models.Interval) ([]models.Interval, error) {
	if !within.IsValid() {
		return nil, NewValidationError("from must be before to")
	}

	cacheKey := "availability:" + resourceID
	field := fmt.Sprintf("%d-%d", within.Start.Unix(), within.End.Unix())
	if s.Cache != nil {
		if raw, err := s.Cache.HGet(ctx, cacheKey, field).Result(); err == nil {
			var cached []models.Interval
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	conflicts, err := s.Availability.QueryConflicts(ctx, resourceID, within)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(conflicts); err == nil {
			s.Cache.HSet(ctx, cacheKey, field, raw)
			s.Cache.Expire(ctx, cacheKey, availabilityCacheTTL)
		}
	}
	return conflicts, nil
}

// ExpirePending is the reaper entry point. It cancels a booking that is
// still pending past its payment window and releases its interval. Any
// other state, or a booking that no longer exists, is left alone.
func (s *DefaultBookingService) ExpirePending(ctx context.Context, bookingID string) error {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil
		}
		return err
	}
	if b.Status != models.StatusPending || b.Source != models.SourceOnline {
		return nil
	}

	b.Status = models.StatusCancelled
	b.UpdatedAt = s.now()
	if err := s.Bookings.UpdateIfStatus(ctx, b, models.StatusPending); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Confirmed or cancelled while the task was in flight; the winner
			// owns the reservation now.
			return nil
		}
		return fmt.Errorf("persist expired booking %s: %w", b.ID, err)
	}
	if err := s.Availability.Release(ctx, b.ID); err != nil {
		return fmt.Errorf("release expired booking %s: %w", b.ID, err)
	}
	s.invalidateCalendar(ctx, b.ResourceID)

	utils.GetLogger().Info("pending booking expired",
		zap.String("bookingID", b.ID), zap.String("resourceID", b.ResourceID))
	s.notify(b, notification.EventBookingExpired, b.OwnerID, b.RequesterID)
	return nil
}

// transitionLost reports a status-conditioned write that matched nothing: the
// booking either vanished or another transition landed first.
func (s *DefaultBookingService) transitionLost(ctx context.Context, bookingID string, to models.BookingStatus) error {
	fresh, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	return &InvalidTransitionError{From: fresh.Status, To: to}
}

func (s *DefaultBookingService) getBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	if bookingID == "" {
		return nil, NewValidationError("booking id is required")
	}
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{Kind: "booking", ID: bookingID}
		}
		return nil, fmt.Errorf("look up booking %s: %w", bookingID, err)
	}
	return b, nil
}

func (s *DefaultBookingService) invalidateCalendar(ctx context.Context, resourceID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, "availability:"+resourceID).Err(); err != nil {
		utils.GetLogger().Warn("failed to drop availability snapshot",
			zap.String("resourceID", resourceID), zap.Error(err))
	}
}

// notify pushes a booking event to each recipient without blocking the
// request path. Delivery failures are only logged.
func (s *DefaultBookingService) notify(b *models.Booking, event notification.Event, recipients ...string) {
	if s.Notifier == nil {
		return
	}
	for _, recipient := range recipients {
		go func(recipient string) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			data := map[string]string{
				"booking_id":  b.ID,
				"resource_id": b.ResourceID,
				"status":      string(b.Status),
			}
			if err := s.Notifier.NotifyBookingEvent(ctx, recipient, event, data); err != nil {
				utils.GetLogger().Warn("booking notification failed",
					zap.String("recipient", recipient),
					zap.String("event", string(event)),
					zap.Error(err))
			}
		}(recipient)
	}
}

func eventFor(status models.BookingStatus) notification.Event {
	switch status {
	case models.StatusConfirmed:
		return notification.EventBookingConfirmed
	case models.StatusCompleted:
		return notification.EventBookingCompleted
	case models.StatusCancelled:
		return notification.EventBookingCancelled
	default:
		return notification.Event(string(status))
	}
}
