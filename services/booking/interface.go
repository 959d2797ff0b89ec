package booking

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	bookingRepo "shutterhub/database/repository/booking"
	resourceRepo "shutterhub/database/repository/resource"
	"shutterhub/models"
	"shutterhub/services/notification"
)

// ExpiryScheduler enqueues the delayed task that reaps a pending booking
// once its payment window lapses. Implemented by the cron package.
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, bookingID string, delay time.Duration) error
}

// BookingService defines the booking engine operations.
type BookingService interface {
	CreateBooking(ctx context.Context, req models.CreateBookingRequest, actorID string) (*models.Booking, error)
	ConfirmPayment(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, newStatus models.BookingStatus, actorID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	DeleteBooking(ctx context.Context, bookingID, actorID string) error
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	QueryAvailability(ctx context.Context, resourceID string, within models.Interval) ([]models.Interval, error)
	ExpirePending(ctx context.Context, bookingID string) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Resources    resourceRepo.ResourceRegistry
	Bookings     bookingRepo.BookingRepository
	Availability *AvailabilityIndex
	Payments     PaymentPort
	Notifier     notification.Service
	Expiry       ExpiryScheduler
	Pricing      PricingConfig
	PendingTTL   time.Duration

	// DefaultCurrency applies when a catalog document carries no currency.
	DefaultCurrency string

	// Cache holds short-lived availability snapshots. Nil disables caching.
	Cache *redis.Client

	// Now is swappable for tests. Nil means time.Now.
	Now func() time.Time
}
