package models

import "time"

// BookingSource records how a booking entered the system.
type BookingSource string

const (
	SourceOnline BookingSource = "online" // client-initiated through the public flow
	SourceManual BookingSource = "manual" // owner-entered, may record past events
)

// Booking is a priced, status-tracked reservation of a resource interval.
type Booking struct {
	ID          string        `bson:"id" json:"id"`
	ResourceID  string        `bson:"resource_id" json:"resource_id"`
	RequesterID string        `bson:"requester_id" json:"requester_id"`
	OwnerID     string        `bson:"owner_id" json:"owner_id"`
	Start       time.Time     `bson:"start" json:"start"`
	End         time.Time     `bson:"end" json:"end"`
	TotalPrice  float64       `bson:"total_price" json:"total_price"`
	Currency    string        `bson:"currency" json:"currency"`
	Status      BookingStatus `bson:"status" json:"status"`
	Source      BookingSource `bson:"source" json:"source"`
	Notes       string        `bson:"notes,omitempty" json:"notes,omitempty"`
	PaymentRef  string        `bson:"payment_ref,omitempty" json:"payment_ref,omitempty"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at"`
}

// Interval returns the booking's occupancy window.
func (b *Booking) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}

// Reservation is the availability-index entry backing a pending or confirmed
// booking. It exists exactly as long as the booking occupies its interval.
type Reservation struct {
	BookingID  string    `bson:"booking_id" json:"booking_id"`
	ResourceID string    `bson:"resource_id" json:"resource_id"`
	Start      time.Time `bson:"start" json:"start"`
	End        time.Time `bson:"end" json:"end"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// Interval returns the reserved window.
func (r *Reservation) Interval() Interval {
	return Interval{Start: r.Start, End: r.End}
}
