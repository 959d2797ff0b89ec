package models

import "time"

// CreateBookingRequest is the payload for creating a booking. RequesterID and
// Source are filled by the service layer from the authenticated actor; manual
// entries carry the client's identity in RequesterID as provided by the owner.
type CreateBookingRequest struct {
	ResourceID  string        `json:"resource_id"`
	RequesterID string        `json:"requester_id,omitempty"`
	Start       time.Time     `json:"start"`
	End         time.Time     `json:"end"`
	Source      BookingSource `json:"source,omitempty"`
	Notes       string        `json:"notes,omitempty"`
}

// UpdateStatusRequest is the payload for a status transition.
type UpdateStatusRequest struct {
	Status BookingStatus `json:"status"`
}

// BookingFilter narrows a booking listing. Zero-valued fields are ignored.
type BookingFilter struct {
	ResourceID  string        `form:"resource_id" json:"resource_id,omitempty"`
	RequesterID string        `form:"requester_id" json:"requester_id,omitempty"`
	OwnerID     string        `form:"owner_id" json:"owner_id,omitempty"`
	Status      BookingStatus `form:"status" json:"status,omitempty"`
}
