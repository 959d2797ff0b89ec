// File: database/repository/booking/reservations.go
package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"shutterhub/models"
)

func (s *mongoReservationStore) Insert(ctx context.Context, res *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.coll.InsertOne(ctx, res)
	return err
}

// Overlapping returns reservations on the resource whose half-open window
// intersects iv. A reservation ending exactly where iv starts does not match.
func (s *mongoReservationStore) Overlapping(ctx context.Context, resourceID string, iv models.Interval) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"resource_id": resourceID,
		"start":       bson.M{"$lt": iv.End},
		"end":         bson.M{"$gt": iv.Start},
	}
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// Remove deletes the reservation held by a booking. Removing a missing
// reservation is not an error.
func (s *mongoReservationStore) Remove(ctx context.Context, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.coll.DeleteOne(ctx, bson.M{"booking_id": bookingID})
	return err
}
