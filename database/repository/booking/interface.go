// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"log"

	"shutterhub/config"
	"shutterhub/database"
	"shutterhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// UpdateIfStatus persists b only while the stored document still carries
	// the expected status, so a concurrent transition can never be overwritten.
	UpdateIfStatus(ctx context.Context, b *models.Booking, expected models.BookingStatus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(config.AppConfig.MongoDBName)
	repo := &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		log.Printf("booking repo: %v", err)
	}
	return repo
}

type mongoReservationStore struct {
	coll *mongo.Collection
}

// NewMongoReservationStore constructs the store backing the availability index.
func NewMongoReservationStore() *mongoReservationStore {
	db := database.MongoClient.Database(config.AppConfig.MongoDBName)
	store := &mongoReservationStore{
		coll: db.Collection("reservations"),
	}
	if err := store.EnsureIndexes(); err != nil {
		log.Printf("reservation store: %v", err)
	}
	return store
}
