package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"shutterhub/config"
)

// MongoClient backs the booking, reservation and resource repositories. The
// repositories pick their collections off config.AppConfig.MongoDBName.
var MongoClient *mongo.Client

// InitDB connects to MongoDB and verifies a primary is reachable. The unique
// reservation index depends on writes going to a primary, so the ping is
// against readpref.Primary rather than any node.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.AppConfig.DatabaseURL).
		SetServerSelectionTimeout(5 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("mongo ping: %v", err)
	}
	MongoClient = client
	log.Printf("connected to MongoDB, database %q", config.AppConfig.MongoDBName)
}
