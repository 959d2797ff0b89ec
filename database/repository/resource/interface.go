// File: database/repository/resource/interface.go
package resourceRepo

import (
	"context"

	"shutterhub/config"
	"shutterhub/database"
	"shutterhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ResourceRegistry is the read-only catalog of bookable resources. The
// booking engine consults it for ownership and rate data; catalog writes
// happen elsewhere.
type ResourceRegistry interface {
	GetByID(ctx context.Context, id string) (*models.Resource, error)
}

type mongoResourceRepo struct {
	coll *mongo.Collection
}

// NewMongoResourceRepo constructs a new MongoDB ResourceRegistry.
func NewMongoResourceRepo() ResourceRegistry {
	db := database.MongoClient.Database(config.AppConfig.MongoDBName)
	return &mongoResourceRepo{
		coll: db.Collection("resources"),
	}
}
