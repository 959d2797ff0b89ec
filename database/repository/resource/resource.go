// File: database/repository/resource/resource.go
package resourceRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"shutterhub/models"
)

func (r *mongoResourceRepo) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var res models.Resource
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}
