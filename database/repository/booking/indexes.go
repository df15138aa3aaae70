package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the conflict-key unique index and the lookup indexes.
func (r *MongoBookingRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "appointmentDate", Value: 1},
				{Key: "email", Value: 1},
				{Key: "treatment", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_date_email_treatment"),
		},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
