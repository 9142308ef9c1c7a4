package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for frequently used fields in queries.
func (repo *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// One slot-holding booking per professional, date and start time.
	activeSlotIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "professionalId", Value: 1},
			{Key: "schedule.date", Value: 1},
			{Key: "schedule.timeSlot.start", Value: 1},
		},
		Options: options.Index().
			SetName(activeSlotIndexName).
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"holdsSlot": true}),
	}

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingCode", Value: 1}}, Options: options.Index().SetName(codeIndexName).SetUnique(true)},
		{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "professionalId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "schedule.date", Value: 1}}},
		{Keys: bson.D{{Key: "location.pincode", Value: 1}}},
		activeSlotIdx,
	}
	if _, err := repo.bookingColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
