package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureIndexes creates every index the repositories rely on. The unique
// compound indexes are not an optimization: assignments, feedbacks and the
// per-day tracking entries depend on them to turn lost races into duplicate
// key errors instead of silent double inserts.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log *zap.Logger) {
	specs := map[string][]mongo.IndexModel{
		userCollectionName: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		coachCollectionName: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		customerCollectionName: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		assignmentCollectionName: {
			{
				Keys:    bson.D{{Key: "coachId", Value: 1}, {Key: "customerId", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "customerId", Value: 1}}},
		},
		workoutCollectionName: {
			{Keys: bson.D{{Key: "coachId", Value: 1}, {Key: "customerId", Value: 1}}},
			{Keys: bson.D{{Key: "timeStart", Value: 1}}},
		},
		exerciseWorkoutCollectionName: {
			{Keys: bson.D{{Key: "workoutId", Value: 1}}},
			{Keys: bson.D{{Key: "exerciseId", Value: 1}}},
		},
		chatCollectionName: {
			{Keys: bson.D{{Key: "userIds", Value: 1}, {Key: "type", Value: 1}}},
			{Keys: bson.D{{Key: "lastTimestamp", Value: -1}}},
		},
		messageCollectionName: {
			{Keys: bson.D{{Key: "chatId", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
		exerciseCollectionName: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetSparse(true)},
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		feedbackCollectionName: {
			{
				Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "coachId", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		fileCollectionName: {
			{Keys: bson.D{{Key: "filename", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "exerciseId", Value: 1}}, Options: options.Index().SetSparse(true)},
		},
		diaryCollectionName: {
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		stepsCollectionName: {
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		waterCollectionName: {
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		productCollectionName: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			log.Warn("failed to create indexes",
				zap.String("collection", name),
				zap.Error(err))
		}
	}
}
