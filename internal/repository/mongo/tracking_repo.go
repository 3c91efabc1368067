package mongo

import (
	"context"
	"errors"
	"time"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	stepsCollectionName = "steps_entries"
	waterCollectionName = "water_entries"
)

type mongoStepsRepository struct {
	collection *mongo.Collection
}

// NewMongoStepsRepository creates a new steps repository backed by MongoDB.
func NewMongoStepsRepository(db *mongo.Database) repository.StepsRepository {
	return &mongoStepsRepository{collection: db.Collection(stepsCollectionName)}
}

// Upsert writes the day's entry, replacing an existing one for the same
// (user, date).
func (r *mongoStepsRepository) Upsert(ctx context.Context, entry *domain.StepsEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	filter := bson.M{"userId": entry.UserID, "date": entry.Date}
	update := bson.M{"$set": bson.M{
		"steps":     entry.Steps,
		"goalSteps": entry.GoalSteps,
		"updatedAt": entry.UpdatedAt,
	}}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *mongoStepsRepository) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.StepsEntry, error) {
	var entry domain.StepsEntry
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "date": date}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *mongoStepsRepository) ListByUserRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.StepsEntry, error) {
	filter := bson.M{"userId": userID, "date": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.StepsEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

type mongoWaterRepository struct {
	collection *mongo.Collection
}

// NewMongoWaterRepository creates a new water repository backed by MongoDB.
func NewMongoWaterRepository(db *mongo.Database) repository.WaterRepository {
	return &mongoWaterRepository{collection: db.Collection(waterCollectionName)}
}

func (r *mongoWaterRepository) Upsert(ctx context.Context, entry *domain.WaterEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	filter := bson.M{"userId": entry.UserID, "date": entry.Date}
	update := bson.M{"$set": bson.M{
		"waterVolume":     entry.WaterVolume,
		"goalWaterVolume": entry.GoalWaterVolume,
		"updatedAt":       entry.UpdatedAt,
	}}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *mongoWaterRepository) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.WaterEntry, error) {
	var entry domain.WaterEntry
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "date": date}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *mongoWaterRepository) ListByUserRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WaterEntry, error) {
	filter := bson.M{"userId": userID, "date": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.WaterEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
