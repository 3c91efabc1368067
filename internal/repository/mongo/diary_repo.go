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

const diaryCollectionName = "diary_entries"

type mongoDiaryRepository struct {
	collection *mongo.Collection
}

// NewMongoDiaryRepository creates a new diary repository backed by MongoDB.
func NewMongoDiaryRepository(db *mongo.Database) repository.DiaryRepository {
	return &mongoDiaryRepository{collection: db.Collection(diaryCollectionName)}
}

func (r *mongoDiaryRepository) Create(ctx context.Context, entry *domain.DiaryEntry) (primitive.ObjectID, error) {
	entry.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		// One entry per (user, date).
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoDiaryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DiaryEntry, error) {
	var entry domain.DiaryEntry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *mongoDiaryRepository) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.DiaryEntry, error) {
	var entry domain.DiaryEntry
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "date": date}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *mongoDiaryRepository) ListByUserRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.DiaryEntry, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.DiaryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mongoDiaryRepository) Update(ctx context.Context, entry *domain.DiaryEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoDiaryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
