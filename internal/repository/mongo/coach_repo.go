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

const coachCollectionName = "coaches"

type mongoCoachRepository struct {
	collection *mongo.Collection
}

// NewMongoCoachRepository creates a new coach repository backed by MongoDB.
func NewMongoCoachRepository(db *mongo.Database) repository.CoachRepository {
	return &mongoCoachRepository{collection: db.Collection(coachCollectionName)}
}

func (r *mongoCoachRepository) Create(ctx context.Context, coach *domain.Coach) (primitive.ObjectID, error) {
	coach.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	coach.CreatedAt = now
	coach.UpdatedAt = now
	if coach.Rating == 0 {
		coach.Rating = domain.DefaultCoachRating
	}

	result, err := r.collection.InsertOne(ctx, coach)
	if err != nil {
		// userId is unique: one coach profile per user.
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

func (r *mongoCoachRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Coach, error) {
	var coach domain.Coach
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&coach)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &coach, nil
}

func (r *mongoCoachRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Coach, error) {
	var coach domain.Coach
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&coach)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &coach, nil
}

func (r *mongoCoachRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Coach, error) {
	if len(ids) == 0 {
		return []domain.Coach{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var coaches []domain.Coach
	if err := cursor.All(ctx, &coaches); err != nil {
		return nil, err
	}
	return coaches, nil
}

func (r *mongoCoachRepository) List(ctx context.Context, page, size int) ([]domain.Coach, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(page * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var coaches []domain.Coach
	if err := cursor.All(ctx, &coaches); err != nil {
		return nil, err
	}
	return coaches, nil
}

func (r *mongoCoachRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *mongoCoachRepository) Update(ctx context.Context, coach *domain.Coach) error {
	coach.UpdatedAt = time.Now().UTC()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": coach.ID}, coach)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoCoachRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
