package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new workout repository backed by MongoDB.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{collection: db.Collection(workoutCollectionName)}
}

func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// buildFilter translates a WorkoutFilter into a Mongo query.
//
// Coach view: the coach's own template workouts (customer not yet bound)
// plus fully unowned ones. Customer view: the customer's workouts that have
// a coach. A nil comparison matches both absent and null fields, which is
// exactly the "unset owner" meaning here.
func buildFilter(filter repository.WorkoutFilter) bson.M {
	query := bson.M{}

	if filter.CoachID != nil {
		query["$or"] = bson.A{
			bson.M{"coachId": *filter.CoachID, "customerId": nil},
			bson.M{"coachId": nil, "customerId": nil},
		}
	} else if filter.CustomerID != nil {
		query["coachId"] = bson.M{"$ne": nil}
		query["customerId"] = *filter.CustomerID
	}

	if filter.Name != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.Name), "$options": "i"}
	}
	if filter.TypeConnection != "" {
		query["typeConnection"] = bson.M{"$regex": regexp.QuoteMeta(filter.TypeConnection), "$options": "i"}
	}

	timeRange := bson.M{}
	if filter.TimeStartFrom != nil {
		timeRange["$gte"] = *filter.TimeStartFrom
	}
	if filter.TimeStartTo != nil {
		timeRange["$lte"] = *filter.TimeStartTo
	}
	if len(timeRange) > 0 {
		query["timeStart"] = timeRange
	}

	return query
}

// List returns workouts matching the filter, ordered by start time ascending.
func (r *mongoWorkoutRepository) List(ctx context.Context, filter repository.WorkoutFilter, page, size int) ([]domain.Workout, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timeStart", Value: 1}}).
		SetSkip(int64(page * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workouts []domain.Workout
	if err := cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *mongoWorkoutRepository) Count(ctx context.Context, filter repository.WorkoutFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, buildFilter(filter))
}

func (r *mongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	workout.UpdatedAt = time.Now().UTC()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": workout.ID}, workout)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoWorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
