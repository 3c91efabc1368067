package mongo

import (
	"context"
	"errors"
	"sort"
	"time"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const exerciseWorkoutCollectionName = "exercise_workouts"

type mongoExerciseWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseWorkoutRepository creates a new exercise-entry repository
// backed by MongoDB.
func NewMongoExerciseWorkoutRepository(db *mongo.Database) repository.ExerciseWorkoutRepository {
	return &mongoExerciseWorkoutRepository{collection: db.Collection(exerciseWorkoutCollectionName)}
}

func (r *mongoExerciseWorkoutRepository) Create(ctx context.Context, ew *domain.ExerciseWorkout) (primitive.ObjectID, error) {
	ew.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	ew.CreatedAt = now
	ew.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, ew)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoExerciseWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseWorkout, error) {
	var ew domain.ExerciseWorkout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ew)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &ew, nil
}

// ListByWorkoutID returns the workout's entries ordered by numOrder. The
// stable sort happens here, in application code, on every fetch: insertion
// order in the collection carries no meaning.
func (r *mongoExerciseWorkoutRepository) ListByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseWorkout, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"workoutId": workoutID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.ExerciseWorkout
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].NumOrder < entries[j].NumOrder
	})
	return entries, nil
}

func (r *mongoExerciseWorkoutRepository) Update(ctx context.Context, ew *domain.ExerciseWorkout) error {
	ew.UpdatedAt = time.Now().UTC()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": ew.ID}, ew)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoExerciseWorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoExerciseWorkoutRepository) DeleteByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"workoutId": workoutID})
	return err
}

func (r *mongoExerciseWorkoutRepository) DeleteByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"exerciseId": exerciseID})
	return err
}
