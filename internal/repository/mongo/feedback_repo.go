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

const feedbackCollectionName = "feedbacks"

type mongoFeedbackRepository struct {
	collection *mongo.Collection
}

// NewMongoFeedbackRepository creates a new feedback repository backed by MongoDB.
func NewMongoFeedbackRepository(db *mongo.Database) repository.FeedbackRepository {
	return &mongoFeedbackRepository{collection: db.Collection(feedbackCollectionName)}
}

func (r *mongoFeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) (primitive.ObjectID, error) {
	feedback.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	feedback.CreatedAt = now
	feedback.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, feedback)
	if err != nil {
		// One feedback per (customer, coach) pair.
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

func (r *mongoFeedbackRepository) GetByPair(ctx context.Context, coachID, customerID primitive.ObjectID) (*domain.Feedback, error) {
	var feedback domain.Feedback
	err := r.collection.FindOne(ctx, bson.M{"coachId": coachID, "customerId": customerID}).Decode(&feedback)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *mongoFeedbackRepository) Exists(ctx context.Context, coachID, customerID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx,
		bson.M{"coachId": coachID, "customerId": customerID},
		options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *mongoFeedbackRepository) ListByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Feedback, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"coachId": coachID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var feedbacks []domain.Feedback
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (r *mongoFeedbackRepository) Update(ctx context.Context, feedback *domain.Feedback) error {
	feedback.UpdatedAt = time.Now().UTC()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": feedback.ID}, feedback)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
