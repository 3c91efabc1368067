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

const assignmentCollectionName = "assignments"

// mongoAssignmentRepository stores the coach<->customer relation as one
// document per pair. Both directions of the relation are answered from the
// same records, so the graph can never go asymmetric.
type mongoAssignmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssignmentRepository creates a new assignment repository backed by MongoDB.
func NewMongoAssignmentRepository(db *mongo.Database) repository.AssignmentRepository {
	return &mongoAssignmentRepository{collection: db.Collection(assignmentCollectionName)}
}

// Create inserts the pair. The unique (coachId, customerId) index maps a
// lost race to ErrConflict, same as a plain duplicate.
func (r *mongoAssignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) (primitive.ObjectID, error) {
	assignment.ID = primitive.NewObjectID()
	assignment.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, assignment)
	if err != nil {
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

// Delete removes the pair; ErrNotFound when it was never assigned.
func (r *mongoAssignmentRepository) Delete(ctx context.Context, coachID, customerID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"coachId": coachID, "customerId": customerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoAssignmentRepository) Exists(ctx context.Context, coachID, customerID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx,
		bson.M{"coachId": coachID, "customerId": customerID},
		options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *mongoAssignmentRepository) ListCustomerIDsByCoach(ctx context.Context, coachID primitive.ObjectID, page, size int) ([]primitive.ObjectID, error) {
	return r.listSide(ctx, bson.M{"coachId": coachID}, "customerId", page, size)
}

func (r *mongoAssignmentRepository) CountByCoach(ctx context.Context, coachID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"coachId": coachID})
}

func (r *mongoAssignmentRepository) ListCoachIDsByCustomer(ctx context.Context, customerID primitive.ObjectID, page, size int) ([]primitive.ObjectID, error) {
	return r.listSide(ctx, bson.M{"customerId": customerID}, "coachId", page, size)
}

func (r *mongoAssignmentRepository) CountByCustomer(ctx context.Context, customerID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"customerId": customerID})
}

func (r *mongoAssignmentRepository) DeleteByCoach(ctx context.Context, coachID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"coachId": coachID})
	return err
}

func (r *mongoAssignmentRepository) DeleteByCustomer(ctx context.Context, customerID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"customerId": customerID})
	return err
}

// listSide pulls one side of the relation, ordered by creation time.
func (r *mongoAssignmentRepository) listSide(ctx context.Context, filter bson.M, field string, page, size int) ([]primitive.ObjectID, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip(int64(page * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []domain.Assignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(assignments))
	for _, a := range assignments {
		if field == "customerId" {
			ids = append(ids, a.CustomerID)
		} else {
			ids = append(ids, a.CoachID)
		}
	}
	return ids, nil
}
