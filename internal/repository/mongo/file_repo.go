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
)

const fileCollectionName = "file_entities"

type mongoFileEntityRepository struct {
	collection *mongo.Collection
}

// NewMongoFileEntityRepository creates a new file metadata repository
// backed by MongoDB.
func NewMongoFileEntityRepository(db *mongo.Database) repository.FileEntityRepository {
	return &mongoFileEntityRepository{collection: db.Collection(fileCollectionName)}
}

func (r *mongoFileEntityRepository) Create(ctx context.Context, file *domain.FileEntity) (primitive.ObjectID, error) {
	if file.Filename == "" {
		return primitive.NilObjectID, errors.New("filename is required")
	}

	file.ID = primitive.NewObjectID()
	file.UploadedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, file)
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

func (r *mongoFileEntityRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FileEntity, error) {
	var file domain.FileEntity
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&file)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *mongoFileEntityRepository) GetByFilename(ctx context.Context, filename string) (*domain.FileEntity, error) {
	var file domain.FileEntity
	err := r.collection.FindOne(ctx, bson.M{"filename": filename}).Decode(&file)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *mongoFileEntityRepository) ListByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) ([]domain.FileEntity, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"exerciseId": exerciseID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var files []domain.FileEntity
	if err := cursor.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (r *mongoFileEntityRepository) Update(ctx context.Context, file *domain.FileEntity) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": file.ID}, file)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoFileEntityRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
