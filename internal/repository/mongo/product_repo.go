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

const productCollectionName = "products"

type mongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new product repository backed by MongoDB.
func NewMongoProductRepository(db *mongo.Database) repository.ProductRepository {
	return &mongoProductRepository{collection: db.Collection(productCollectionName)}
}

func (r *mongoProductRepository) Create(ctx context.Context, product *domain.Product) (primitive.ObjectID, error) {
	product.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Images == nil {
		product.Images = []string{}
	}

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *mongoProductRepository) List(ctx context.Context, category domain.ProductCategory, page, size int) ([]domain.Product, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(page * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoProductRepository) Count(ctx context.Context, category domain.ProductCategory) (int64, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *mongoProductRepository) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now().UTC()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
