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

const messageCollectionName = "messages"

type mongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new message repository backed by MongoDB.
func NewMongoMessageRepository(db *mongo.Database) repository.MessageRepository {
	return &mongoMessageRepository{collection: db.Collection(messageCollectionName)}
}

func (r *mongoMessageRepository) Create(ctx context.Context, message *domain.Message) (primitive.ObjectID, error) {
	message.ID = primitive.NewObjectID()
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}
	if message.FilesURLs == nil {
		message.FilesURLs = []string{}
	}

	result, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoMessageRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Message, error) {
	var message domain.Message
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&message)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *mongoMessageRepository) ListByChatID(ctx context.Context, chatID primitive.ObjectID, page, size int) ([]domain.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64(page * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(ctx, bson.M{"chatId": chatID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []domain.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *mongoMessageRepository) CountByChatID(ctx context.Context, chatID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"chatId": chatID})
}

func (r *mongoMessageRepository) Update(ctx context.Context, message *domain.Message) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": message.ID}, message)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByChatID removes every message of a chat; used by the chat-delete
// cascade.
func (r *mongoMessageRepository) DeleteByChatID(ctx context.Context, chatID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"chatId": chatID})
	return err
}
