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

const chatCollectionName = "chats"

type mongoChatRepository struct {
	collection *mongo.Collection
}

// NewMongoChatRepository creates a new chat repository backed by MongoDB.
func NewMongoChatRepository(db *mongo.Database) repository.ChatRepository {
	return &mongoChatRepository{collection: db.Collection(chatCollectionName)}
}

func (r *mongoChatRepository) Create(ctx context.Context, chat *domain.Chat) (primitive.ObjectID, error) {
	chat.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	chat.CreatedAt = now
	if chat.LastTimestamp.IsZero() {
		chat.LastTimestamp = now
	}

	result, err := r.collection.InsertOne(ctx, chat)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoChatRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&chat)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// FindDialogueByUsers looks up the unique DIALOGUE chat whose member set is
// exactly the two users. WORKOUT chats never match, so the same pair can
// share any number of workout chats alongside their single dialogue.
func (r *mongoChatRepository) FindDialogueByUsers(ctx context.Context, userID1, userID2 primitive.ObjectID) (*domain.Chat, error) {
	filter := bson.M{
		"type":    domain.ChatDialogue,
		"userIds": bson.M{"$size": 2, "$all": bson.A{userID1, userID2}},
	}

	var chat domain.Chat
	err := r.collection.FindOne(ctx, filter).Decode(&chat)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// ListDialoguesByUser returns the user's dialogue chats, most recently
// active first.
func (r *mongoChatRepository) ListDialoguesByUser(ctx context.Context, userID primitive.ObjectID, page, size int) ([]domain.Chat, error) {
	filter := bson.M{"type": domain.ChatDialogue, "userIds": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "lastTimestamp", Value: -1}}).
		SetSkip(int64(page * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var chats []domain.Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *mongoChatRepository) CountDialoguesByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"type": domain.ChatDialogue, "userIds": userID})
}

func (r *mongoChatRepository) SetLastTimestamp(ctx context.Context, chatID primitive.ObjectID, ts time.Time) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": chatID},
		bson.M{"$set": bson.M{"lastTimestamp": ts}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoChatRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
