package service

import (
	"context"
	"errors"
	"time"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Service Interface ---
type ChatService interface {
	// CreateDialogue returns the existing DIALOGUE chat between the two
	// users or creates one. Calling it twice for the same pair yields the
	// same chat.
	CreateDialogue(ctx context.Context, userID1, userID2 primitive.ObjectID) (*domain.Chat, error)
	// CreateWorkoutChat always creates a fresh WORKOUT chat, one per
	// owning workout.
	CreateWorkoutChat(ctx context.Context, userIDs []primitive.ObjectID) (*domain.Chat, error)

	GetByID(ctx context.Context, principal *Principal, chatID primitive.ObjectID) (*domain.Chat, error)
	GetDialogueWith(ctx context.Context, principal *Principal, otherUserID primitive.ObjectID) (*domain.Chat, error)
	ListByUser(ctx context.Context, principal *Principal, page, size int) ([]domain.Chat, int64, error)
	Delete(ctx context.Context, principal *Principal, chatID primitive.ObjectID) error
}

// --- Service Implementation ---

type chatService struct {
	chatRepo    repository.ChatRepository
	messageRepo repository.MessageRepository
}

// NewChatService creates a new instance of chatService.
func NewChatService(chatRepo repository.ChatRepository, messageRepo repository.MessageRepository) ChatService {
	return &chatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
	}
}

func (s *chatService) CreateDialogue(ctx context.Context, userID1, userID2 primitive.ObjectID) (*domain.Chat, error) {
	existing, err := s.chatRepo.FindDialogueByUsers(ctx, userID1, userID2)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	chat := &domain.Chat{
		Type:          domain.ChatDialogue,
		UserIDs:       []primitive.ObjectID{userID1, userID2},
		LastTimestamp: time.Now().UTC(),
	}
	chatID, err := s.chatRepo.Create(ctx, chat)
	if err != nil {
		return nil, err
	}
	chat.ID = chatID
	return chat, nil
}

func (s *chatService) CreateWorkoutChat(ctx context.Context, userIDs []primitive.ObjectID) (*domain.Chat, error) {
	chat := &domain.Chat{
		Type:          domain.ChatWorkout,
		UserIDs:       userIDs,
		LastTimestamp: time.Now().UTC(),
	}
	chatID, err := s.chatRepo.Create(ctx, chat)
	if err != nil {
		return nil, err
	}
	chat.ID = chatID
	return chat, nil
}

// GetByID loads the chat and enforces membership.
func (s *chatService) GetByID(ctx context.Context, principal *Principal, chatID primitive.ObjectID) (*domain.Chat, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	if !chat.HasMember(principal.UserID()) {
		return nil, ErrChatAccessDenied
	}
	return chat, nil
}

func (s *chatService) GetDialogueWith(ctx context.Context, principal *Principal, otherUserID primitive.ObjectID) (*domain.Chat, error) {
	chat, err := s.chatRepo.FindDialogueByUsers(ctx, principal.UserID(), otherUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return chat, nil
}

// ListByUser returns the caller's DIALOGUE chats ordered by last activity,
// newest first. WORKOUT chats are reached through their workout only.
func (s *chatService) ListByUser(ctx context.Context, principal *Principal, page, size int) ([]domain.Chat, int64, error) {
	chats, err := s.chatRepo.ListDialoguesByUser(ctx, principal.UserID(), page, size)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.chatRepo.CountDialoguesByUser(ctx, principal.UserID())
	if err != nil {
		return nil, 0, err
	}
	return chats, total, nil
}

// Delete removes the chat and all its messages. Membership is re-checked
// even when called from the workout cascade.
func (s *chatService) Delete(ctx context.Context, principal *Principal, chatID primitive.ObjectID) error {
	chat, err := s.GetByID(ctx, principal, chatID)
	if err != nil {
		return err
	}

	if err := s.messageRepo.DeleteByChatID(ctx, chat.ID); err != nil {
		return err
	}
	if err := s.chatRepo.Delete(ctx, chat.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrChatNotFound
		}
		return err
	}
	return nil
}
