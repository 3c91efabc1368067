package service

import (
	"context"
	"errors"
	"time"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateMessageInput carries a new chat message. Attachments arrive as
// stored filenames and are resolved to download URLs before persisting.
type CreateMessageInput struct {
	ChatID        primitive.ObjectID
	Content       string
	Filenames     []string
	VoiceFilename string
}

// --- Service Interface ---
type MessageService interface {
	Create(ctx context.Context, principal *Principal, input CreateMessageInput) (*domain.Message, error)
	GetByID(ctx context.Context, principal *Principal, id primitive.ObjectID) (*domain.Message, error)
	ListByChat(ctx context.Context, principal *Principal, chatID primitive.ObjectID, page, size int) ([]domain.Message, int64, error)
	// UpdateContent edits the message text; only the sender may do it.
	UpdateContent(ctx context.Context, principal *Principal, id primitive.ObjectID, content string) (*domain.Message, error)
}

// --- Service Implementation ---

type messageService struct {
	messageRepo repository.MessageRepository
	chatRepo    repository.ChatRepository
	chats       ChatService
	files       FileService
}

// NewMessageService creates a new instance of messageService.
func NewMessageService(
	messageRepo repository.MessageRepository,
	chatRepo repository.ChatRepository,
	chats ChatService,
	files FileService,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		chatRepo:    chatRepo,
		chats:       chats,
		files:       files,
	}
}

func (s *messageService) Create(ctx context.Context, principal *Principal, input CreateMessageInput) (*domain.Message, error) {
	if input.Content == "" && len(input.Filenames) == 0 && input.VoiceFilename == "" {
		return nil, ErrMessageEmpty
	}

	// Membership gate through the chat service.
	chat, err := s.chats.GetByID(ctx, principal, input.ChatID)
	if err != nil {
		return nil, err
	}

	fileURLs, err := s.files.ResolveURLs(ctx, input.Filenames)
	if err != nil {
		return nil, err
	}
	voiceURL := ""
	if input.VoiceFilename != "" {
		voiceURL, err = s.files.GetURL(ctx, input.VoiceFilename)
		if err != nil {
			return nil, err
		}
	}

	message := &domain.Message{
		ChatID:    chat.ID,
		SenderID:  principal.UserID(),
		Content:   input.Content,
		FilesURLs: fileURLs,
		VoiceURL:  voiceURL,
	}
	messageID, err := s.messageRepo.Create(ctx, message)
	if err != nil {
		return nil, err
	}
	message.ID = messageID

	// Every new message moves the chat up in the dialogue listing.
	if err := s.chatRepo.SetLastTimestamp(ctx, chat.ID, time.Now().UTC()); err != nil {
		return nil, err
	}

	return message, nil
}

func (s *messageService) GetByID(ctx context.Context, principal *Principal, id primitive.ObjectID) (*domain.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	// Reading a message requires membership in its chat.
	if _, err := s.chats.GetByID(ctx, principal, message.ChatID); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *messageService) ListByChat(ctx context.Context, principal *Principal, chatID primitive.ObjectID, page, size int) ([]domain.Message, int64, error) {
	chat, err := s.chats.GetByID(ctx, principal, chatID)
	if err != nil {
		return nil, 0, err
	}

	messages, err := s.messageRepo.ListByChatID(ctx, chat.ID, page, size)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.messageRepo.CountByChatID(ctx, chat.ID)
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (s *messageService) UpdateContent(ctx context.Context, principal *Principal, id primitive.ObjectID, content string) (*domain.Message, error) {
	message, err := s.GetByID(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if message.SenderID != principal.UserID() {
		return nil, ErrMessageSenderOnly
	}

	message.Content = content
	if err := s.messageRepo.Update(ctx, message); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return message, nil
}
