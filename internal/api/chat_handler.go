package api

import (
	"net/http"
	"time"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler holds the chat and message dependencies.
type ChatHandler struct {
	chatService    service.ChatService
	messageService service.MessageService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService, messageService service.MessageService) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		messageService: messageService,
	}
}

// --- Request/Response Structs ---

type ChatResponse struct {
	ID            string          `json:"id"`
	Type          domain.ChatType `json:"type"`
	UserIDs       []string        `json:"userIds"`
	LastTimestamp time.Time       `json:"lastTimestamp"`
}

type MessageResponse struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chatId"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content,omitempty"`
	FilesURLs []string  `json:"filesUrls"`
	VoiceURL  string    `json:"voiceUrl,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type CreateMessageRequest struct {
	Content       string   `json:"content"`
	Filenames     []string `json:"filenames"`
	VoiceFilename string   `json:"voiceFilename"`
}

type UpdateMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// --- Handler Methods ---

// List returns the caller's dialogue chats ordered by last activity.
func (h *ChatHandler) List(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	page, size, ok := pagination(c)
	if !ok {
		return
	}

	chats, total, err := h.chatService.ListByUser(c.Request.Context(), principal, page, size)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	items := make([]ChatResponse, len(chats))
	for i := range chats {
		items[i] = MapChatToResponse(&chats[i])
	}
	c.JSON(http.StatusOK, PageResponse{Items: items, Total: total, Page: page, Size: size})
}

// GetByID returns one chat the caller participates in.
func (h *ChatHandler) GetByID(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	chat, err := h.chatService.GetByID(c.Request.Context(), principal, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapChatToResponse(chat))
}

// GetDialogueWith returns the dialogue between the caller and another user.
func (h *ChatHandler) GetDialogueWith(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	otherUserID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	chat, err := h.chatService.GetDialogueWith(c.Request.Context(), principal, otherUserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapChatToResponse(chat))
}

// Delete removes a chat and its messages.
func (h *ChatHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.chatService.Delete(c.Request.Context(), principal, id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMessages returns a chat's messages, newest first.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	chatID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	page, size, ok := pagination(c)
	if !ok {
		return
	}

	messages, total, err := h.messageService.ListByChat(c.Request.Context(), principal, chatID, page, size)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	items := make([]MessageResponse, len(messages))
	for i := range messages {
		items[i] = MapMessageToResponse(&messages[i])
	}
	c.JSON(http.StatusOK, PageResponse{Items: items, Total: total, Page: page, Size: size})
}

// CreateMessage posts a message into a chat.
func (h *ChatHandler) CreateMessage(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	chatID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.messageService.Create(c.Request.Context(), principal, service.CreateMessageInput{
		ChatID:        chatID,
		Content:       req.Content,
		Filenames:     req.Filenames,
		VoiceFilename: req.VoiceFilename,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapMessageToResponse(message))
}

// GetMessage returns one message.
func (h *ChatHandler) GetMessage(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	message, err := h.messageService.GetByID(c.Request.Context(), principal, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapMessageToResponse(message))
}

// UpdateMessage edits the text of the caller's own message.
func (h *ChatHandler) UpdateMessage(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.messageService.UpdateContent(c.Request.Context(), principal, id, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapMessageToResponse(message))
}

// MapChatToResponse converts a domain Chat to its DTO.
func MapChatToResponse(chat *domain.Chat) ChatResponse {
	userIDs := make([]string, len(chat.UserIDs))
	for i, id := range chat.UserIDs {
		userIDs[i] = id.Hex()
	}
	return ChatResponse{
		ID:            chat.ID.Hex(),
		Type:          chat.Type,
		UserIDs:       userIDs,
		LastTimestamp: chat.LastTimestamp,
	}
}

// MapMessageToResponse converts a domain Message to its DTO.
func MapMessageToResponse(message *domain.Message) MessageResponse {
	return MessageResponse{
		ID:        message.ID.Hex(),
		ChatID:    message.ChatID.Hex(),
		SenderID:  message.SenderID.Hex(),
		Content:   message.Content,
		FilesURLs: message.FilesURLs,
		VoiceURL:  message.VoiceURL,
		Timestamp: message.Timestamp,
	}
}
