package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatType distinguishes direct conversations from workout group chats.
// A DIALOGUE chat between the same two users is unique; a WORKOUT chat is
// 1:1 with its owning workout and never deduplicated.
type ChatType string

const (
	ChatDialogue ChatType = "DIALOGUE"
	ChatWorkout  ChatType = "WORKOUT"
)

// Chat is a conversation between a set of users.
type Chat struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Type          ChatType             `bson:"type" json:"type"`
	UserIDs       []primitive.ObjectID `bson:"userIds" json:"userIds"`
	LastTimestamp time.Time            `bson:"lastTimestamp" json:"lastTimestamp"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
}

// HasMember reports whether the given user participates in the chat.
func (c *Chat) HasMember(userID primitive.ObjectID) bool {
	for _, id := range c.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Message is a single chat entry. File and voice attachments are stored as
// resolved object-storage URLs.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChatID    primitive.ObjectID `bson:"chatId" json:"chatId"`
	SenderID  primitive.ObjectID `bson:"senderId" json:"senderId"`
	Content   string             `bson:"content,omitempty" json:"content,omitempty"`
	FilesURLs []string           `bson:"filesUrls" json:"filesUrls"`
	VoiceURL  string             `bson:"voiceUrl,omitempty" json:"voiceUrl,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
