package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feeling is the mood recorded in a diary entry.
type Feeling string

const (
	FeelingAngry   Feeling = "ANGRY"
	FeelingSad     Feeling = "SAD"
	FeelingNeutral Feeling = "NEUTRAL"
	FeelingCalm    Feeling = "CALM"
	FeelingExcited Feeling = "EXCITED"
)

// Reason is what the user attributes the feeling to.
type Reason string

const (
	ReasonFamily     Reason = "FAMILY"
	ReasonSelfEsteem Reason = "SELF_ESTEEM"
	ReasonWork       Reason = "WORK"
	ReasonWeather    Reason = "WEATHER"
	ReasonSleep      Reason = "SLEEP"
	ReasonFood       Reason = "FOOD"
	ReasonSocial     Reason = "SOCIAL"
)

// DiaryEntry is one mood record per user per calendar day. Date is stored
// truncated to midnight UTC so the (userId, date) unique index works.
type DiaryEntry struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID  `bson:"userId" json:"userId"`
	Date         time.Time           `bson:"date" json:"date"`
	Feeling      Feeling             `bson:"feeling,omitempty" json:"feeling,omitempty"`
	Reason       Reason              `bson:"reason,omitempty" json:"reason,omitempty"`
	Note         string              `bson:"note,omitempty" json:"note,omitempty"`
	FileEntityID *primitive.ObjectID `bson:"fileEntityId,omitempty" json:"fileEntityId,omitempty"` // Optional voice note
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
