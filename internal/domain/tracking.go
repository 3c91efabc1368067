package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StepsEntry is a user's step count for one calendar day.
type StepsEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Date      time.Time          `bson:"date" json:"date"`
	Steps     int                `bson:"steps" json:"steps"`
	GoalSteps int                `bson:"goalSteps" json:"goalSteps"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WaterEntry is a user's water intake (ml) for one calendar day.
type WaterEntry struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Date            time.Time          `bson:"date" json:"date"`
	WaterVolume     int                `bson:"waterVolume" json:"waterVolume"`
	GoalWaterVolume int                `bson:"goalWaterVolume" json:"goalWaterVolume"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
