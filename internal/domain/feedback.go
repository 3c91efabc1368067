package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is a customer's rating of a coach. One per (customer, coach)
// pair; scores feed the coach's derived rating.
type Feedback struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID primitive.ObjectID `bson:"customerId" json:"customerId"`
	CoachID    primitive.ObjectID `bson:"coachId" json:"coachId"`
	Score      int                `bson:"score" json:"score"` // 1..5
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
