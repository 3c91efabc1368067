package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment is the unique link between one Coach and one Customer.
// Existence is its only state; a unique compound index on
// (coachId, customerId) enforces the at-most-once invariant even when two
// requests race past the existence check.
type Assignment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID    primitive.ObjectID `bson:"coachId" json:"coachId"`
	CustomerID primitive.ObjectID `bson:"customerId" json:"customerId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
