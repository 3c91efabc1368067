package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Speciality tags what kind of clients a coach works with.
type Speciality string

const (
	SpecialityKids  Speciality = "KIDS"
	SpecialityAdult Speciality = "ADULT"
	SpecialityYoga  Speciality = "YOGA"
)

// DefaultCoachRating is used until the first feedback arrives.
const DefaultCoachRating = 5.0

// Coach is the coach profile of a user. Customers are linked through
// Assignment records, never embedded here.
type Coach struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	Speciality Speciality         `bson:"speciality" json:"speciality"`
	Rating     float64            `bson:"rating" json:"rating"` // Average feedback score
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
