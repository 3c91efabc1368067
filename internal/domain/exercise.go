package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a library entry describing a single movement. UserID is nil
// for built-in library exercises; only the owner may mutate the rest.
type Exercise struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID           *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Name             string              `bson:"name" json:"name"`
	Muscle           string              `bson:"muscle,omitempty" json:"muscle,omitempty"`
	AdditionalMuscle string              `bson:"additionalMuscle,omitempty" json:"additionalMuscle,omitempty"`
	Type             string              `bson:"type,omitempty" json:"type,omitempty"`
	Equipment        string              `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Difficulty       string              `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Description      string              `bson:"description,omitempty" json:"description,omitempty"`
	OriginalURI      string              `bson:"originalUri,omitempty" json:"originalUri,omitempty"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}
