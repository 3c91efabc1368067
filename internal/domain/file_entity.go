package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileEntity stores metadata about an uploaded object. The file itself
// lives in S3 under Filename (a generated unique key).
type FileEntity struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Filename   string              `bson:"filename" json:"filename"` // Unique S3 object key
	ExerciseID *primitive.ObjectID `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	UploadedAt time.Time           `bson:"uploadedAt" json:"uploadedAt"`
}
