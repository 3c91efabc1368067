package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TypeConnection says whether a workout happens online or in person.
type TypeConnection string

const (
	ConnectionOnline  TypeConnection = "ONLINE"
	ConnectionOffline TypeConnection = "OFFLINE"
)

// Stage labels an exercise entry's place in a session. It is a display tag
// only; ordering comes solely from NumOrder.
type Stage string

const (
	StageWarmUp   Stage = "WARM_UP"
	StageMain     Stage = "MAIN"
	StageCoolDown Stage = "COOL_DOWN"
)

// Workout is a scheduled training session. At least one of CoachID /
// CustomerID is set at creation and both are immutable afterwards. When both
// are set the workout owns a WORKOUT-type chat via ChatID.
type Workout struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CoachID        *primitive.ObjectID `bson:"coachId,omitempty" json:"coachId,omitempty"`
	CustomerID     *primitive.ObjectID `bson:"customerId,omitempty" json:"customerId,omitempty"`
	ChatID         *primitive.ObjectID `bson:"chatId,omitempty" json:"chatId,omitempty"`
	Name           string              `bson:"name" json:"name"`
	TypeConnection TypeConnection      `bson:"typeConnection,omitempty" json:"typeConnection,omitempty"`
	TimeStart      *time.Time          `bson:"timeStart,omitempty" json:"timeStart,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// ExerciseWorkout is one exercise instance inside a workout. It has no owner
// fields of its own; authorization always resolves through the parent
// workout.
type ExerciseWorkout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID   primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	NumOrder    int                `bson:"numOrder" json:"numOrder"` // Total order within the workout
	NumSets     int                `bson:"numSets,omitempty" json:"numSets,omitempty"`
	NumSetsDone int                `bson:"numSetsDone" json:"numSetsDone"`
	NumReps     int                `bson:"numReps,omitempty" json:"numReps,omitempty"`
	Stage       Stage              `bson:"stage" json:"stage"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
