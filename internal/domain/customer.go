package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserGoal is the customer's stated training goal.
type UserGoal string

const (
	GoalBeActive   UserGoal = "BE_ACTIVE"
	GoalBeStrong   UserGoal = "BE_STRONG"
	GoalLoseWeight UserGoal = "LOSE_WEIGHT"
)

// FitnessLevel grades the customer's current shape.
type FitnessLevel string

const (
	LevelNovice       FitnessLevel = "NOVICE"
	LevelBeginner     FitnessLevel = "BEGINNER"
	LevelIntermediate FitnessLevel = "INTERMEDIATE"
	LevelAdvanced     FitnessLevel = "ADVANCED"
	LevelAthlete      FitnessLevel = "ATHLETE"
)

// ExercisePreference is the customer's preferred activity type.
type ExercisePreference string

const (
	PreferenceJogging    ExercisePreference = "JOGGING"
	PreferenceWalking    ExercisePreference = "WALKING"
	PreferenceWeightlift ExercisePreference = "WEIGHTLIFT"
	PreferenceCardio     ExercisePreference = "CARDIO"
	PreferenceYoga       ExercisePreference = "YOGA"
	PreferenceOther      ExercisePreference = "OTHER"
)

// Customer is the customer profile of a user. Coaches are linked through
// Assignment records.
type Customer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Goal         UserGoal           `bson:"goal,omitempty" json:"goal,omitempty"`
	FitnessLevel FitnessLevel       `bson:"fitnessLevel,omitempty" json:"fitnessLevel,omitempty"`
	Preference   ExercisePreference `bson:"preference,omitempty" json:"preference,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
