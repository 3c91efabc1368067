package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sex is the optional biological sex attribute on a user.
type Sex string

const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
)

// Role describes what a user can act as. It is never stored: it is derived
// from which profiles (Coach and/or Customer) exist for the user.
type Role string

const (
	RoleCoach    Role = "COACH"
	RoleCustomer Role = "CUSTOMER"
	RoleBoth     Role = "BOTH"
	RoleNone     Role = "NONE"
)

// User is the identity aggregate. Coach and Customer profiles reference it
// by UserID; a user holding neither profile has RoleNone.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"` // Unique
	Name         string             `bson:"name" json:"name"`
	Sex          Sex                `bson:"sex,omitempty" json:"sex,omitempty"`
	BirthDate    *time.Time         `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose via JSON
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DeriveRole computes the role tag from profile presence.
func DeriveRole(coach *Coach, customer *Customer) Role {
	switch {
	case coach != nil && customer != nil:
		return RoleBoth
	case coach != nil:
		return RoleCoach
	case customer != nil:
		return RoleCustomer
	default:
		return RoleNone
	}
}
