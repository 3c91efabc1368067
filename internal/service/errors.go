package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every service error wraps exactly one of these so the API
// layer can map it to a status code with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")

	ErrUserNotFound      = fmt.Errorf("%w: user", ErrNotFound)
	ErrUserAlreadyExists = fmt.Errorf("%w: user with this email already exists", ErrConflict)

	ErrCoachNotFound         = fmt.Errorf("%w: coach", ErrNotFound)
	ErrCoachProfileExists    = fmt.Errorf("%w: coach profile already exists", ErrConflict)
	ErrCustomerNotFound      = fmt.Errorf("%w: customer", ErrNotFound)
	ErrCustomerProfileExists = fmt.Errorf("%w: customer profile already exists", ErrConflict)

	ErrAlreadyAssigned = fmt.Errorf("%w: coach and customer are already assigned", ErrConflict)
	ErrNotAssigned     = fmt.Errorf("%w: coach and customer are not assigned yet", ErrConflict)

	ErrWorkoutNotFound      = fmt.Errorf("%w: workout", ErrNotFound)
	ErrWorkoutAccessDenied  = fmt.Errorf("%w: workout belongs to someone else", ErrForbidden)
	ErrWorkoutOwnerRequired = fmt.Errorf("%w: workout needs a coach or a customer", ErrBadRequest)

	ErrExerciseWorkoutNotFound = fmt.Errorf("%w: workout exercise", ErrNotFound)

	ErrChatNotFound     = fmt.Errorf("%w: chat", ErrNotFound)
	ErrChatAccessDenied = fmt.Errorf("%w: not a member of this chat", ErrForbidden)

	ErrMessageNotFound   = fmt.Errorf("%w: message", ErrNotFound)
	ErrMessageSenderOnly = fmt.Errorf("%w: only the sender may edit a message", ErrForbidden)
	ErrMessageEmpty      = fmt.Errorf("%w: message needs content or attachments", ErrBadRequest)

	ErrExerciseNotFound     = fmt.Errorf("%w: exercise", ErrNotFound)
	ErrExerciseAccessDenied = fmt.Errorf("%w: exercise belongs to someone else", ErrForbidden)

	ErrFeedbackNotFound     = fmt.Errorf("%w: feedback", ErrNotFound)
	ErrFeedbackExists       = fmt.Errorf("%w: feedback for this coach already exists", ErrConflict)
	ErrFeedbackNeedsPair    = fmt.Errorf("%w: feedback requires an assignment", ErrForbidden)
	ErrFeedbackScoreInvalid = fmt.Errorf("%w: score must be between 1 and 5", ErrBadRequest)

	ErrFileNotFound = fmt.Errorf("%w: file", ErrNotFound)

	ErrDiaryEntryNotFound = fmt.Errorf("%w: diary entry", ErrNotFound)

	ErrProductNotFound = fmt.Errorf("%w: product", ErrNotFound)
)
