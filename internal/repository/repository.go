package repository

import (
	"context"
	"time"

	"fitpulse/fitness-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer. Services translate these into
// their own error kinds.
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, page, size int) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CoachRepository persists coach profiles.
type CoachRepository interface {
	Create(ctx context.Context, coach *domain.Coach) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Coach, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Coach, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Coach, error)
	List(ctx context.Context, page, size int) ([]domain.Coach, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, coach *domain.Coach) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CustomerRepository persists customer profiles.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Customer, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Customer, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Customer, error)
	List(ctx context.Context, page, size int) ([]domain.Customer, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AssignmentRepository persists the coach<->customer links. Create returns
// ErrConflict when the pair already exists (the unique index backs this up
// under concurrent requests); Delete returns ErrNotFound when it doesn't.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) (primitive.ObjectID, error)
	Delete(ctx context.Context, coachID, customerID primitive.ObjectID) error
	Exists(ctx context.Context, coachID, customerID primitive.ObjectID) (bool, error)
	ListCustomerIDsByCoach(ctx context.Context, coachID primitive.ObjectID, page, size int) ([]primitive.ObjectID, error)
	CountByCoach(ctx context.Context, coachID primitive.ObjectID) (int64, error)
	ListCoachIDsByCustomer(ctx context.Context, customerID primitive.ObjectID, page, size int) ([]primitive.ObjectID, error)
	CountByCustomer(ctx context.Context, customerID primitive.ObjectID) (int64, error)
	DeleteByCoach(ctx context.Context, coachID primitive.ObjectID) error
	DeleteByCustomer(ctx context.Context, customerID primitive.ObjectID) error
}

// WorkoutFilter narrows workout listings. Name and TypeConnection are
// case-insensitive substring matches; the time bounds are inclusive.
type WorkoutFilter struct {
	CoachID        *primitive.ObjectID // Coach view: own template workouts + unowned ones
	CustomerID     *primitive.ObjectID // Customer view: own coach-led workouts
	Name           string
	TypeConnection string
	TimeStartFrom  *time.Time
	TimeStartTo    *time.Time
}

// WorkoutRepository persists workouts. List orders by start time ascending.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	List(ctx context.Context, filter WorkoutFilter, page, size int) ([]domain.Workout, error)
	Count(ctx context.Context, filter WorkoutFilter) (int64, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ExerciseWorkoutRepository persists the ordered exercise entries of
// workouts. ListByWorkoutID returns entries sorted by NumOrder ascending,
// stable for ties; the sort is applied on every fetch.
type ExerciseWorkoutRepository interface {
	Create(ctx context.Context, ew *domain.ExerciseWorkout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseWorkout, error)
	ListByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseWorkout, error)
	Update(ctx context.Context, ew *domain.ExerciseWorkout) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) error
	DeleteByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) error
}

// ChatRepository persists chats. FindDialogueByUsers returns ErrNotFound
// when no DIALOGUE chat links the two users.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Chat, error)
	FindDialogueByUsers(ctx context.Context, userID1, userID2 primitive.ObjectID) (*domain.Chat, error)
	ListDialoguesByUser(ctx context.Context, userID primitive.ObjectID, page, size int) ([]domain.Chat, error)
	CountDialoguesByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	SetLastTimestamp(ctx context.Context, chatID primitive.ObjectID, ts time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MessageRepository persists chat messages. ListByChatID orders by
// timestamp descending (newest first).
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Message, error)
	ListByChatID(ctx context.Context, chatID primitive.ObjectID, page, size int) ([]domain.Message, error)
	CountByChatID(ctx context.Context, chatID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, message *domain.Message) error
	DeleteByChatID(ctx context.Context, chatID primitive.ObjectID) error
}

// ExerciseFilter narrows exercise searches (substring, case-insensitive).
type ExerciseFilter struct {
	UserID *primitive.ObjectID // Owner; nil lists the shared library too
	Name   string
	Muscle string
	Type   string
}

// ExerciseRepository persists exercise library entries.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	Search(ctx context.Context, filter ExerciseFilter, page, size int) ([]domain.Exercise, error)
	Count(ctx context.Context, filter ExerciseFilter) (int64, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// FeedbackRepository persists coach feedback. Create returns ErrConflict
// for a duplicate (customer, coach) pair.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) (primitive.ObjectID, error)
	GetByPair(ctx context.Context, coachID, customerID primitive.ObjectID) (*domain.Feedback, error)
	Exists(ctx context.Context, coachID, customerID primitive.ObjectID) (bool, error)
	ListByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Feedback, error)
	Update(ctx context.Context, feedback *domain.Feedback) error
}

// FileEntityRepository persists upload metadata.
type FileEntityRepository interface {
	Create(ctx context.Context, file *domain.FileEntity) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FileEntity, error)
	GetByFilename(ctx context.Context, filename string) (*domain.FileEntity, error)
	ListByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) ([]domain.FileEntity, error)
	Update(ctx context.Context, file *domain.FileEntity) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// DiaryRepository persists diary entries, one per (user, date).
type DiaryRepository interface {
	Create(ctx context.Context, entry *domain.DiaryEntry) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DiaryEntry, error)
	GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.DiaryEntry, error)
	ListByUserRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.DiaryEntry, error)
	Update(ctx context.Context, entry *domain.DiaryEntry) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// StepsRepository persists daily step counts. Upsert replaces the entry for
// the same (user, date).
type StepsRepository interface {
	Upsert(ctx context.Context, entry *domain.StepsEntry) error
	GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.StepsEntry, error)
	ListByUserRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.StepsEntry, error)
}

// WaterRepository persists daily water intake.
type WaterRepository interface {
	Upsert(ctx context.Context, entry *domain.WaterEntry) error
	GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.WaterEntry, error)
	ListByUserRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WaterEntry, error)
}

// ProductRepository persists store products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	List(ctx context.Context, category domain.ProductCategory, page, size int) ([]domain.Product, error)
	Count(ctx context.Context, category domain.ProductCategory) (int64, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
