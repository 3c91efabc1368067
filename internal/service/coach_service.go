package service

import (
	"context"
	"errors"
	"time"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterUserInput carries the identity fields shared by both
// registration flows.
type RegisterUserInput struct {
	Email     string
	Name      string
	Password  string
	Sex       domain.Sex
	BirthDate *time.Time
}

// RegisterCoachInput registers a new user together with a coach profile.
type RegisterCoachInput struct {
	RegisterUserInput
	Speciality domain.Speciality
}

// --- Service Interface ---
type CoachService interface {
	// Register creates a new user with a coach profile in one go.
	Register(ctx context.Context, input RegisterCoachInput) (*Principal, error)
	// AttachProfile adds a coach profile to an existing user (role becomes
	// COACH or BOTH).
	AttachProfile(ctx context.Context, userID primitive.ObjectID, speciality domain.Speciality) (*domain.Coach, error)

	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Coach, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Coach, error)
	List(ctx context.Context, page, size int) ([]domain.Coach, int64, error)
	UpdateProfile(ctx context.Context, principal *Principal, speciality domain.Speciality) (*domain.Coach, error)

	// Assignment graph, coach side.
	ListCustomers(ctx context.Context, principal *Principal, page, size int) ([]domain.Customer, int64, error)
	AssignCustomer(ctx context.Context, principal *Principal, customerID primitive.ObjectID) (*AssignmentResult, error)
	UnassignCustomer(ctx context.Context, principal *Principal, customerID primitive.ObjectID) error
}

// --- Service Implementation ---

type coachService struct {
	userRepo       repository.UserRepository
	coachRepo      repository.CoachRepository
	customerRepo   repository.CustomerRepository
	assignmentRepo repository.AssignmentRepository
	chats          ChatService
}

// NewCoachService creates a new instance of coachService.
func NewCoachService(
	userRepo repository.UserRepository,
	coachRepo repository.CoachRepository,
	customerRepo repository.CustomerRepository,
	assignmentRepo repository.AssignmentRepository,
	chats ChatService,
) CoachService {
	return &coachService{
		userRepo:       userRepo,
		coachRepo:      coachRepo,
		customerRepo:   customerRepo,
		assignmentRepo: assignmentRepo,
		chats:          chats,
	}
}

func (s *coachService) Register(ctx context.Context, input RegisterCoachInput) (*Principal, error) {
	user, err := registerUser(ctx, s.userRepo, input.RegisterUserInput)
	if err != nil {
		return nil, err
	}

	coach, err := s.AttachProfile(ctx, user.ID, input.Speciality)
	if err != nil {
		return nil, err
	}

	return &Principal{User: user, Coach: coach}, nil
}

func (s *coachService) AttachProfile(ctx context.Context, userID primitive.ObjectID, speciality domain.Speciality) (*domain.Coach, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	coach := &domain.Coach{
		UserID:     userID,
		Speciality: speciality,
	}
	coachID, err := s.coachRepo.Create(ctx, coach)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrCoachProfileExists
		}
		return nil, err
	}
	coach.ID = coachID
	return coach, nil
}

func (s *coachService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Coach, error) {
	coach, err := s.coachRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	return coach, nil
}

func (s *coachService) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Coach, error) {
	coach, err := s.coachRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	return coach, nil
}

func (s *coachService) List(ctx context.Context, page, size int) ([]domain.Coach, int64, error) {
	coaches, err := s.coachRepo.List(ctx, page, size)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.coachRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return coaches, total, nil
}

func (s *coachService) UpdateProfile(ctx context.Context, principal *Principal, speciality domain.Speciality) (*domain.Coach, error) {
	if principal.Coach == nil {
		return nil, ErrCoachNotFound
	}

	coach := principal.Coach
	coach.Speciality = speciality
	if err := s.coachRepo.Update(ctx, coach); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	return coach, nil
}

// ListCustomers pages through the coach's assigned customers.
func (s *coachService) ListCustomers(ctx context.Context, principal *Principal, page, size int) ([]domain.Customer, int64, error) {
	if principal.Coach == nil {
		return nil, 0, ErrForbidden
	}

	ids, err := s.assignmentRepo.ListCustomerIDsByCoach(ctx, principal.Coach.ID, page, size)
	if err != nil {
		return nil, 0, err
	}
	customers, err := s.customerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.assignmentRepo.CountByCoach(ctx, principal.Coach.ID)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (s *coachService) AssignCustomer(ctx context.Context, principal *Principal, customerID primitive.ObjectID) (*AssignmentResult, error) {
	if principal.Coach == nil {
		return nil, ErrForbidden
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	return createAssignmentPair(ctx, s.userRepo, s.assignmentRepo, s.chats, principal.Coach, customer)
}

func (s *coachService) UnassignCustomer(ctx context.Context, principal *Principal, customerID primitive.ObjectID) error {
	if principal.Coach == nil {
		return ErrForbidden
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}

	return deleteAssignmentPair(ctx, s.assignmentRepo, principal.Coach, customer)
}

// registerUser creates the identity record shared by both registration
// flows. The email unique index backs up the existence check.
func registerUser(ctx context.Context, userRepo repository.UserRepository, input RegisterUserInput) (*domain.User, error) {
	if input.Email == "" || input.Name == "" || input.Password == "" {
		return nil, ErrBadRequest
	}

	taken, err := userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		Sex:          input.Sex,
		BirthDate:    input.BirthDate,
		PasswordHash: hashed,
	}
	userID, err := userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID
	return user, nil
}
