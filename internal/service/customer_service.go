package service

import (
	"context"
	"errors"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterCustomerInput registers a new user together with a customer
// profile.
type RegisterCustomerInput struct {
	RegisterUserInput
	Goal         domain.UserGoal
	FitnessLevel domain.FitnessLevel
	Preference   domain.ExercisePreference
}

// CustomerProfileInput carries the mutable customer profile fields.
type CustomerProfileInput struct {
	Goal         domain.UserGoal
	FitnessLevel domain.FitnessLevel
	Preference   domain.ExercisePreference
}

// --- Service Interface ---
type CustomerService interface {
	Register(ctx context.Context, input RegisterCustomerInput) (*Principal, error)
	AttachProfile(ctx context.Context, userID primitive.ObjectID, input CustomerProfileInput) (*domain.Customer, error)

	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Customer, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Customer, error)
	List(ctx context.Context, page, size int) ([]domain.Customer, int64, error)
	UpdateProfile(ctx context.Context, principal *Principal, input CustomerProfileInput) (*domain.Customer, error)

	// Assignment graph, customer side.
	ListCoaches(ctx context.Context, principal *Principal, page, size int) ([]domain.Coach, int64, error)
	AssignCoach(ctx context.Context, principal *Principal, coachID primitive.ObjectID) (*AssignmentResult, error)
	UnassignCoach(ctx context.Context, principal *Principal, coachID primitive.ObjectID) error
}

// --- Service Implementation ---

type customerService struct {
	userRepo       repository.UserRepository
	coachRepo      repository.CoachRepository
	customerRepo   repository.CustomerRepository
	assignmentRepo repository.AssignmentRepository
	chats          ChatService
}

// NewCustomerService creates a new instance of customerService.
func NewCustomerService(
	userRepo repository.UserRepository,
	coachRepo repository.CoachRepository,
	customerRepo repository.CustomerRepository,
	assignmentRepo repository.AssignmentRepository,
	chats ChatService,
) CustomerService {
	return &customerService{
		userRepo:       userRepo,
		coachRepo:      coachRepo,
		customerRepo:   customerRepo,
		assignmentRepo: assignmentRepo,
		chats:          chats,
	}
}

func (s *customerService) Register(ctx context.Context, input RegisterCustomerInput) (*Principal, error) {
	user, err := registerUser(ctx, s.userRepo, input.RegisterUserInput)
	if err != nil {
		return nil, err
	}

	customer, err := s.AttachProfile(ctx, user.ID, CustomerProfileInput{
		Goal:         input.Goal,
		FitnessLevel: input.FitnessLevel,
		Preference:   input.Preference,
	})
	if err != nil {
		return nil, err
	}

	return &Principal{User: user, Customer: customer}, nil
}

func (s *customerService) AttachProfile(ctx context.Context, userID primitive.ObjectID, input CustomerProfileInput) (*domain.Customer, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	customer := &domain.Customer{
		UserID:       userID,
		Goal:         input.Goal,
		FitnessLevel: input.FitnessLevel,
		Preference:   input.Preference,
	}
	customerID, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrCustomerProfileExists
		}
		return nil, err
	}
	customer.ID = customerID
	return customer, nil
}

func (s *customerService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) List(ctx context.Context, page, size int) ([]domain.Customer, int64, error) {
	customers, err := s.customerRepo.List(ctx, page, size)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (s *customerService) UpdateProfile(ctx context.Context, principal *Principal, input CustomerProfileInput) (*domain.Customer, error) {
	if principal.Customer == nil {
		return nil, ErrCustomerNotFound
	}

	customer := principal.Customer
	customer.Goal = input.Goal
	customer.FitnessLevel = input.FitnessLevel
	customer.Preference = input.Preference
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

// ListCoaches pages through the customer's assigned coaches.
func (s *customerService) ListCoaches(ctx context.Context, principal *Principal, page, size int) ([]domain.Coach, int64, error) {
	if principal.Customer == nil {
		return nil, 0, ErrForbidden
	}

	ids, err := s.assignmentRepo.ListCoachIDsByCustomer(ctx, principal.Customer.ID, page, size)
	if err != nil {
		return nil, 0, err
	}
	coaches, err := s.coachRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.assignmentRepo.CountByCustomer(ctx, principal.Customer.ID)
	if err != nil {
		return nil, 0, err
	}
	return coaches, total, nil
}

func (s *customerService) AssignCoach(ctx context.Context, principal *Principal, coachID primitive.ObjectID) (*AssignmentResult, error) {
	if principal.Customer == nil {
		return nil, ErrForbidden
	}

	coach, err := s.coachRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}

	return createAssignmentPair(ctx, s.userRepo, s.assignmentRepo, s.chats, coach, principal.Customer)
}

func (s *customerService) UnassignCoach(ctx context.Context, principal *Principal, coachID primitive.ObjectID) error {
	if principal.Customer == nil {
		return ErrForbidden
	}

	coach, err := s.coachRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCoachNotFound
		}
		return err
	}

	return deleteAssignmentPair(ctx, s.assignmentRepo, coach, principal.Customer)
}
