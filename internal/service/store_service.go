package service

import (
	"context"
	"errors"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductInput carries the product fields.
type ProductInput struct {
	Name        string
	Description string
	Price       int
	Category    domain.ProductCategory
	Link        string
	Images      []string
}

// --- Service Interface ---
type StoreService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	List(ctx context.Context, category domain.ProductCategory, page, size int) ([]domain.Product, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// --- Service Implementation ---

type storeService struct {
	productRepo repository.ProductRepository
}

// NewStoreService creates a new instance of storeService.
func NewStoreService(productRepo repository.ProductRepository) StoreService {
	return &storeService{productRepo: productRepo}
}

func (s *storeService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if input.Name == "" || input.Price < 0 {
		return nil, ErrBadRequest
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Link:        input.Link,
		Images:      input.Images,
	}
	productID, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ID = productID
	return product, nil
}

func (s *storeService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *storeService) List(ctx context.Context, category domain.ProductCategory, page, size int) ([]domain.Product, int64, error) {
	products, err := s.productRepo.List(ctx, category, page, size)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, category)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *storeService) Update(ctx context.Context, id primitive.ObjectID, input ProductInput) (*domain.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Category = input.Category
	product.Link = input.Link
	product.Images = input.Images

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *storeService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
