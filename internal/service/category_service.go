package service

import (
	"context"
	"fmt"

	"go-stockpilot/internal/model"
	"go-stockpilot/internal/repository"
	"go-stockpilot/pkg/validator"

	"github.com/google/uuid"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req *CategoryRequest) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *CategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	GetCategories(ctx context.Context, status model.CategoryStatus) ([]model.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error)
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// CreateCategory inserts a new active category, or reactivates a deleted
// namesake (case-insensitive). An existing non-deleted namesake is a
// conflict.
func (s *categoryService) CreateCategory(ctx context.Context, req *CategoryRequest) (*model.Category, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, errs[0].FailedField, errs[0].Tag)
	}

	status, err := categoryStatusOf(req.Status, model.CategoryActive)
	if err != nil {
		return nil, err
	}
	if status == model.CategoryDeleted {
		return nil, fmt.Errorf("%w: cannot create a category in deleted status", ErrValidation)
	}

	if existing, err := s.categoryRepo.FindByName(ctx, req.Name); err == nil {
		if existing.Status != model.CategoryDeleted {
			return nil, ErrCategoryExists
		}
		existing.Name = req.Name
		existing.Description = req.Description
		existing.Status = status
		if err := s.categoryRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *CategoryRequest) (*model.Category, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, errs[0].FailedField, errs[0].Tag)
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil || category.Status == model.CategoryDeleted {
		return nil, ErrCategoryNotFound
	}

	status, err := categoryStatusOf(req.Status, category.Status)
	if err != nil {
		return nil, err
	}

	// Renaming must not collide with another non-deleted category.
	if other, err := s.categoryRepo.FindByName(ctx, req.Name); err == nil {
		if other.ID != category.ID && other.Status != model.CategoryDeleted {
			return nil, ErrCategoryExists
		}
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Status = status

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil || category.Status == model.CategoryDeleted {
		return ErrCategoryNotFound
	}
	category.Status = model.CategoryDeleted
	return s.categoryRepo.Save(ctx, category)
}

func (s *categoryService) GetCategories(ctx context.Context, status model.CategoryStatus) ([]model.Category, error) {
	return s.categoryRepo.FindAll(ctx, status)
}

func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil || category.Status == model.CategoryDeleted {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func categoryStatusOf(raw string, fallback model.CategoryStatus) (model.CategoryStatus, error) {
	if raw == "" {
		return fallback, nil
	}
	status := model.CategoryStatus(raw)
	if !model.ValidCategoryStatus(status) {
		return "", fmt.Errorf("%w: status must be active, inactive or deleted", ErrValidation)
	}
	return status, nil
}
