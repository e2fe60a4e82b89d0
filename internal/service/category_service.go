package service

import (
	"context"
	"errors"
	"strings"

	"guidehub/internal/models"
	"guidehub/internal/repository"
)

var (
	ErrCategoryMissingName = errors.New("category name is required")
	// ErrCategoryInUse blocks deletion while guides still reference the
	// category. Cascading or nulling out references would silently break
	// published guides.
	ErrCategoryInUse = errors.New("category is still referenced by guides")
)

type CategoryService struct {
	categoryRepo repository.Categories
}

func NewCategoryService(repo repository.Categories) *CategoryService {
	return &CategoryService{categoryRepo: repo}
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Create validates and stores a new category.
func (s *CategoryService) Create(ctx context.Context, c models.Category) (string, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	if c.Name == "" {
		return "", ErrCategoryMissingName
	}
	return s.categoryRepo.Create(ctx, c)
}

// Delete removes a category unless guides still reference it.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	n, err := s.categoryRepo.GuideCount(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(ctx, id)
}
