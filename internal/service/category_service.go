package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/harukimori/inventory-backend/internal/model"
	"github.com/harukimori/inventory-backend/internal/repository"
	"gorm.io/gorm"
)

type CategoryService interface {
	Create(ctx context.Context, ownerUID, name, icon string) (*model.Category, error)
	List(ctx context.Context, ownerUID string) ([]model.Category, error)
	Delete(ctx context.Context, id, ownerUID string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ItemRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, itemRepo repository.ItemRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, itemRepo: itemRepo}
}

func (s *categoryService) Create(ctx context.Context, ownerUID, name, icon string) (*model.Category, error) {
	if ownerUID == "" {
		return nil, errors.New("owner is required")
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 120 {
		return nil, errors.New("invalid category name")
	}
	category := &model.Category{
		ID:       uuid.NewString(),
		OwnerUID: ownerUID,
		Name:     name,
		Icon:     strings.TrimSpace(icon),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context, ownerUID string) ([]model.Category, error) {
	return s.categoryRepo.ListByOwner(ctx, ownerUID)
}

// Delete removes the category and detaches its items. Items are never
// deleted; they become uncategorized.
func (s *categoryService) Delete(ctx context.Context, id, ownerUID string) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if category.OwnerUID != ownerUID {
		return ErrForbidden
	}
	if err := s.itemRepo.ClearCategory(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}
