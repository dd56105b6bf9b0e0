package repository

import (
	"context"
	"sync"

	"github.com/harukimori/inventory-backend/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	ListByOwner(ctx context.Context, ownerUID string) ([]model.Category, error)
	Delete(ctx context.Context, id string) error
	SetDB(db *gorm.DB)
}

type categoryRepository struct {
	mu sync.RWMutex
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) conn() (*gorm.DB, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	return r.db, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	var category model.Category
	if err := db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListByOwner(ctx context.Context, ownerUID string) ([]model.Category, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	var categories []model.Category
	if err := db.WithContext(ctx).
		Where("owner_uid = ?", ownerUID).
		Order("name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) SetDB(db *gorm.DB) {
	r.mu.Lock()
	r.db = db
	r.mu.Unlock()
}
