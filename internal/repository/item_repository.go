package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/harukimori/inventory-backend/internal/model"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	FindByID(ctx context.Context, id string) (*model.InventoryItem, error)
	ListByOwner(ctx context.Context, ownerUID string) ([]model.InventoryItem, error)
	Delete(ctx context.Context, id string) error
	ClearCategory(ctx context.Context, categoryID string) error
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]model.InventoryItem, error)
	SetDB(db *gorm.DB)
}

// itemRepository guards db with a mutex because SetDB runs from the async
// connect goroutine while handlers are already serving.
type itemRepository struct {
	mu sync.RWMutex
	db *gorm.DB
}

var ErrDBNotReady = errors.New("database not initialized")

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) conn() (*gorm.DB, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	return r.db, nil
}

func (r *itemRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id string) (*model.InventoryItem, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	var item model.InventoryItem
	if err := db.WithContext(ctx).
		Preload("Category").
		First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByOwner returns the owner's full collection, newest first. Filtering and
// re-sorting happen in memory downstream; the set per user is small.
func (r *itemRepository) ListByOwner(ctx context.Context, ownerUID string) ([]model.InventoryItem, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	var items []model.InventoryItem
	if err := db.WithContext(ctx).
		Preload("Category").
		Where("owner_uid = ?", ownerUID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&model.InventoryItem{}, "id = ?", id).Error
}

// ClearCategory detaches items from a category about to be deleted. Items
// survive as uncategorized.
func (r *itemRepository) ClearCategory(ctx context.Context, categoryID string) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).
		Model(&model.InventoryItem{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).Error
}

// ListExpiringBetween returns items of every owner whose warranty lapses in
// the window. Used by the daily alert sweep.
func (r *itemRepository) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]model.InventoryItem, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	var items []model.InventoryItem
	if err := db.WithContext(ctx).
		Where("warranty_expiry_date IS NOT NULL AND warranty_expiry_date >= ? AND warranty_expiry_date <= ?", from, to).
		Order("warranty_expiry_date asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) SetDB(db *gorm.DB) {
	r.mu.Lock()
	r.db = db
	r.mu.Unlock()
}
