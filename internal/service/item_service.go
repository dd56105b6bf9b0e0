package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harukimori/inventory-backend/internal/export"
	"github.com/harukimori/inventory-backend/internal/model"
	"github.com/harukimori/inventory-backend/internal/query"
	"github.com/harukimori/inventory-backend/internal/repository"
	"github.com/harukimori/inventory-backend/internal/warranty"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")
var ErrForbidden = errors.New("forbidden")

const dashboardRecentCount = 6

type CreateItemInput struct {
	Name            string
	CategoryID      *string
	PurchaseDate    *string
	WarrantyExpiry  *string
	StoreName       *string
	Price           *float64
	ItemPhotoURL    *string
	ReceiptPhotoURL *string
	Notes           *string
}

type DashboardData struct {
	TotalItems   int
	ExpiringSoon []model.InventoryItem
	Recent       []model.InventoryItem
}

type ItemService interface {
	Create(ctx context.Context, ownerUID string, in CreateItemInput) (*model.InventoryItem, error)
	Get(ctx context.Context, id, ownerUID string) (*model.InventoryItem, error)
	List(ctx context.Context, ownerUID string, cfg query.Config, now time.Time) ([]model.InventoryItem, error)
	Delete(ctx context.Context, id, ownerUID string) error
	ExportCSV(ctx context.Context, ownerUID string, cfg query.Config, now time.Time) (filename, document string, err error)
	Dashboard(ctx context.Context, ownerUID string, now time.Time) (*DashboardData, error)
}

type itemService struct {
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
}

func NewItemService(itemRepo repository.ItemRepository, categoryRepo repository.CategoryRepository) ItemService {
	return &itemService{itemRepo: itemRepo, categoryRepo: categoryRepo}
}

func (s *itemService) Create(ctx context.Context, ownerUID string, in CreateItemInput) (*model.InventoryItem, error) {
	if ownerUID == "" {
		return nil, errors.New("owner is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 200 {
		return nil, errors.New("invalid item name")
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, errors.New("price must not be negative")
	}
	purchaseDate, err := parseOptionalDate(in.PurchaseDate)
	if err != nil {
		return nil, err
	}
	expiry, err := parseOptionalDate(in.WarrantyExpiry)
	if err != nil {
		return nil, err
	}

	item := &model.InventoryItem{
		ID:              uuid.NewString(),
		OwnerUID:        ownerUID,
		Name:            name,
		CategoryID:      trimPtr(in.CategoryID),
		PurchaseDate:    purchaseDate,
		WarrantyExpiry:  expiry,
		StoreName:       trimPtr(in.StoreName),
		Price:           in.Price,
		ItemPhotoURL:    trimPtr(in.ItemPhotoURL),
		ReceiptPhotoURL: trimPtr(in.ReceiptPhotoURL),
		Notes:           in.Notes,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) Get(ctx context.Context, id, ownerUID string) (*model.InventoryItem, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item.OwnerUID != ownerUID {
		return nil, ErrForbidden
	}
	return item, nil
}

// List loads the owner's full collection and runs it through the query
// pipeline. Filtering happens in memory; per-user sets are small.
func (s *itemService) List(ctx context.Context, ownerUID string, cfg query.Config, now time.Time) ([]model.InventoryItem, error) {
	items, err := s.itemRepo.ListByOwner(ctx, ownerUID)
	if err != nil {
		return nil, err
	}
	return query.Apply(items, cfg, now), nil
}

func (s *itemService) Delete(ctx context.Context, id, ownerUID string) error {
	item, err := s.Get(ctx, id, ownerUID)
	if err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, item.ID)
}

// ExportCSV serializes the filtered/sorted view exactly as the client last
// saw it; the exporter itself never re-filters.
func (s *itemService) ExportCSV(ctx context.Context, ownerUID string, cfg query.Config, now time.Time) (string, string, error) {
	items, err := s.List(ctx, ownerUID, cfg, now)
	if err != nil {
		return "", "", err
	}
	categories, err := s.categoryRepo.ListByOwner(ctx, ownerUID)
	if err != nil {
		return "", "", err
	}
	lookup := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		lookup[c.ID] = c
	}
	return export.Filename(now), export.Document(items, lookup), nil
}

func (s *itemService) Dashboard(ctx context.Context, ownerUID string, now time.Time) (*DashboardData, error) {
	items, err := s.itemRepo.ListByOwner(ctx, ownerUID)
	if err != nil {
		return nil, err
	}
	expiring := query.Apply(items, query.Config{
		Warranty: query.WarrantyExpiring,
		Sort:     query.SortWarrantyExpiring,
	}, now)
	recent := query.Apply(items, query.Config{Sort: query.SortNewest}, now)
	if len(recent) > dashboardRecentCount {
		recent = recent[:dashboardRecentCount]
	}
	return &DashboardData{
		TotalItems:   len(items),
		ExpiringSoon: expiring,
		Recent:       recent,
	}, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := warranty.ParseDate(strings.TrimSpace(*s))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
