// Seeds a demo user with the default categories and a handful of sample
// items. Safe to re-run: it skips users that already have data unless
// FORCE_SEED=true.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/harukimori/inventory-backend/internal/config"
	"github.com/harukimori/inventory-backend/internal/db"
	"github.com/harukimori/inventory-backend/internal/model"
)

type seedCategory struct {
	Name string
	Icon string
}

type seedItem struct {
	Name          string
	Category      string
	Store         string
	Price         float64
	WarrantyInDay int
}

var defaultCategories = []seedCategory{
	{Name: "Appliances", Icon: "🏠"},
	{Name: "Electronics", Icon: "📱"},
	{Name: "Furniture", Icon: "🛋️"},
	{Name: "Tools", Icon: "🔧"},
	{Name: "Other", Icon: "📦"},
}

var sampleItems = []seedItem{
	{Name: "Espresso machine", Category: "Appliances", Store: "Bic Camera", Price: 320, WarrantyInDay: 12},
	{Name: "Noise-canceling headphones", Category: "Electronics", Store: "Yodobashi", Price: 248, WarrantyInDay: 340},
	{Name: "Standing desk", Category: "Furniture", Store: "IKEA", Price: 540, WarrantyInDay: -20},
	{Name: "Cordless drill", Category: "Tools", Store: "Cainz", Price: 95, WarrantyInDay: 700},
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	uid := os.Getenv("SEED_UID")
	if uid == "" {
		return fmt.Errorf("SEED_UID is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.Category{}, &model.InventoryItem{}, &model.Notification{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var existing int64
	if err := gdb.WithContext(ctx).Model(&model.Category{}).Where("owner_uid = ?", uid).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 && os.Getenv("FORCE_SEED") != "true" {
		log.Printf("uid=%s already has categories; skipping seed (set FORCE_SEED=true to override)", uid)
		return nil
	}

	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryIDs := make(map[string]string, len(defaultCategories))
		for _, c := range defaultCategories {
			category := model.Category{
				ID:       uuid.NewString(),
				OwnerUID: uid,
				Name:     c.Name,
				Icon:     c.Icon,
			}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			categoryIDs[c.Name] = category.ID
		}

		now := time.Now()
		for _, s := range sampleItems {
			catID := categoryIDs[s.Category]
			store := s.Store
			price := s.Price
			expiry := now.AddDate(0, 0, s.WarrantyInDay)
			item := model.InventoryItem{
				ID:             uuid.NewString(),
				OwnerUID:       uid,
				Name:           s.Name,
				CategoryID:     &catID,
				StoreName:      &store,
				Price:          &price,
				WarrantyExpiry: &expiry,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			log.Printf("seeded item %q (%s)", s.Name, s.Category)
		}
		return nil
	})
}
