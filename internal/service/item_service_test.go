package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/harukimori/inventory-backend/internal/model"
	"github.com/harukimori/inventory-backend/internal/query"
	"github.com/harukimori/inventory-backend/internal/warranty"
	"gorm.io/gorm"
)

type fakeItemRepo struct {
	items map[string]model.InventoryItem
	order []string
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[string]model.InventoryItem{}}
}

func (r *fakeItemRepo) Create(_ context.Context, item *model.InventoryItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	r.items[item.ID] = *item
	r.order = append(r.order, item.ID)
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id string) (*model.InventoryItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &it, nil
}

func (r *fakeItemRepo) ListByOwner(_ context.Context, ownerUID string) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	for _, id := range r.order {
		if it := r.items[id]; it.OwnerUID == ownerUID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) ClearCategory(_ context.Context, categoryID string) error {
	for id, it := range r.items {
		if it.CategoryID != nil && *it.CategoryID == categoryID {
			it.CategoryID = nil
			r.items[id] = it
		}
	}
	return nil
}

func (r *fakeItemRepo) ListExpiringBetween(_ context.Context, from, to time.Time) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	for _, id := range r.order {
		it := r.items[id]
		if it.WarrantyExpiry == nil {
			continue
		}
		if !it.WarrantyExpiry.Before(from) && !it.WarrantyExpiry.After(to) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) SetDB(_ *gorm.DB) {}

type fakeCategoryRepo struct {
	categories map[string]model.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]model.Category{}}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepo) ListByOwner(_ context.Context, ownerUID string) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		if c.OwnerUID == ownerUID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) SetDB(_ *gorm.DB) {}

func strp(s string) *string { return &s }

func f64p(v float64) *float64 { return &v }

func TestCreateValidation(t *testing.T) {
	svc := NewItemService(newFakeItemRepo(), newFakeCategoryRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		owner   string
		in      CreateItemInput
		wantErr bool
	}{
		{"valid minimal", "user-1", CreateItemInput{Name: "Fridge"}, false},
		{"missing name", "user-1", CreateItemInput{Name: "   "}, true},
		{"missing owner", "", CreateItemInput{Name: "Fridge"}, true},
		{"negative price", "user-1", CreateItemInput{Name: "Fridge", Price: f64p(-1)}, true},
		{"malformed purchase date", "user-1", CreateItemInput{Name: "Fridge", PurchaseDate: strp("junk")}, true},
		{"malformed expiry date", "user-1", CreateItemInput{Name: "Fridge", WarrantyExpiry: strp("2025-99-99")}, true},
		{"valid full", "user-1", CreateItemInput{
			Name:           "Fridge",
			PurchaseDate:   strp("2024-11-03"),
			WarrantyExpiry: strp("2026-11-03"),
			StoreName:      strp("Best Buy"),
			Price:          f64p(599.99),
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.owner, tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateMalformedDateWrapsInvalidDate(t *testing.T) {
	svc := NewItemService(newFakeItemRepo(), newFakeCategoryRepo())
	_, err := svc.Create(context.Background(), "user-1", CreateItemInput{Name: "TV", WarrantyExpiry: strp("soonish")})
	if err == nil || !strings.Contains(err.Error(), warranty.ErrInvalidDate.Error()) {
		t.Fatalf("err=%v want wrapped %v", err, warranty.ErrInvalidDate)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewItemService(repo, newFakeCategoryRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", CreateItemInput{Name: "Fridge"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID, "user-2"); err != ErrForbidden {
		t.Fatalf("err=%v want=%v", err, ErrForbidden)
	}
	if _, err := svc.Get(ctx, "missing", "user-1"); err != ErrNotFound {
		t.Fatalf("err=%v want=%v", err, ErrNotFound)
	}
}

func TestListAppliesConfig(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewItemService(repo, newFakeCategoryRepo())
	ctx := context.Background()

	for _, in := range []CreateItemInput{
		{Name: "Fridge", Price: f64p(600)},
		{Name: "Toaster", Price: f64p(40)},
	} {
		if _, err := svc.Create(ctx, "user-1", in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := svc.List(ctx, "user-1", query.Config{PriceRange: query.PriceOver500}, time.Now())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Fridge" {
		t.Fatalf("got=%v want only Fridge", got)
	}
}

func TestExportCSVHeaderOnlyForEmptyCollection(t *testing.T) {
	svc := NewItemService(newFakeItemRepo(), newFakeCategoryRepo())
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	name, doc, err := svc.ExportCSV(context.Background(), "user-1", query.Config{}, now)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "inventory_2025-06-15.csv" {
		t.Fatalf("filename got=%q", name)
	}
	if lines := strings.Split(strings.TrimRight(doc, "\n"), "\n"); len(lines) != 1 {
		t.Fatalf("got=%d lines want=1", len(lines))
	}
}

func TestDashboard(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewItemService(repo, newFakeCategoryRepo())
	ctx := context.Background()
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	expiring := now.AddDate(0, 0, 10).Format("2006-01-02")
	farOut := now.AddDate(0, 0, 90).Format("2006-01-02")
	for _, in := range []CreateItemInput{
		{Name: "Laptop", WarrantyExpiry: &expiring},
		{Name: "Washer", WarrantyExpiry: &farOut},
		{Name: "Lamp"},
	} {
		if _, err := svc.Create(ctx, "user-1", in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	d, err := svc.Dashboard(ctx, "user-1", now)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.TotalItems != 3 {
		t.Fatalf("total got=%d want=3", d.TotalItems)
	}
	if len(d.ExpiringSoon) != 1 || d.ExpiringSoon[0].Name != "Laptop" {
		t.Fatalf("expiring got=%v want only Laptop", d.ExpiringSoon)
	}
	if len(d.Recent) != 3 {
		t.Fatalf("recent got=%d want=3", len(d.Recent))
	}
}
