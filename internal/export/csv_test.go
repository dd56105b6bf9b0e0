package export

import (
	"strings"
	"testing"
	"time"

	"github.com/harukimori/inventory-backend/internal/model"
)

const headerLine = `"Item Name","Category","Store","Price","Purchase Date","Warranty Expiry","Notes"`

func TestDocumentEmpty(t *testing.T) {
	got := Document(nil, nil)
	if got != headerLine+"\n" {
		t.Fatalf("got=%q want header row only", got)
	}
}

func TestDocumentRows(t *testing.T) {
	catID := "cat-1"
	store := "Best Buy"
	price := 599.99
	purchase := time.Date(2024, time.November, 3, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, time.November, 3, 0, 0, 0, 0, time.UTC)
	notes := "extended plan"
	items := []model.InventoryItem{
		{
			Name:           "Fridge",
			CategoryID:     &catID,
			StoreName:      &store,
			Price:          &price,
			PurchaseDate:   &purchase,
			WarrantyExpiry: &expiry,
			Notes:          &notes,
		},
		{Name: "Toaster"},
	}
	categories := map[string]model.Category{
		"cat-1": {ID: "cat-1", Name: "Appliances", Icon: "🏠"},
	}

	got := Document(items, categories)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got=%d lines want=3", len(lines))
	}
	if lines[0] != headerLine {
		t.Fatalf("header got=%q", lines[0])
	}
	if lines[1] != `"Fridge","Appliances","Best Buy","599.99","2024-11-03","2026-11-03","extended plan"` {
		t.Fatalf("row got=%q", lines[1])
	}
	// Absent fields are empty strings, never "null".
	if lines[2] != `"Toaster","","","","","",""` {
		t.Fatalf("row got=%q", lines[2])
	}
}

func TestDocumentQuoting(t *testing.T) {
	notes := `says "fragile", handle with care`
	items := []model.InventoryItem{
		{Name: `24" Monitor`, Notes: &notes},
	}
	got := Document(items, nil)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	want := `"24"" Monitor","","","","","","says ""fragile"", handle with care"`
	if lines[1] != want {
		t.Fatalf("got=%q want=%q", lines[1], want)
	}
}

func TestDocumentDanglingCategory(t *testing.T) {
	gone := "deleted-cat"
	items := []model.InventoryItem{
		{Name: "Lamp", CategoryID: &gone},
	}
	got := Document(items, map[string]model.Category{})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if lines[1] != `"Lamp","","","","","",""` {
		t.Fatalf("got=%q", lines[1])
	}
}

func TestDocumentPreservesOrder(t *testing.T) {
	items := []model.InventoryItem{
		{Name: "Zebra print"}, {Name: "Anvil"}, {Name: "Mixer"},
	}
	got := Document(items, nil)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	wantOrder := []string{"Zebra print", "Anvil", "Mixer"}
	for i, name := range wantOrder {
		if !strings.HasPrefix(lines[i+1], `"`+name+`"`) {
			t.Fatalf("line %d got=%q want prefix %q", i+1, lines[i+1], name)
		}
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, time.June, 15, 18, 30, 0, 0, time.UTC)
	if got := Filename(now); got != "inventory_2025-06-15.csv" {
		t.Fatalf("got=%q", got)
	}
}
