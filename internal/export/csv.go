// Package export serializes an already filtered and sorted item view into a
// CSV document. It never re-filters; rows come out in input order.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/harukimori/inventory-backend/internal/model"
)

var header = []string{"Item Name", "Category", "Store", "Price", "Purchase Date", "Warranty Expiry", "Notes"}

// Write renders the CSV document. Every field is quoted; absent fields render
// as empty strings. The category column resolves through the lookup and a
// dangling reference resolves to empty, not an error.
func Write(w io.Writer, items []model.InventoryItem, categories map[string]model.Category) error {
	if err := writeRow(w, header); err != nil {
		return err
	}
	for _, it := range items {
		row := []string{
			it.Name,
			categoryName(it, categories),
			strOrEmpty(it.StoreName),
			priceField(it.Price),
			dateField(it.PurchaseDate),
			dateField(it.WarrantyExpiry),
			strOrEmpty(it.Notes),
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// Document is the convenience form used by the export endpoint.
func Document(items []model.InventoryItem, categories map[string]model.Category) string {
	var b strings.Builder
	_ = Write(&b, items, categories)
	return b.String()
}

// Filename names the downloaded artifact after the export date.
func Filename(now time.Time) string {
	return fmt.Sprintf("inventory_%s.csv", now.Format("2006-01-02"))
}

func writeRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\n")
	return err
}

func categoryName(it model.InventoryItem, categories map[string]model.Category) string {
	if it.CategoryID == nil {
		return ""
	}
	cat, ok := categories[*it.CategoryID]
	if !ok {
		return ""
	}
	return cat.Name
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func priceField(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *p)
}

func dateField(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
