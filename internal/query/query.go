// Package query turns a user's raw item collection plus a filter/sort
// configuration into the ordered view the client renders. The pipeline is a
// pure function of its inputs; the same items, config, and reference time
// always yield the same order.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/harukimori/inventory-backend/internal/model"
	"github.com/harukimori/inventory-backend/internal/warranty"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortNewest           SortKey = "newest"
	SortOldest           SortKey = "oldest"
	SortNameAsc          SortKey = "name-asc"
	SortNameDesc         SortKey = "name-desc"
	SortPriceHigh        SortKey = "price-high"
	SortPriceLow         SortKey = "price-low"
	SortWarrantyExpiring SortKey = "warranty-expiring"
)

type PriceRange string

const (
	PriceAll      PriceRange = "all"
	PriceUnder50  PriceRange = "0-50"
	Price50To200  PriceRange = "50-200"
	Price200To500 PriceRange = "200-500"
	PriceOver500  PriceRange = "500+"
)

type WarrantyFilter string

const (
	WarrantyAll      WarrantyFilter = "all"
	WarrantyActive   WarrantyFilter = "active"
	WarrantyExpiring WarrantyFilter = "expiring"
	WarrantyExpired  WarrantyFilter = "expired"
	WarrantyNone     WarrantyFilter = "no-warranty"
)

// Config is the transient, client-held filter/sort state. Values outside the
// known sets degrade to "all"/default; they never fail the pipeline.
type Config struct {
	Search     string
	CategoryID string
	PriceRange PriceRange
	Warranty   WarrantyFilter
	Sort       SortKey
}

// Apply filters and stably sorts items. The input slice is not modified.
func Apply(items []model.InventoryItem, cfg Config, now time.Time) []model.InventoryItem {
	out := make([]model.InventoryItem, 0, len(items))
	search := strings.ToLower(strings.TrimSpace(cfg.Search))
	for _, it := range items {
		if !matchesSearch(it, search) {
			continue
		}
		if !matchesCategory(it, cfg.CategoryID) {
			continue
		}
		if !matchesPrice(it, cfg.PriceRange) {
			continue
		}
		if !matchesWarranty(it, cfg.Warranty, now) {
			continue
		}
		out = append(out, it)
	}
	sortItems(out, cfg.Sort, now)
	return out
}

func matchesSearch(it model.InventoryItem, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(it.Name), search) {
		return true
	}
	if it.StoreName != nil && strings.Contains(strings.ToLower(*it.StoreName), search) {
		return true
	}
	return false
}

func matchesCategory(it model.InventoryItem, categoryID string) bool {
	if categoryID == "" || categoryID == "all" {
		return true
	}
	// A dangling or null reference counts as uncategorized, never an error.
	return it.CategoryID != nil && *it.CategoryID == categoryID
}

func matchesPrice(it model.InventoryItem, bucket PriceRange) bool {
	switch bucket {
	case PriceUnder50, Price50To200, Price200To500, PriceOver500:
	default:
		return true
	}
	if it.Price == nil {
		return false
	}
	p := *it.Price
	switch bucket {
	case PriceUnder50:
		return p <= 50
	case Price50To200:
		return p > 50 && p <= 200
	case Price200To500:
		return p > 200 && p <= 500
	default:
		return p > 500
	}
}

func matchesWarranty(it model.InventoryItem, f WarrantyFilter, now time.Time) bool {
	switch f {
	case WarrantyActive:
		return warranty.Evaluate(it.WarrantyExpiry, now).Status == warranty.StatusActive
	case WarrantyExpiring:
		r := warranty.Evaluate(it.WarrantyExpiry, now)
		return r.DaysRemaining != nil && *r.DaysRemaining >= 0 && *r.DaysRemaining <= warranty.ExpiringWindowDays
	case WarrantyExpired:
		return warranty.Evaluate(it.WarrantyExpiry, now).Status == warranty.StatusExpired
	case WarrantyNone:
		return it.WarrantyExpiry == nil
	default:
		return true
	}
}

func sortItems(items []model.InventoryItem, key SortKey, now time.Time) {
	switch key {
	case SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		})
	case SortNameAsc:
		c := collate.New(language.Und, collate.Loose)
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].Name, items[j].Name) < 0
		})
	case SortNameDesc:
		c := collate.New(language.Und, collate.Loose)
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].Name, items[j].Name) > 0
		})
	case SortPriceHigh:
		sort.SliceStable(items, func(i, j int) bool {
			return priceOrZero(items[i]) > priceOrZero(items[j])
		})
	case SortPriceLow:
		sort.SliceStable(items, func(i, j int) bool {
			return priceOrZero(items[i]) < priceOrZero(items[j])
		})
	case SortWarrantyExpiring:
		sort.SliceStable(items, func(i, j int) bool {
			return expiryRank(items[i], now) < expiryRank(items[j], now)
		})
	default:
		// Unknown keys fall back to newest-first, the default ordering.
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}

func priceOrZero(it model.InventoryItem) float64 {
	if it.Price == nil {
		return 0
	}
	return *it.Price
}

// expiryRank orders by ascending days remaining; items without an expiry date
// always sort last.
func expiryRank(it model.InventoryItem, now time.Time) int {
	if it.WarrantyExpiry == nil {
		return int(^uint(0) >> 1)
	}
	return warranty.DaysBetween(now, *it.WarrantyExpiry)
}
