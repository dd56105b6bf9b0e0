package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrParseFailed = errors.New("parse_failed")

// ReceiptFields is the draft item extracted from a receipt photo. Absent
// fields stay nil/empty; the client pre-fills the add-item form with whatever
// came back.
type ReceiptFields struct {
	ItemName       string   `json:"item_name"`
	StoreName      string   `json:"store_name"`
	Price          *float64 `json:"price"`
	PurchaseDate   string   `json:"purchase_date"`
	WarrantyMonths *int     `json:"warranty_months"`
}

// ParseReceiptFields extracts the first JSON object from model output. The
// model is asked for bare JSON but tends to wrap it in code fences or prose,
// so we cut out the outermost braces before decoding.
func ParseReceiptFields(text string) (*ReceiptFields, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no json object found", ErrParseFailed)
	}
	var fields ReceiptFields
	if err := json.Unmarshal([]byte(text[start:end+1]), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	fields.ItemName = strings.TrimSpace(fields.ItemName)
	fields.StoreName = strings.TrimSpace(fields.StoreName)
	fields.PurchaseDate = strings.TrimSpace(fields.PurchaseDate)
	if fields.Price != nil && *fields.Price < 0 {
		fields.Price = nil
	}
	return &fields, nil
}
