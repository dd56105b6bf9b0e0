package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"
)

const receiptPrompt = `You are reading a photo of a purchase receipt.
Extract these fields and answer with a single JSON object, nothing else:
{"item_name": string, "store_name": string, "price": number, "purchase_date": "YYYY-MM-DD", "warranty_months": integer}
Rules:
- item_name is the most prominent purchased product, not the store.
- price is the total paid for that product, as a plain number without currency symbols.
- purchase_date comes from the receipt; use "" if unreadable.
- warranty_months only when the receipt states a warranty period; otherwise null.
- Use null for any numeric field you cannot read. Never invent values.`

type ReceiptClient struct {
	model string
}

func NewReceiptClient() *ReceiptClient {
	model := os.Getenv("GEMINI_RECEIPT_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &ReceiptClient{model: model}
}

// Scan sends the receipt image to Gemini and returns the extracted draft
// fields.
func (c *ReceiptClient) Scan(ctx context.Context, image []byte, mimeType string) (*ReceiptFields, error) {
	if len(image) == 0 {
		return nil, errors.New("image is required")
	}
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	start := time.Now()
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Printf("[receipt] stage=client_init err=%v", err)
		return nil, err
	}

	parts := []*genai.Part{
		genai.NewPartFromText(receiptPrompt),
		genai.NewPartFromBytes(image, mimeType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	temp := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	log.Printf("[receipt] stage=gemini_start model=%s bytes=%d", c.model, len(image))
	res, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		log.Printf("[receipt] stage=gemini_fail model=%s err=%v", c.model, err)
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	rawText := res.Text()
	fields, err := ParseReceiptFields(rawText)
	if err != nil {
		text := strings.ReplaceAll(rawText, "\n", " ")
		if len(text) > 80 {
			text = text[:80]
		}
		log.Printf("[receipt] stage=parse_fail len=%d text=%q err=%v", len(rawText), text, err)
		return nil, err
	}
	log.Printf("[receipt] stage=parse_ok item=%q totalMs=%d", fields.ItemName, time.Since(start).Milliseconds())
	return fields, nil
}
