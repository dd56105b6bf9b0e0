package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harukimori/inventory-backend/internal/model"
	"github.com/harukimori/inventory-backend/internal/query"
	"github.com/harukimori/inventory-backend/internal/service"
	"github.com/harukimori/inventory-backend/internal/warranty"
)

type ItemHandler struct {
	svc           service.ItemService
	notifications service.NotificationService
}

func NewItemHandler(svc service.ItemService, notifications service.NotificationService) *ItemHandler {
	return &ItemHandler{svc: svc, notifications: notifications}
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type WarrantyResponse struct {
	Status        string `json:"status"`
	DaysRemaining *int   `json:"daysRemaining,omitempty"`
	Label         string `json:"label,omitempty"`
	Urgent        bool   `json:"urgent"`
}

type ItemResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Category        *CategoryRef     `json:"category,omitempty"`
	PurchaseDate    *string          `json:"purchaseDate,omitempty"`
	WarrantyExpiry  *string          `json:"warrantyExpiryDate,omitempty"`
	StoreName       *string          `json:"storeName,omitempty"`
	Price           *float64         `json:"price,omitempty"`
	ItemPhotoURL    *string          `json:"itemPhotoUrl,omitempty"`
	ReceiptPhotoURL *string          `json:"receiptPhotoUrl,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	Warranty        WarrantyResponse `json:"warranty"`
	CreatedAt       string           `json:"createdAt"`
	UpdatedAt       string           `json:"updatedAt"`
}

type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

type CreateItemRequest struct {
	Name            string   `json:"name"`
	CategoryID      *string  `json:"categoryId"`
	PurchaseDate    *string  `json:"purchaseDate"`
	WarrantyExpiry  *string  `json:"warrantyExpiryDate"`
	StoreName       *string  `json:"storeName"`
	Price           *float64 `json:"price"`
	ItemPhotoURL    *string  `json:"itemPhotoUrl"`
	ReceiptPhotoURL *string  `json:"receiptPhotoUrl"`
	Notes           *string  `json:"notes"`
}

func (h *ItemHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	item, err := h.svc.Create(c.Request().Context(), uid, service.CreateItemInput{
		Name:            req.Name,
		CategoryID:      req.CategoryID,
		PurchaseDate:    req.PurchaseDate,
		WarrantyExpiry:  req.WarrantyExpiry,
		StoreName:       req.StoreName,
		Price:           req.Price,
		ItemPhotoURL:    req.ItemPhotoURL,
		ReceiptPhotoURL: req.ReceiptPhotoURL,
		Notes:           req.Notes,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toItemResponse(item, time.Now()))
}

func (h *ItemHandler) Get(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	item, err := h.svc.Get(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not your item"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch item"))
	}
	return c.JSON(http.StatusOK, toItemResponse(item, time.Now()))
}

// ListMine serves the items screen: the caller's collection run through the
// filter/sort pipeline driven by query parameters.
func (h *ItemHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	cfg := configFromParams(c)
	now := time.Now()
	items, err := h.svc.List(c.Request().Context(), uid, cfg, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch items"))
	}
	resp := ItemListResponse{
		Items: make([]ItemResponse, 0, len(items)),
		Total: len(items),
	}
	for i := range items {
		resp.Items = append(resp.Items, toItemResponse(&items[i], now))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ItemHandler) Delete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if err := h.svc.Delete(c.Request().Context(), c.Param("id"), uid); err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not your item"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete item"))
	}
	return c.NoContent(http.StatusNoContent)
}

// Export streams the current filtered/sorted view as a CSV attachment. The
// same query parameters as ListMine apply, so the file mirrors the screen.
func (h *ItemHandler) Export(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	filename, doc, err := h.svc.ExportCSV(c.Request().Context(), uid, configFromParams(c), time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to export items"))
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(doc))
}

type DashboardResponse struct {
	TotalItems    int            `json:"totalItems"`
	ExpiringCount int            `json:"expiringCount"`
	ExpiringSoon  []ItemResponse `json:"expiringSoon"`
	Recent        []ItemResponse `json:"recent"`
}

func (h *ItemHandler) Dashboard(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	now := time.Now()
	// Best effort: a sweep failure must not take the dashboard down.
	if h.notifications != nil {
		if _, err := h.notifications.SweepUserWarrantyAlerts(c.Request().Context(), uid, now); err != nil {
			log.Printf("[dashboard] stage=sweep uid=%s err=%v", uid, err)
		}
	}
	d, err := h.svc.Dashboard(c.Request().Context(), uid, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to build dashboard"))
	}
	resp := DashboardResponse{
		TotalItems:    d.TotalItems,
		ExpiringCount: len(d.ExpiringSoon),
		ExpiringSoon:  make([]ItemResponse, 0, len(d.ExpiringSoon)),
		Recent:        make([]ItemResponse, 0, len(d.Recent)),
	}
	for i := range d.ExpiringSoon {
		resp.ExpiringSoon = append(resp.ExpiringSoon, toItemResponse(&d.ExpiringSoon[i], now))
	}
	for i := range d.Recent {
		resp.Recent = append(resp.Recent, toItemResponse(&d.Recent[i], now))
	}
	return c.JSON(http.StatusOK, resp)
}

func configFromParams(c echo.Context) query.Config {
	return query.Config{
		Search:     c.QueryParam("q"),
		CategoryID: c.QueryParam("category"),
		PriceRange: query.PriceRange(c.QueryParam("price")),
		Warranty:   query.WarrantyFilter(c.QueryParam("warranty")),
		Sort:       query.SortKey(c.QueryParam("sort")),
	}
}

func toItemResponse(item *model.InventoryItem, now time.Time) ItemResponse {
	w := warranty.Evaluate(item.WarrantyExpiry, now)
	resp := ItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		PurchaseDate:    dateString(item.PurchaseDate),
		WarrantyExpiry:  dateString(item.WarrantyExpiry),
		StoreName:       item.StoreName,
		Price:           item.Price,
		ItemPhotoURL:    item.ItemPhotoURL,
		ReceiptPhotoURL: item.ReceiptPhotoURL,
		Notes:           item.Notes,
		Warranty: WarrantyResponse{
			Status:        string(w.Status),
			DaysRemaining: w.DaysRemaining,
			Label:         w.Label(),
			Urgent:        w.Urgent(),
		},
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
		UpdatedAt: item.UpdatedAt.Format(time.RFC3339),
	}
	if item.Category != nil {
		resp.Category = &CategoryRef{
			ID:   item.Category.ID,
			Name: item.Category.Name,
			Icon: item.Category.Icon,
		}
	}
	return resp
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
