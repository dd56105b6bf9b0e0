package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harukimori/inventory-backend/internal/model"
	"github.com/harukimori/inventory-backend/internal/service"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	CreatedAt string `json:"createdAt"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (h *CategoryHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	category, err := h.svc.Create(c.Request().Context(), uid, req.Name, req.Icon)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

func (h *CategoryHandler) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	categories, err := h.svc.List(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch categories"))
	}
	resp := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, toCategoryResponse(&categories[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"categories": resp})
}

// Delete removes a category; its items stay behind as uncategorized.
func (h *CategoryHandler) Delete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if err := h.svc.Delete(c.Request().Context(), c.Param("id"), uid); err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "category not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not your category"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete category"))
	}
	return c.NoContent(http.StatusNoContent)
}

func toCategoryResponse(category *model.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Icon:      category.Icon,
		CreatedAt: category.CreatedAt.Format(time.RFC3339),
	}
}
