package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/harukimori/inventory-backend/internal/ai"
)

type ReceiptHandler struct {
	client *ai.ReceiptClient
}

func NewReceiptHandler(client *ai.ReceiptClient) *ReceiptHandler {
	return &ReceiptHandler{client: client}
}

// Parse runs a receipt photo through the extraction model and returns a draft
// item the client can pre-fill the add-item form with.
func (h *ReceiptHandler) Parse(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "file is required"))
	}
	if fileHeader.Size > maxPhotoBytes {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "file too large"))
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "failed to read file"))
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxPhotoBytes+1))
	if err != nil || len(data) > maxPhotoBytes {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "failed to read file"))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	fields, err := h.client.Scan(c.Request().Context(), data, contentType)
	if err != nil {
		if errors.Is(err, ai.ErrParseFailed) {
			return c.JSON(http.StatusUnprocessableEntity, NewErrorResponse("parse_failed", "could not read the receipt"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to scan receipt"))
	}
	return c.JSON(http.StatusOK, fields)
}
