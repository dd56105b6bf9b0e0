package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/harukimori/inventory-backend/internal/photo"
)

const maxPhotoBytes = 10 << 20

type PhotoHandler struct {
	uploader *photo.Uploader
}

func NewPhotoHandler(uploader *photo.Uploader) *PhotoHandler {
	return &PhotoHandler{uploader: uploader}
}

type UploadPhotoResponse struct {
	URL string `json:"url"`
}

// Upload accepts a multipart file plus a purpose tag (item|receipt) and
// returns the stored photo's public URL.
func (h *PhotoHandler) Upload(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	if h.uploader == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "photo storage is not configured"))
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
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "failed to read file"))
	}
	if len(data) > maxPhotoBytes {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "file too large"))
	}

	purpose := c.FormValue("purpose")
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.uploader.Upload(c.Request().Context(), uid, purpose, data, contentType)
	if err != nil {
		if errors.Is(err, photo.ErrInvalidPurpose) {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "purpose must be item or receipt"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to upload photo"))
	}
	return c.JSON(http.StatusCreated, UploadPhotoResponse{URL: url})
}
