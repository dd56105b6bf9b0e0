package handler

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	authClient *auth.Client
}

func NewUserHandler(client *auth.Client) *UserHandler {
	return &UserHandler{authClient: client}
}

type ProfileResponse struct {
	UID         string  `json:"uid"`
	DisplayName string  `json:"displayName"`
	Email       *string `json:"email,omitempty"`
	PhotoURL    *string `json:"photoURL,omitempty"`
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	user, err := h.authClient.GetUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateProfile changes the display name. Email stays managed by the auth
// provider and is read-only here.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "name is required"))
	}
	update := (&auth.UserToUpdate{}).DisplayName(name)
	user, err := h.authClient.UpdateUser(c.Request().Context(), uid, update)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update profile"))
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

func toProfileResponse(user *auth.UserRecord) ProfileResponse {
	return ProfileResponse{
		UID:         user.UID,
		DisplayName: user.DisplayName,
		Email:       strPtrOrNil(user.Email),
		PhotoURL:    strPtrOrNil(user.PhotoURL),
	}
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
