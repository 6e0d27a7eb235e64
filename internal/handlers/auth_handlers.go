package handlers

import (
	"net/http"

	"velodrive/internal/common"
	"velodrive/internal/middleware"
	"velodrive/internal/models"
	"velodrive/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles login, logout and the current user
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

type loginResponse struct {
	OK bool `json:"ok"`
	*models.AuthResult
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "", "Invalid request format")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		return common.SendFailure(c, err)
	}
	return c.JSON(http.StatusOK, loginResponse{OK: true, AuthResult: result})
}

// Logout handles POST /auth/logout
func (h *AuthHandlers) Logout(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return common.SendFailure(c, common.ErrUnauthorized)
	}

	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return common.SendFailure(c, err)
	}
	return sendOK(c)
}

// Me handles GET /auth/me
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendFailure(c, common.ErrUnauthorized)
	}

	user, err := h.authService.CurrentUser(ctx, userID)
	if err != nil {
		return common.SendFailure(c, err)
	}
	return sendItem(c, http.StatusOK, user)
}
