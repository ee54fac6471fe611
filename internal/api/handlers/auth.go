package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"djstore/internal/api/dto"
	"djstore/internal/api/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Token(c echo.Context) error {
	var req dto.TokenRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.authService.IssueToken(req.Username, req.Password)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
