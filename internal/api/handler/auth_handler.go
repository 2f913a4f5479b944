package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/allnik/property-service/internal/core/domain"
	"github.com/allnik/property-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return respondMessage(c, http.StatusBadRequest, msgInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Username:   req.Username,
		Password:   req.Password,
		City:       req.City,
		Region:     req.Region,
		Expertise:  req.Expertise,
		WorkRegion: req.WorkRegion,
		Role:       req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return respondMessage(c, http.StatusBadRequest, msgUserExists)
		}
		return respondValidation(c, err)
	}

	return respondMessage(c, http.StatusCreated, msgUserRegistered)
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondMessage(c, http.StatusBadRequest, msgInvalidBody)
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return respondMessage(c, http.StatusNotFound, msgUserNotFound)
		case errors.Is(err, domain.ErrInvalidPassword):
			return respondMessage(c, http.StatusUnauthorized, msgInvalidPassword)
		}
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token})
}
