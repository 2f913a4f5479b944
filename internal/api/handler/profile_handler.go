package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/allnik/property-service/internal/core/domain"
	"github.com/allnik/property-service/internal/core/ports"
)

// ProfileHandler serves the caller's own account.
type ProfileHandler struct {
	authService ports.AuthService
}

func NewProfileHandler(authService ports.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

// Get handles GET /api/user/profile.
//
// @Summary      Current user's profile
// @Tags         user
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/user/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return respondMessage(c, http.StatusUnauthorized, msgInvalidToken)
	}

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return respondMessage(c, http.StatusNotFound, msgUserNotFound)
		}
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Username: user.Username,
		City:     user.City,
		Region:   user.Region,
		Role:     user.Role,
	})
}
