package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/allnik/property-service/internal/core/domain"
)

// Client-facing messages.
const (
	msgUserRegistered  = "User registered successfully."
	msgUserExists      = "User already exists."
	msgUserNotFound    = "User not found."
	msgInvalidPassword = "Invalid password."
	msgRequestCreated  = "Request created successfully."
	msgInvalidBody     = "Invalid request body."
	msgInvalidToken    = "Invalid or expired token."
)

// messageResponse is the envelope of every non-list response body.
type messageResponse struct {
	Message string `json:"message"`
}

func respondMessage(c echo.Context, status int, msg string) error {
	return c.JSON(status, messageResponse{Message: msg})
}

// respondValidation writes 400 for a validation failure. Any other error is
// handed back to echo so the central error handler logs it.
func respondValidation(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrValidation) {
		return respondMessage(c, http.StatusBadRequest, err.Error())
	}
	return err
}
