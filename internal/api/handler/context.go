package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/allnik/property-service/internal/api/middleware"
)

// callerID returns the account id injected by the Auth middleware. It is
// false only when a route was mounted without Auth.
func callerID(c echo.Context) (string, bool) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	return userID, userID != ""
}
