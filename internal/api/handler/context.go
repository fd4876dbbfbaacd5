package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hireloop/jobboard/internal/api/middleware"
)

// ctxUserID returns the authenticated user id injected by the Auth
// middleware. Its absence means the route was mounted without auth.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
