package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hireloop/jobboard/internal/core/domain"
)

// bindAndValidate decodes the request into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Invalid("invalid payload")
	}
	return c.Validate(req)
}
