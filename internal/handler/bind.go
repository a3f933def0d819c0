package handler

import (
	"github.com/labstack/echo/v4"

	"hospital/internal/auth"
	apperrors "hospital/internal/errors"
)

// bindValid binds the request body into req and validates it. Any failure
// is reported as a validation error carrying msg.
func bindValid(c echo.Context, req interface{}, msg string) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Invalid(msg, err)
	}
	if err := c.Validate(req); err != nil {
		return apperrors.Invalid(msg, err)
	}
	return nil
}

func identity(c echo.Context) auth.Identity {
	id, _ := auth.IdentityFromContext(c.Request().Context())
	return id
}
