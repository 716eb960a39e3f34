package handler

import (
	"errors"
	"net/http"

	"clothing-shop-api/internal/service"

	"github.com/labstack/echo/v4"
)

// httpError translates expected service failures into HTTP errors;
// anything else bubbles up as a 500 through echo's error handler.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountDisabled):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrPaymentConfirmed),
		errors.Is(err, service.ErrPinCooldownActive):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidCoupon):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return err
}
