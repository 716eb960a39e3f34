package handler

import (
	"net/http"

	"clothing-shop-api/internal/dto"
	"clothing-shop-api/internal/middleware"
	"clothing-shop-api/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	orderService   service.OrderService
}

func NewPaymentHandler(paymentService service.PaymentService, orderService service.OrderService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		orderService:   orderService,
	}
}

// PinStatus is the customer-facing countdown view for their own order.
func (h *PaymentHandler) PinStatus(c echo.Context) error {
	ctx := c.Request().Context()
	claims := middleware.ClaimsFrom(c)

	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}
	if _, err := h.orderService.GetOrder(ctx, orderID, claims.UserID); err != nil {
		return httpError(err)
	}

	status, err := h.paymentService.PinStatus(ctx, orderID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, status)
}

// VerifyPin lets the customer submit the PIN for their own order; a match
// confirms the payment in the same step.
func (h *PaymentHandler) VerifyPin(c echo.Context) error {
	ctx := c.Request().Context()
	claims := middleware.ClaimsFrom(c)

	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}
	if _, err := h.orderService.GetOrder(ctx, orderID, claims.UserID); err != nil {
		return httpError(err)
	}

	var req dto.VerifyPinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, message, err := h.paymentService.ConfirmPinAndPayment(ctx, orderID, req.Pin, claims.Username)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.VerifyPinResponse{Success: ok, Message: message})
}

// ---- staff surface ----

// GeneratePin issues a PIN for an order. Confirmed orders are rejected here,
// not in the service, so the force-confirm path stays unconditional.
func (h *PaymentHandler) GeneratePin(c echo.Context) error {
	ctx := c.Request().Context()
	claims := middleware.ClaimsFrom(c)

	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}

	status, err := h.paymentService.PinStatus(ctx, orderID)
	if err != nil {
		return httpError(err)
	}
	if status.PaymentStatus {
		return httpError(service.ErrPaymentConfirmed)
	}
	if !status.CanGenerateNewPin {
		return httpError(service.ErrPinCooldownActive)
	}

	pin, err := h.paymentService.GeneratePin(ctx, orderID, claims.Username)
	if err != nil {
		return httpError(err)
	}

	updated, err := h.paymentService.PinStatus(ctx, orderID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.GeneratePinResponse{
		Pin:       pin,
		ExpiresIn: updated.ExpiresIn,
	})
}

func (h *PaymentHandler) ResetPin(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}

	status, err := h.paymentService.PinStatus(ctx, orderID)
	if err != nil {
		return httpError(err)
	}
	if status.PaymentStatus {
		return httpError(service.ErrPaymentConfirmed)
	}

	if err := h.paymentService.ResetPin(ctx, orderID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ConfirmPayment is the staff force-confirm, valid with or without a PIN.
func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	ctx := c.Request().Context()
	claims := middleware.ClaimsFrom(c)

	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}

	ok, message, err := h.paymentService.ConfirmPayment(ctx, orderID, claims.Username)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.VerifyPinResponse{Success: ok, Message: message})
}
