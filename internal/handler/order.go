package handler

import (
	"context"
	"net/http"
	"strconv"

	"clothing-shop-api/internal/dto"
	"clothing-shop-api/internal/middleware"
	"clothing-shop-api/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	checkoutService service.CheckoutService
	orderService    service.OrderService
	wishlistService service.WishlistService
}

func NewOrderHandler(
	checkoutService service.CheckoutService,
	orderService service.OrderService,
	wishlistService service.WishlistService,
) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
		wishlistService: wishlistService,
	}
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	claims := middleware.ClaimsFrom(c)

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.checkoutService.Checkout(ctx, claims.UserID, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, &dto.CheckoutResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Total:       order.Total.StringFixed(2),
		Status:      order.Status,
	})
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	claims := middleware.ClaimsFrom(c)

	orders, err := h.orderService.ListOrders(ctx, claims.UserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	claims := middleware.ClaimsFrom(c)

	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.GetOrder(ctx, orderID, claims.UserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

// ---- staff transitions ----

func (h *OrderHandler) Ship(c echo.Context) error {
	return h.staffTransition(c, h.orderService.Ship)
}

func (h *OrderHandler) Deliver(c echo.Context) error {
	return h.staffTransition(c, h.orderService.Deliver)
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	return h.staffTransition(c, h.orderService.Cancel)
}

// ---- wishlist ----

func (h *OrderHandler) ToggleWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	claims := middleware.ClaimsFrom(c)

	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	added, err := h.wishlistService.Toggle(ctx, claims.UserID, productID)
	if err != nil {
		return httpError(err)
	}

	message := "removed from wishlist"
	if added {
		message = "added to wishlist"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"added": added, "message": message})
}

func (h *OrderHandler) ListWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	claims := middleware.ClaimsFrom(c)

	products, err := h.wishlistService.List(ctx, claims.UserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *OrderHandler) staffTransition(c echo.Context, op func(ctx context.Context, orderID uint) error) error {
	ctx := c.Request().Context()

	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}

	if err := op(ctx, orderID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "order updated"})
}

func orderIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	return uint(id), nil
}
