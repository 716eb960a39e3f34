package handler

import (
	"net/http"
	"strings"

	"clothing-shop-api/internal/dto"
	"clothing-shop-api/internal/middleware"
	"clothing-shop-api/internal/model"
	"clothing-shop-api/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, profileResponse(user))
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, token)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing bearer token")
	}

	if err := h.authService.Logout(ctx, token); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	claims := middleware.ClaimsFrom(c)

	user, err := h.authService.Profile(ctx, claims.UserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, profileResponse(user))
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	claims := middleware.ClaimsFrom(c)

	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	user, err := h.authService.UpdateProfile(ctx, claims.UserID, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, profileResponse(user))
}

func profileResponse(user *model.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:                   user.ID,
		Username:             user.Username,
		Email:                user.Email,
		FirstName:            user.FirstName,
		LastName:             user.LastName,
		Phone:                user.Phone,
		Address:              user.Address,
		City:                 user.City,
		State:                user.State,
		ZipCode:              user.ZipCode,
		Country:              user.Country,
		ShippingAddress:      user.ShippingAddress,
		ShippingCity:         user.ShippingCity,
		ShippingState:        user.ShippingState,
		ShippingZip:          user.ShippingZip,
		NewsletterSubscribed: user.NewsletterSubscribed,
	}
}
