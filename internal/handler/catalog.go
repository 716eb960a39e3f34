package handler

import (
	"net/http"
	"strconv"

	"clothing-shop-api/internal/dto"
	"clothing-shop-api/internal/middleware"
	"clothing-shop-api/internal/repository"
	"clothing-shop-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	reviewService  service.ReviewService
}

func NewCatalogHandler(catalogService service.CatalogService, reviewService service.ReviewService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		reviewService:  reviewService,
	}
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ProductListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query params")
	}

	products, err := h.catalogService.ListProducts(ctx, &repository.ProductFilter{
		CategorySlug: req.Category,
		Query:        req.Query,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		Sort:         req.Sort,
		FeaturedOnly: req.Featured,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	detail, err := h.catalogService.GetProduct(ctx, c.Param("slug"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, detail)
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) AddReview(c echo.Context) error {
	ctx := c.Request().Context()
	claims := middleware.ClaimsFrom(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req dto.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviewService.AddReview(ctx, uint(productID), claims.UserID, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, review)
}
