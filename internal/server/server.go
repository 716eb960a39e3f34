package server

import (
	"net/http"

	"clothing-shop-api/internal/handler"
	"clothing-shop-api/internal/middleware"
	"clothing-shop-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

type Server struct {
	echo *echo.Echo

	authService    service.AuthService
	authHandler    *handler.AuthHandler
	catalogHandler *handler.CatalogHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	paymentHandler *handler.PaymentHandler
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(
	authService service.AuthService,
	catalogService service.CatalogService,
	reviewService service.ReviewService,
	cartService service.CartService,
	checkoutService service.CheckoutService,
	orderService service.OrderService,
	wishlistService service.WishlistService,
	paymentService service.PaymentService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		authService:    authService,
		authHandler:    handler.NewAuthHandler(authService),
		catalogHandler: handler.NewCatalogHandler(catalogService, reviewService),
		cartHandler:    handler.NewCartHandler(cartService),
		orderHandler:   handler.NewOrderHandler(checkoutService, orderService, wishlistService),
		paymentHandler: handler.NewPaymentHandler(paymentService, orderService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- public --------
	api.POST("/auth/register", s.authHandler.Register)
	api.POST("/auth/login", s.authHandler.Login)
	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/products/:slug", s.catalogHandler.GetProduct)
	api.GET("/categories", s.catalogHandler.ListCategories)

	// -------- authenticated --------
	auth := api.Group("", middleware.JWTAuth(s.authService))
	auth.POST("/auth/logout", s.authHandler.Logout)
	auth.GET("/auth/profile", s.authHandler.Profile)
	auth.PUT("/auth/profile", s.authHandler.UpdateProfile)

	auth.POST("/products/:id/reviews", s.catalogHandler.AddReview)

	auth.GET("/cart", s.cartHandler.GetCart)
	auth.POST("/cart/items", s.cartHandler.AddItem)
	auth.PUT("/cart/items/:productID", s.cartHandler.UpdateItem)
	auth.DELETE("/cart/items/:productID", s.cartHandler.RemoveItem)
	auth.DELETE("/cart", s.cartHandler.Clear)

	auth.POST("/checkout", s.orderHandler.Checkout)
	auth.GET("/orders", s.orderHandler.ListOrders)
	auth.GET("/orders/:id", s.orderHandler.GetOrder)

	auth.GET("/wishlist", s.orderHandler.ListWishlist)
	auth.POST("/wishlist/:productID", s.orderHandler.ToggleWishlist)

	// -------- customer payment verification --------
	auth.GET("/orders/:id/payment", s.paymentHandler.PinStatus)
	auth.POST("/orders/:id/payment/verify", s.paymentHandler.VerifyPin,
		echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(rate.Limit(1))))

	// -------- staff surface --------
	admin := api.Group("/admin", middleware.JWTAuth(s.authService), middleware.RequireStaff())
	admin.POST("/orders/:id/pin", s.paymentHandler.GeneratePin)
	admin.DELETE("/orders/:id/pin", s.paymentHandler.ResetPin)
	admin.POST("/orders/:id/confirm-payment", s.paymentHandler.ConfirmPayment)
	admin.POST("/orders/:id/ship", s.orderHandler.Ship)
	admin.POST("/orders/:id/deliver", s.orderHandler.Deliver)
	admin.POST("/orders/:id/cancel", s.orderHandler.Cancel)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
