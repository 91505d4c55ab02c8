package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/ecoagua/storefront/internal/api/handler"
	"github.com/ecoagua/storefront/internal/api/middleware"
	"github.com/ecoagua/storefront/internal/core/domain"
	"github.com/ecoagua/storefront/internal/core/ports"
	"github.com/ecoagua/storefront/internal/infrastructure/http/handlers"
)

// Deps carries everything NewRouter wires into the handlers.
type Deps struct {
	Log      zerolog.Logger
	Renderer echo.Renderer

	Sessions ports.SessionStore
	Catalog  ports.CatalogService
	Cart     ports.CartService
	Checkout ports.CheckoutService
	Auth     ports.AuthService

	Cookie     middleware.CookieConfig
	LogoutMode domain.LogoutMode
	StaticDir  string

	// Readiness checks keyed by dependency name.
	Checks map[string]handlers.Checker
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Operational routes (no session) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are mongo and redis up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if d.StaticDir != "" {
		e.Static("/assets", d.StaticDir)
	}

	// --- Storefront routes ---
	storeHandler := handler.NewStoreHandler(d.Catalog)
	cartHandler := handler.NewCartHandler(d.Cart, d.Checkout)
	authHandler := handler.NewAuthHandler(d.Auth, d.Cookie, d.LogoutMode)

	site := e.Group("", middleware.Session(d.Sessions, d.Cookie))

	site.GET("/", storeHandler.Home)
	site.GET("/products", storeHandler.Products)
	site.GET("/contact", storeHandler.Contact)
	site.GET("/about", storeHandler.About)
	site.GET("/post", storeHandler.Post)

	site.GET("/cart", cartHandler.Show)
	site.POST("/add-to-cart/:id", cartHandler.Add)
	site.POST("/remove-from-cart/:id", cartHandler.Remove)
	site.POST("/update-cart/:id", cartHandler.Update)
	site.POST("/checkout", cartHandler.Checkout)

	site.GET("/register", authHandler.RegisterForm)
	site.POST("/register", authHandler.Register)
	site.GET("/login", authHandler.LoginForm)
	site.POST("/login", authHandler.Login)
	site.POST("/logout", authHandler.Logout)
	site.GET("/logout", authHandler.Logout)

	return e
}
