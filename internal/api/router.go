package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/recipe-app/recipe-api/internal/api/handler"
	"github.com/recipe-app/recipe-api/internal/api/middleware"
	"github.com/recipe-app/recipe-api/internal/core/ports"

	_ "github.com/recipe-app/recipe-api/docs"
)

// Dependencies are the services and probes the router wires into handlers.
type Dependencies struct {
	Users   ports.UserService
	Auth    ports.AuthService
	Recipes ports.RecipeService
	Health  handler.DependencyChecker
	Logger  zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	// Per-router HTTP metrics; /metrics gathers them with the default registry.
	httpMetrics := prometheus.NewRegistry()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.Metrics(httpMetrics))
	e.Use(middleware.RequestLogger(deps.Logger))

	userHandler := handler.NewUserHandler(deps.Users)
	tokenHandler := handler.NewTokenHandler(deps.Auth)
	recipeHandler := handler.NewRecipeHandler(deps.Recipes)
	adminHandler := handler.NewAdminHandler(deps.Users)
	authenticated := middleware.Auth(deps.Auth)

	// --- Accounts ---
	e.POST("/users", userHandler.Register)
	e.POST("/users/token", tokenHandler.Create)

	me := e.Group("/users/me", authenticated)
	me.GET("", userHandler.Me)
	me.PUT("", userHandler.UpdateMe)
	me.PATCH("", userHandler.UpdateMe)

	// --- Recipes (owner scoped) ---
	recipes := e.Group("/recipes", authenticated)
	recipes.GET("", recipeHandler.List)
	recipes.POST("", recipeHandler.Create)
	recipes.GET("/:id", recipeHandler.Get)
	recipes.PUT("/:id", recipeHandler.Replace)
	recipes.PATCH("/:id", recipeHandler.Patch)
	recipes.DELETE("/:id", recipeHandler.Delete)

	// --- Admin ---
	admin := e.Group("/admin/users", authenticated, middleware.RequireAdmin())
	admin.GET("", adminHandler.ListUsers)
	admin.POST("", adminHandler.CreateUser)
	admin.GET("/:id", adminHandler.GetUser)
	admin.PATCH("/:id", adminHandler.UpdateUser)
	admin.DELETE("/:id", adminHandler.DeleteUser)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Health).Readiness)

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(
		prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics},
		promhttp.HandlerOpts{},
	)))
	e.GET("/docs", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	e.GET("/docs/*", echoSwagger.WrapHandler)

	return e
}
