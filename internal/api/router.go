package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/habitflow/habitflow-api/internal/api/handler"
	"github.com/habitflow/habitflow-api/internal/api/middleware"
	"github.com/habitflow/habitflow-api/internal/core/service"
	mongodb "github.com/habitflow/habitflow-api/internal/infrastructure/db/mongo"
	redisdb "github.com/habitflow/habitflow-api/internal/infrastructure/db/redis"
	healthhandlers "github.com/habitflow/habitflow-api/internal/infrastructure/http/handlers"
)

// Deps carries the external collaborators the router wires together.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	Uploader  service.AvatarUploader // nil disables avatar uploads
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("habitflow"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	habitRepo := mongodb.NewHabitRepository(deps.DB)
	friendshipRepo := mongodb.NewFriendshipRepository(deps.DB)
	analyticsCache := redisdb.NewAnalyticsCache(deps.Redis)

	// --- Services ---
	authService := service.NewAuthService(userRepo, deps.JWTSecret)
	habitService := service.NewHabitService(habitRepo, analyticsCache, deps.Logger)
	friendService := service.NewFriendService(friendshipRepo, userRepo, deps.Logger)
	analyticsService := service.NewAnalyticsService(habitRepo, analyticsCache, deps.Logger)
	profileService := service.NewProfileService(userRepo, habitRepo, deps.Uploader, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	habitHandler := handler.NewHabitHandler(habitService)
	friendHandler := handler.NewFriendHandler(friendService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	profileHandler := handler.NewProfileHandler(profileService)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Habit routes ---
	habits := e.Group("/habits", authMiddleware)
	habits.GET("", habitHandler.List)
	habits.POST("", habitHandler.Create)
	habits.PUT("/:id", habitHandler.Update)
	habits.DELETE("/:id", habitHandler.Delete)
	habits.POST("/:id/toggle-completion", habitHandler.ToggleCompletion)

	// --- Friend routes ---
	friends := e.Group("/friends", authMiddleware)
	friends.GET("/search", friendHandler.Search)
	friends.GET("", friendHandler.List)
	friends.POST("/request", friendHandler.SendRequest)
	friends.PUT("/request/:id", friendHandler.Respond)
	friends.DELETE("/:id", friendHandler.Remove)

	// --- Analytics ---
	e.GET("/analytics", analyticsHandler.Get, authMiddleware)

	// --- Profile routes ---
	profile := e.Group("/profile", authMiddleware)
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)
	profile.PUT("/avatar", profileHandler.UpdateAvatar)
	profile.GET("/:userId", profileHandler.GetPublic)

	// --- Operational endpoints (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
