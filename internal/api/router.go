package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/openiam/iam-service/docs"
	"github.com/openiam/iam-service/internal/api/handler"
	"github.com/openiam/iam-service/internal/api/middleware"
	"github.com/openiam/iam-service/internal/core/auth"
	"github.com/openiam/iam-service/internal/core/domain"
	"github.com/openiam/iam-service/internal/core/service"
	"github.com/openiam/iam-service/internal/infrastructure/config"
	mongostore "github.com/openiam/iam-service/internal/infrastructure/db/mongo"
	redisstore "github.com/openiam/iam-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("iam"))

	// --- Dependencies ---
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	codec := auth.NewClaimsCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	issuer := auth.NewTokenIssuer(codec, nil)
	verifier := auth.NewTokenVerifier(codec, nil)

	userRepo := mongostore.NewUserRepository(db)
	guard := auth.NewAccessGuard(verifier, userRepo)
	throttle := redisstore.NewLoginThrottle(rdb, cfg.Auth.MaxLoginFails, cfg.Auth.LoginFailWindow)
	identity := service.NewIdentityService(userRepo, hasher, issuer, throttle, log)

	identityHandler := handler.NewIdentityHandler(identity)
	adminHandler := handler.NewAdminHandler(identity)
	authn := middleware.Auth(guard)
	adminOnly := middleware.RequireRole(guard, domain.RoleAdmin)

	// --- Public routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to IAM Service API"})
	})
	e.POST("/api/register", identityHandler.Register)
	e.POST("/api/login", identityHandler.Login)

	// --- Protected routes (any resolved, active user) ---
	e.GET("/api/profile", identityHandler.Profile, authn)
	e.PUT("/api/profile", identityHandler.UpdateProfile, authn)
	e.POST("/api/profile/change-password", identityHandler.ChangePassword, authn)

	// --- Admin routes ({admin} is the only privileged set in the system) ---
	admin := e.Group("/api/admin", authn, adminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.PATCH("/users/:id/role", adminHandler.UpdateUserRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
