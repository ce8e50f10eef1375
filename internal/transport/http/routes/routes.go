package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/config"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/transport/http/handlers"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/transport/http/middleware"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth      *usecase.AuthService
	Users     *usecase.UserService
	Notices   *usecase.NoticeService
	Resources *usecase.ResourceService
	Admin     *usecase.AdminService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	RateLimiter *middleware.RateLimiter
	Metrics     *middleware.HTTPMetrics
	Services    ServiceSet
	Database    DatabaseChecker
	Cache       CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.App.AllowedOrigins))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}
	r.Use(middleware.ResolveActor(deps.Services.Auth, deps.Logger))

	healthOptions := make([]handlers.HealthOption, 0, 2)

	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}

	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}

	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		authHandler := handlers.NewAuthHandler(deps.Services.Auth)

		signUpMiddlewares := buildRateLimitMiddlewares(deps, "auth_signup_ip", deps.Config.RateLimit.RegisterMaxAttempts)
		signInMiddlewares := buildRateLimitMiddlewares(deps, "auth_signin_ip", deps.Config.RateLimit.LoginMaxAttempts)
		authHandler.RegisterRoutes(authGroup, signUpMiddlewares, signInMiddlewares)

		requireActor := middleware.RequireActor()

		userGroup := api.Group("/users")
		userGroup.Use(requireActor)
		handlers.NewUserHandler(deps.Services.Users).RegisterRoutes(userGroup)

		noticeGroup := api.Group("/notices")
		noticeGroup.Use(requireActor)
		handlers.NewNoticeHandler(deps.Services.Notices).RegisterRoutes(noticeGroup)

		resourceGroup := api.Group("/resources")
		resourceGroup.Use(requireActor)
		handlers.NewResourceHandler(deps.Services.Resources).RegisterRoutes(resourceGroup)

		uploadGroup := api.Group("/upload")
		uploadGroup.Use(requireActor)
		handlers.NewUploadHandler(deps.Services.Users).RegisterRoutes(uploadGroup)

		catalogueGroup := api.Group("")
		catalogueGroup.Use(requireActor)
		handlers.NewCatalogueHandler(deps.Services.Resources).RegisterRoutes(catalogueGroup)

		adminGroup := api.Group("/admin")
		adminGroup.Use(middleware.RequireAdmin())
		handlers.NewAdminHandler(deps.Services.Admin).RegisterRoutes(adminGroup)
	}

	return r
}

func buildRateLimitMiddlewares(deps Dependencies, name string, limit int) []gin.HandlerFunc {
	if deps.RateLimiter == nil || deps.Config == nil || limit <= 0 {
		return nil
	}

	window := deps.Config.RateLimit.WindowDuration
	if window <= 0 {
		window = time.Minute
	}

	rule := middleware.RateLimitRule{
		Name:       name,
		Limit:      limit,
		Window:     window,
		Identifier: middleware.ClientIPIdentifier(),
	}

	return []gin.HandlerFunc{deps.RateLimiter.RateLimit(rule)}
}
