package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/port"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/config"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/database"
	kafkainfra "github.com/Saimun-jd/CuetSphere-Backend/internal/infra/kafka"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/logger"
	redisinfra "github.com/Saimun-jd/CuetSphere-Backend/internal/infra/redis"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/security"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/seed"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/storage"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/telemetry"
	postgresrepo "github.com/Saimun-jd/CuetSphere-Backend/internal/repository/postgres"
	redisrepo "github.com/Saimun-jd/CuetSphere-Backend/internal/repository/redis"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/transport/http/middleware"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/transport/http/routes"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/usecase"
)

type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
	redis  *redisinfra.Client
	events port.EventPublisher
	tracer *telemetry.TracerProvider
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if _, err := telemetry.Attach(ctx, cfg); err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	var tracer *telemetry.TracerProvider
	if cfg.Telemetry.OTLPEndpoint != "" {
		tracer, err = telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
		if err != nil {
			log.Warn("failed to init tracer provider, continuing without tracing", zap.Error(err))
			tracer = nil
		}
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	argonCfg := security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	}
	if err := security.ConfigureArgon2(argonCfg); err != nil {
		return nil, fmt.Errorf("configure argon2: %w", err)
	}

	tokenService, err := security.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("init token service: %w", err)
	}

	redisClient, err := redisinfra.NewClient(cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool)

	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer, err := kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			eventPublisher = kafkainfra.NewEventPublisher(kafkaProducer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	attachmentStore, err := storage.NewS3Store(ctx, cfg.S3, log)
	if err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("init attachment store: %w", err)
	}

	rateLimitWindow := cfg.RateLimit.WindowDuration
	if rateLimitWindow <= 0 {
		rateLimitWindow = time.Minute
	}
	rateLimitStore := redisrepo.NewRateLimitRepository(redisClient.Client(), redisrepo.SlidingWindowConfig{
		KeyPrefix: "sphere:rate-limit",
		TTL:       rateLimitWindow * 2,
	})
	rateLimiter := middleware.NewRateLimiter(rateLimitStore, log)

	authService := usecase.NewAuthService(repos.Users, tokenService, eventPublisher, log)
	userService := usecase.NewUserService(repos.Users, attachmentStore, log)
	noticeService := usecase.NewNoticeService(repos.Notices, attachmentStore, eventPublisher, log)
	resourceService := usecase.NewResourceService(repos.Resources, repos.Courses, repos.Semesters, attachmentStore, log)
	adminService := usecase.NewAdminService(repos.Users, eventPublisher, log)

	seeder := seed.NewSeeder(repos.Users, repos.Courses, repos.Semesters, log)
	if err := seeder.Run(ctx, cfg.Seed); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("seed database: %w", err)
	}

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{Namespace: "sphere"})
	if err != nil {
		log.Warn("failed to init http metrics, continuing without them", zap.Error(err))
		metrics = nil
	}

	engine := routes.Register(routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		RateLimiter: rateLimiter,
		Metrics:     metrics,
		Database:    pool,
		Cache:       redisClient,
		Services: routes.ServiceSet{
			Auth:      authService,
			Users:     userService,
			Notices:   noticeService,
			Resources: resourceService,
			Admin:     adminService,
		},
	})

	return &Application{
		cfg:    cfg,
		engine: engine,
		logger: log,
		pool:   pool,
		redis:  redisClient,
		events: eventPublisher,
		tracer: tracer,
	}, nil
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()
	defer func() {
		if a.events != nil {
			_ = a.events.Close()
		}
	}()
	defer func() {
		if a.tracer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = a.tracer.Shutdown(shutdownCtx)
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting CUET Sphere API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
