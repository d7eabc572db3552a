package main

import (
	"log"
	"strings"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/getsentry/sentry-go"

	"github.com/Ahmadmeltaha/tareeqi-backend/internal/auth"
	"github.com/Ahmadmeltaha/tareeqi-backend/internal/bookings"
	"github.com/Ahmadmeltaha/tareeqi-backend/internal/reviews"
	"github.com/Ahmadmeltaha/tareeqi-backend/internal/rides"
	"github.com/Ahmadmeltaha/tareeqi-backend/internal/users"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/common"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/config"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/database"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/health"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/logger"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/middleware"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/ratelimit"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/redis"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load("api")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Sentry.Enabled && cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Server.Environment,
			Release:     "tareeqi-backend@" + version,
		}); err != nil {
			log.Fatalf("Failed to initialize Sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	pool, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(pool)

	if err := database.RunMigrations(&cfg.Database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics("api"))
	if cfg.Sentry.Enabled {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	jwtSecret := cfg.JWT.Secret
	tokenTTL := time.Duration(cfg.JWT.Expiration) * time.Hour

	limiter := ratelimit.NewLimiter(redisClient.Client, cfg.RateLimit)
	router.Use(ratelimit.Middleware(limiter, jwtSecret))

	router.GET("/healthz", common.HealthCheckWithDeps("api", version, map[string]func() error{
		"postgres": health.DatabaseChecker(pool),
		"redis":    health.RedisChecker(redisClient.Client),
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := auth.NewHandler(auth.NewService(auth.NewRepository(pool), jwtSecret, tokenTTL))
	authHandler.RegisterRoutes(router, jwtSecret)

	usersHandler := users.NewHandler(users.NewService(users.NewRepository(pool)))
	usersHandler.RegisterRoutes(router, jwtSecret)

	ridesHandler := rides.NewHandler(rides.NewService(rides.NewRepository(pool)))
	ridesHandler.RegisterRoutes(router, jwtSecret)

	bookingsHandler := bookings.NewHandler(bookings.NewService(bookings.NewRepository(pool)))
	bookingsHandler.RegisterRoutes(router, jwtSecret)

	reviewsHandler := reviews.NewHandler(reviews.NewService(reviews.NewRepository(pool)))
	reviewsHandler.RegisterRoutes(router, jwtSecret)

	addr := ":" + cfg.Server.Port
	log.Printf("API server starting on port %s", cfg.Server.Port)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
