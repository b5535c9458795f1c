package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/rafhaeldeandrade/south-american-universities/config"
	"github.com/rafhaeldeandrade/south-american-universities/internal/container"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
	esinfra "github.com/rafhaeldeandrade/south-american-universities/internal/infrastructure/elasticsearch"
	"github.com/rafhaeldeandrade/south-american-universities/internal/infrastructure/memory"
	pginfra "github.com/rafhaeldeandrade/south-american-universities/internal/infrastructure/postgres"
	"github.com/rafhaeldeandrade/south-american-universities/internal/interface/middleware"
	"github.com/rafhaeldeandrade/south-american-universities/internal/router"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/helpers"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/mailer"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/metrics"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	accounts, universities, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	// Search index (optional)
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		esClient, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("failed to init elasticsearch client: %v", err)
		}
		index := esinfra.NewIndex(esClient, cfg.ESUniversitiesIndex, logger)
		universities = esinfra.NewIndexedUniversityRepository(universities, index, logger)
		container.SetSearcher(index)
	}

	// Redis backs the account route rate limiter
	if cfg.RateLimitEnabled && cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		container.SetRateLimitStore(rdb)
	}

	// Account notifications (optional)
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer pub.Close()
		container.SetNotifier(mailer.NewQueueNotifier(pub, cfg.AppName, cfg.DocsURL, cfg.SupportURL))
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	hasher := helpers.NewPasswordHasher(cfg.HashAlgorithm, helpers.Argon2Params{
		Memory:  uint32(cfg.Argon2Memory),
		Time:    uint32(cfg.Argon2Time),
		Threads: uint8(cfg.Argon2Threads),
		SaltLen: helpers.DefaultArgon2Params.SaltLen,
		KeyLen:  helpers.DefaultArgon2Params.KeyLen,
	}, cfg.BcryptCost)

	// Provide singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetMetrics(m)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL))
	container.SetHasher(hasher)
	container.SetAccountRepository(accounts)
	container.SetUniversityRepository(universities)

	// Gin engine and global middleware
	r := gin.New()
	reg := router.NewRegistry(r, cfg.DocsURL)
	reg.Use(gin.Recovery())
	reg.Use(middleware.RequestIDMiddleware())
	reg.Use(middleware.RealIP(cfg.TrustProxyHeaders))
	reg.Use(middleware.Metrics(m))
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:  cfg.CORSOrigins(),
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 1 && corsCfg.AllowOrigins[0] == "*" {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
	}
	reg.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		reg.Use(gin.Logger())
	}

	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// openStore picks the repositories for STORAGE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repository.AccountRepository, repository.UniversityRepository, func()) {
	switch cfg.StorageDriver {
	case "memory":
		logger.Warn("using in-memory storage; data is lost on restart")
		return memory.NewAccountRepository(), memory.NewUniversityRepository(), func() {}
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			log.Fatalf("migration failed: %v", err)
		}
		return pginfra.NewAccountRepository(pool), pginfra.NewUniversityRepository(pool), pool.Close
	default:
		log.Fatalf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
		return nil, nil, nil
	}
}
