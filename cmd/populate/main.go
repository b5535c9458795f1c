package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/rafhaeldeandrade/south-american-universities/config"
	"github.com/rafhaeldeandrade/south-american-universities/internal/application/populate"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
	esinfra "github.com/rafhaeldeandrade/south-american-universities/internal/infrastructure/elasticsearch"
	"github.com/rafhaeldeandrade/south-american-universities/internal/infrastructure/hipolabs"
	pginfra "github.com/rafhaeldeandrade/south-american-universities/internal/infrastructure/postgres"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/helpers"
)

const lockKey = "populate:universities"

func main() {
	once := flag.Bool("once", false, "run a single population and exit")
	force := flag.Bool("force", false, "run even if the last population is recent")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-populate", cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	pgRepo := pginfra.NewUniversityRepository(pool)
	var repo repository.UniversityRepository = pgRepo
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		esClient, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("failed to init elasticsearch client: %v", err)
		}
		repo = esinfra.NewIndexedUniversityRepository(pgRepo, esinfra.NewIndex(esClient, cfg.ESUniversitiesIndex, logger), logger)
	}

	job := populate.NewJob(cfg.Countries(), hipolabs.NewClient(cfg.PopulateSourceURL, cfg.PopulateHTTPTimeout), repo, helpers.UUIDGenerator{}, logger)
	job.History = pgRepo

	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unavailable; running without the populate lock")
		} else {
			// lease outlives any single run
			job.Lock = func(ctx context.Context) (func(context.Context) error, bool, error) {
				l, ok, err := helpers.AcquireLock(ctx, rdb, lockKey, uuid.NewString(), time.Hour)
				if err != nil || !ok {
					return nil, ok, err
				}
				return l.Release, true, nil
			}
		}
	}

	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		job.Snapshots = helpers.NewGCSUploader(gcsClient, cfg.GCSBucket)
	}

	runOnce(ctx, job, cfg.PopulateInterval, *force || *once, logger)
	if *once {
		return
	}

	ticker := time.NewTicker(cfg.PopulateInterval)
	defer ticker.Stop()
	logger.WithField("interval", cfg.PopulateInterval.String()).Info("populate scheduler started")
	for {
		select {
		case <-ctx.Done():
			logger.Info("populate scheduler stopped")
			return
		case <-ticker.C:
			runOnce(ctx, job, cfg.PopulateInterval, true, logger)
		}
	}
}

func runOnce(ctx context.Context, job *populate.Job, interval time.Duration, force bool, logger *logrus.Logger) {
	if !force {
		due, err := job.Due(ctx, interval)
		if err != nil {
			helpers.LogError(logger, "check last population", err, nil)
			return
		}
		if !due {
			logger.Info("universities populated recently; skipping")
			return
		}
	}

	res, err := job.Run(ctx)
	switch {
	case errors.Is(err, populate.ErrLockHeld):
		logger.Info("population already running elsewhere; skipping")
	case err != nil:
		helpers.LogError(logger, "population failed", err, nil)
	default:
		helpers.LogInfo(logger, "population finished", logrus.Fields{
			"total":    res.Total,
			"snapshot": res.SnapshotURI,
		})
	}
}
