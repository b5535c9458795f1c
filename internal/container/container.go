package container

import (
	"github.com/sirupsen/logrus"

	"github.com/rafhaeldeandrade/south-american-universities/config"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/contract"
	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/repository"
	"github.com/rafhaeldeandrade/south-american-universities/internal/interface/middleware"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/helpers"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/metrics"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

// PasswordHasher both hashes and verifies passwords.
type PasswordHasher interface {
	contract.Hasher
	contract.HashComparer
}

var (
	cfg     *config.Config
	logger  *logrus.Logger
	metric  *metrics.Metrics
	limiter middleware.RateLimitStore

	jwtManager *helpers.JWTManager
	hasher     PasswordHasher

	accountRepo    repository.AccountRepository
	universityRepo repository.UniversityRepository
	searcher       contract.UniversitySearcher
	notifier       contract.Notifier
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config {
	if cfg == nil {
		return config.Load()
	}
	return cfg
}
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger == nil {
		return logrus.StandardLogger()
	}
	return logger
}
func SetMetrics(m *metrics.Metrics) { metric = m }
func GetMetrics() *metrics.Metrics  { return metric } // nil when disabled

// SetRateLimitStore takes the Redis client backing the limiter; leave unset
// to disable rate limiting.
func SetRateLimitStore(s middleware.RateLimitStore) { limiter = s }
func GetRateLimitStore() middleware.RateLimitStore  { return limiter }

func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.NewJWTManager(GetConfig().JWTSecret, GetConfig().JWTTTL)
}
func SetHasher(h PasswordHasher) { hasher = h }
func GetHasher() PasswordHasher  { return hasher }

func SetAccountRepository(r repository.AccountRepository) { accountRepo = r }
func GetAccountRepository() repository.AccountRepository  { return accountRepo }
func SetUniversityRepository(r repository.UniversityRepository) {
	universityRepo = r
}
func GetUniversityRepository() repository.UniversityRepository { return universityRepo }

func SetSearcher(s contract.UniversitySearcher) { searcher = s }
func GetSearcher() contract.UniversitySearcher  { return searcher }
func SetNotifier(n contract.Notifier)           { notifier = n }
func GetNotifier() contract.Notifier            { return notifier } // nil when messaging is off
