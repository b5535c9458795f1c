package router

import (
	"github.com/rafhaeldeandrade/south-american-universities/internal/application/account"
	"github.com/rafhaeldeandrade/south-american-universities/internal/application/university"
	"github.com/rafhaeldeandrade/south-american-universities/internal/container"
	"github.com/rafhaeldeandrade/south-american-universities/internal/infrastructure/elasticsearch"
	handlers "github.com/rafhaeldeandrade/south-american-universities/internal/interface/http"
	"github.com/rafhaeldeandrade/south-american-universities/internal/router/modules"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/helpers"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/validation"
)

func buildAccountHandler(v validation.SchemaValidator) *handlers.AccountHandler {
	repo := container.GetAccountRepository()
	hasher := container.GetHasher()
	ev := validation.NewEmailValidator()

	return handlers.NewAccountHandler(
		account.NewCreateAccount(repo, helpers.UUIDGenerator{}, hasher, container.GetJWT(), ev),
		account.NewLogin(repo, hasher, ev),
		account.NewChangePassword(repo, hasher, hasher, ev),
		v,
		container.GetNotifier(),
		container.GetMetrics(),
		container.GetLogger(),
	)
}

func buildUniversityHandler(v validation.SchemaValidator) *handlers.UniversityHandler {
	repo := container.GetUniversityRepository()
	searcher := container.GetSearcher()
	if searcher == nil {
		// a nil index answers every search with no hits
		searcher = (*elasticsearch.Index)(nil)
	}

	return handlers.NewUniversityHandler(handlers.UniversityUseCases{
		Create: university.NewCreateUniversity(repo, helpers.UUIDGenerator{}),
		Load:   university.NewLoadUniversity(repo),
		List:   university.NewLoadUniversities(repo),
		Update: university.NewUpdateUniversity(repo),
		Delete: university.NewDeleteUniversity(repo),
		Search: university.NewSearchUniversities(searcher),
	}, v, container.GetMetrics(), container.GetLogger())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	v := validation.NewStructValidator()
	cfg := container.GetConfig()

	r.Add(modules.NewOpsModule(container.GetMetrics(), cfg.MetricsEnabled))
	r.Add(modules.NewAccountModule(buildAccountHandler(v), modules.RateLimitOptions{
		Store:         container.GetRateLimitStore(),
		Max:           cfg.RateLimitMax,
		Window:        cfg.RateLimitWindow,
		Enabled:       cfg.RateLimitEnabled,
		BypassPrivate: cfg.RateLimitBypassPrivate,
	}))
	r.Add(modules.NewUniversityModule(buildUniversityHandler(v), container.GetJWT(), cfg.AuthWrites))
}
