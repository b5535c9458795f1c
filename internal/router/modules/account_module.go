package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/rafhaeldeandrade/south-american-universities/internal/interface/http"
	"github.com/rafhaeldeandrade/south-american-universities/internal/interface/middleware"
)

type RateLimitOptions struct {
	Store         middleware.RateLimitStore
	Max           int
	Window        time.Duration
	Enabled       bool
	BypassPrivate bool
}

func (o RateLimitOptions) limiter() gin.HandlerFunc {
	if !o.Enabled || o.Store == nil {
		return func(c *gin.Context) { c.Next() }
	}
	var allow middleware.AllowFunc
	if o.BypassPrivate {
		allow = middleware.AllowPrivateIP()
	}
	return middleware.RateLimit(o.Store, o.Max, o.Window, middleware.KeyByIPAndPath(), allow)
}

// AccountModule serves signup, login and password changes.
type AccountModule struct {
	Handler   *handlers.AccountHandler
	RateLimit RateLimitOptions
}

func NewAccountModule(h *handlers.AccountHandler, rl RateLimitOptions) *AccountModule {
	return &AccountModule{Handler: h, RateLimit: rl}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	// Public with per-IP, per-route rate limiting
	limit := m.RateLimit.limiter()

	rg.POST("/signup", limit, handlers.Adapt(handlers.ControllerFunc(m.Handler.SignUp)))
	rg.POST("/login", limit, handlers.Adapt(handlers.ControllerFunc(m.Handler.SignIn)))
	rg.POST("/change-password", limit, handlers.Adapt(handlers.ControllerFunc(m.Handler.UpdatePassword)))
}
