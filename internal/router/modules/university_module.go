package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/rafhaeldeandrade/south-american-universities/internal/interface/http"
	"github.com/rafhaeldeandrade/south-american-universities/internal/interface/middleware"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/helpers"
)

// UniversityModule serves the university directory.
// Reads are public; writes optionally require a bearer token.
type UniversityModule struct {
	Handler    *handlers.UniversityHandler
	JWT        *helpers.JWTManager
	AuthWrites bool
}

func NewUniversityModule(h *handlers.UniversityHandler, jwt *helpers.JWTManager, authWrites bool) *UniversityModule {
	return &UniversityModule{Handler: h, JWT: jwt, AuthWrites: authWrites}
}

func (m *UniversityModule) Register(rg *gin.RouterGroup) {
	h := m.Handler
	rg.GET("/universities", handlers.Adapt(handlers.ControllerFunc(h.Index)))
	rg.GET("/universities/search", handlers.Adapt(handlers.ControllerFunc(h.Search)))
	rg.GET("/universities/:universityId", handlers.Adapt(handlers.ControllerFunc(h.Show)))

	writes := rg.Group("/")
	if m.AuthWrites {
		writes.Use(middleware.BearerAuth(m.JWT))
	}
	{
		writes.POST("/universities", handlers.Adapt(handlers.ControllerFunc(h.Create)))
		writes.PUT("/universities/:universityId", handlers.Adapt(handlers.ControllerFunc(h.Update)))
		writes.DELETE("/universities/:universityId", handlers.Adapt(handlers.ControllerFunc(h.Destroy)))
	}
}
