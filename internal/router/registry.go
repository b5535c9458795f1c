package router

import (
	"github.com/gin-gonic/gin"

	"github.com/rafhaeldeandrade/south-american-universities/pkg/response"
)

// Registry collects global middleware and feature modules, then mounts them
// on the engine root.
type Registry struct {
	Engine      *gin.Engine
	Root        *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
	docsURL     string
}

func NewRegistry(engine *gin.Engine, docsURL string) *Registry {
	return &Registry{Engine: engine, docsURL: docsURL}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	// engine-level so unmatched routes pass through them too; the root
	// group must be created afterwards to inherit them
	if len(r.middlewares) > 0 {
		r.Engine.Use(r.middlewares...)
	}
	r.Root = r.Engine.Group("/")
	for _, m := range r.modules {
		m.Register(r.Root)
	}
	r.Engine.NoRoute(func(c *gin.Context) {
		res := response.RouteNotFound(r.docsURL)
		c.JSON(res.StatusCode, res.Body)
	})
}
