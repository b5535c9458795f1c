package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rafhaeldeandrade/south-american-universities/pkg/metrics"
)

// OpsModule exposes liveness and Prometheus metrics.
type OpsModule struct {
	Metrics *metrics.Metrics
	Enabled bool
}

func NewOpsModule(m *metrics.Metrics, enabled bool) *OpsModule {
	return &OpsModule{Metrics: m, Enabled: enabled}
}

func (m *OpsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	if m.Enabled && m.Metrics != nil {
		rg.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Metrics.Registry, promhttp.HandlerOpts{})))
	}
}
