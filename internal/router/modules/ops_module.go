package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	handlers "github.com/oksasatya/noteful/internal/interface/http"
	"github.com/oksasatya/noteful/pkg/metrics"
)

// OpsModule serves GET /healthz and, when a registry is set, GET /metrics.
type OpsModule struct {
	Health   *handlers.HealthHandler
	Registry *prometheus.Registry
}

func NewOpsModule(h *handlers.HealthHandler, reg *prometheus.Registry) *OpsModule {
	return &OpsModule{Health: h, Registry: reg}
}

func (m *OpsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.Health.Health)
	if m.Registry != nil {
		rg.GET("/metrics", gin.WrapH(metrics.Handler(m.Registry)))
	}
}
