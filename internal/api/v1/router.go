package v1

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sid-client/internal/api/v1/handler"
	"sid-client/internal/api/v1/middleware"
)

// RouterConfig wires the local status API
type RouterConfig struct {
	Logger   *slog.Logger
	Gatherer prometheus.Gatherer
	Status   handler.StatusProvider
	Ready    handler.ReadinessFunc
}

// NewRouter creates the gin engine serving health, heartbeat status and metrics
func NewRouter(config RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gatherer := config.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware(logger))

	handler.NewHealthHandler(config.Ready).SetupRoutes(router)
	handler.NewStatusHandler(config.Status).SetupRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return router
}
