package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/mkoval24/printflow/internal/ports"
	"github.com/mkoval24/printflow/internal/usecase"
	"github.com/mkoval24/printflow/pkg/httpx"
)

type Handler struct {
	runner *usecase.SerialRunner
	health *usecase.HealthChecker
	cache  ports.ResolutionCache
	log    ports.Logger
}

func NewHandler(runner *usecase.SerialRunner, health *usecase.HealthChecker, cache ports.ResolutionCache, log ports.Logger) *Handler {
	return &Handler{runner: runner, health: health, cache: cache, log: log}
}

func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/process", h.process)
	r.GET("/services/health", h.servicesHealth)
	r.GET("/cache/stats", h.cacheStats)
	r.POST("/cache/clear", h.cacheClear)

	return r
}

// process запускает один прогон конвейера. Конкурентный запрос при уже
// идущем прогоне получает 409 сразу, без ожидания.
func (h *Handler) process(c *gin.Context) {
	ctx := c.Request.Context()

	res, ok := h.runner.TryRun(ctx)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "processing already in progress",
		})
		return
	}

	status := http.StatusOK
	if !res.Success() {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{
		"success": res.Success(),
		"run_id":  res.RunID,
		"outcome": res.Outcome,
		"results": res,
	})
}

func (h *Handler) servicesHealth(c *gin.Context) {
	statuses := h.health.Check(c.Request.Context())

	status := http.StatusOK
	if !usecase.AllHealthy(statuses) {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"healthy":  usecase.AllHealthy(statuses),
		"services": statuses,
	})
}

func (h *Handler) cacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.cache.Stats(c.Request.Context()))
}

func (h *Handler) cacheClear(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.cache.Clear(ctx); err != nil {
		h.log.Errorf(ctx, "cache clear failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cache cleared"})
}
