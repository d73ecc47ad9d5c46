package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"brewbuy/internal/core/config"
	"brewbuy/internal/core/server"
	mdw "brewbuy/internal/transport/http/middleware"
	resp "brewbuy/internal/transport/http/response"
)

// newEngine 两个服务共用的中间件栈 + /health /metrics
func newEngine(l *zap.Logger, corsOrigins []string, lim config.Limits) *gin.Engine {
	r := server.NewRouter(l, corsOrigins)

	timeout := time.Duration(lim.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(rate.Limit(lim.RPS), lim.Burst),
		mdw.ConcurrencyLimit(max(lim.Concurrency, 1)),
		mdw.MaxBodyBytes(max(lim.MaxBodyBytes, 1<<20)),
		mdw.Timeout(timeout),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(gin.H{"status": "ok"})) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
