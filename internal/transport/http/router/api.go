package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"mhimmo/internal/core/config"
	"mhimmo/internal/core/server"
	"mhimmo/internal/transport/http/handler"
	mdw "mhimmo/internal/transport/http/middleware"
)

// baseEngine carries the middleware chain shared by both servers plus the
// health and metrics endpoints.
func baseEngine(l *zap.Logger, lim config.Limits) *gin.Engine {
	r := server.NewRouter(
		mdw.Recovery(l),
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(orDefault(lim.RPS, 200)), int(orDefault(lim.Burst, 400))),
		mdw.ConcurrencyLimit(int64(orDefault(lim.Concurrency, 300))),
		mdw.MaxBodyBytes(int64(orDefault(lim.MaxBodyBytes, 1<<20))),
		mdw.Timeout(time.Duration(orDefault(lim.TimeoutSec, 10))*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)
	r.GET("/health", health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC().Format(time.RFC3339)})
}

func orDefault[N int | int64 | float64](v, def N) N {
	if v <= 0 {
		return def
	}
	return v
}

// NewAPIEngine serves /api/v1 for every role.
func NewAPIEngine(l *zap.Logger, lim config.Limits, d handler.Deps) *gin.Engine {
	r := baseEngine(l, lim)

	api := r.Group("/api/v1")
	api.GET("/health", health)
	authed := api.Group("", mdw.AuthJWT(d.JWT, d.Store))

	var reg Registry
	reg.Register(handler.Modules(d)...)
	reg.MountAPI(api, authed)
	return r
}
