package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	resp "mhimmo/internal/transport/http/response"
)

// Refresh reloads state from the durable backend before each request.
// Concurrent requests share one reload.
func Refresh(reload func(context.Context) error, l *zap.Logger) gin.HandlerFunc {
	if l == nil {
		l = zap.NewNop()
	}
	var sf singleflight.Group
	return func(c *gin.Context) {
		ctx := context.WithoutCancel(c.Request.Context())
		_, err, _ := sf.Do("reload", func() (any, error) { return nil, reload(ctx) })
		if err != nil {
			l.Error("store refresh failed", zap.Error(err))
			resp.Abort(c, http.StatusServiceUnavailable, "storage unavailable")
			return
		}
		c.Next()
	}
}
