package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mhimmo/internal/core/config"
	"mhimmo/internal/core/logger"
)

// NewRouter returns an engine with CORS open to every origin followed by mws.
func NewRouter(mws ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	cc := cors.DefaultConfig()
	cc.AllowAllOrigins = true
	cc.AllowHeaders = append(cc.AllowHeaders, "Authorization", "X-Request-ID")
	cc.ExposeHeaders = []string{"X-Request-ID"}
	r.Use(cors.New(cc))
	r.Use(mws...)
	return r
}

func BuildServer(addr string, handler http.Handler, h config.HTTP, l *zap.Logger) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    seconds(h.ReadTimeoutSec, 5),
		WriteTimeout:   seconds(h.WriteTimeoutSec, 10),
		IdleTimeout:    seconds(h.IdleTimeoutSec, 60),
		MaxHeaderBytes: 1 << 20,
		ErrorLog:       logger.ToStdLogger(l.Named("http"), zapcore.WarnLevel),
	}
}

func seconds(n, def int) time.Duration {
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }

// HumanURL is the address to print for people: wildcard hosts become loopback.
func HumanURL(host string, port int) string {
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return "http://" + Addr(host, port)
}
