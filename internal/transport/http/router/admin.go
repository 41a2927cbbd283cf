package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mhimmo/internal/core/config"
	"mhimmo/internal/domain"
	"mhimmo/internal/transport/http/handler"
	mdw "mhimmo/internal/transport/http/middleware"
)

// NewAdminEngine serves /admin/v1 to owners only.
func NewAdminEngine(l *zap.Logger, lim config.Limits, d handler.Deps) *gin.Engine {
	r := baseEngine(l, lim)

	admin := r.Group("/admin/v1")
	if d.Reload != nil {
		admin.Use(mdw.Refresh(d.Reload, l))
	}
	admin.Use(mdw.AuthJWT(d.JWT, d.Store), mdw.RequireRole(domain.RoleOwner))

	var reg Registry
	reg.Register(handler.Modules(d)...)
	reg.MountAdmin(admin)
	return r
}
