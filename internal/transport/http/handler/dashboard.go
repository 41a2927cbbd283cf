package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mhimmo/internal/domain"
	"mhimmo/internal/store"
	"mhimmo/internal/transport/http/ez"
)

type DashboardModule struct{ Deps }

type statsOut struct {
	Stats store.Stats `json:"stats"`
}

func (m DashboardModule) stats(_ *gin.Context, caller domain.User, _ *struct{}) (statsOut, error) {
	return statsOut{Stats: m.Store.Stats(caller.ID)}, nil
}

func (m DashboardModule) MountAPI(_, authed *gin.RouterGroup) {
	ez.RegisterAction(authed, ez.Action[struct{}, statsOut]{
		Method:  http.MethodGet,
		Path:    "/dashboard",
		Binder:  ez.BindNone,
		Roles:   managers,
		Handler: m.stats,
	})
}

func (m DashboardModule) MountAdmin(admin *gin.RouterGroup) {
	ez.RegisterAction(admin, ez.Action[struct{}, statsOut]{
		Method:  http.MethodGet,
		Path:    "/stats",
		Binder:  ez.BindNone,
		Auth:    true,
		Handler: m.stats,
	})
}
