package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mhimmo/internal/domain"
	"mhimmo/internal/store"
	"mhimmo/internal/transport/http/ez"
)

type TenantModule struct{ Deps }

type tenantsOut struct {
	Tenants []store.TenantOverview `json:"tenants"`
}

func (m TenantModule) MountAPI(_, authed *gin.RouterGroup) {
	ez.RegisterAction(authed, ez.Action[struct{}, tenantsOut]{
		Method: http.MethodGet,
		Path:   "/tenants",
		Binder: ez.BindNone,
		Roles:  managers,
		Handler: func(_ *gin.Context, _ domain.User, _ *struct{}) (tenantsOut, error) {
			out := m.Store.TenantOverviews()
			if out == nil {
				out = []store.TenantOverview{}
			}
			return tenantsOut{Tenants: out}, nil
		},
	})
}
