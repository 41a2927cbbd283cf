package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// APIModule mounts routes under /api/v1. public carries no auth; authed
// already resolved the caller.
type APIModule interface {
	MountAPI(public, authed *gin.RouterGroup)
}

// AdminModule mounts routes under /admin/v1, which is owner-only.
type AdminModule interface{ MountAdmin(admin *gin.RouterGroup) }

// Modules mount in ascending priority; the default is 100.
type prioritizer interface{ Priority() int }

// Registry collects modules for one engine.
type Registry struct {
	api   []APIModule
	admin []AdminModule
}

// Register files mod under every module interface it implements.
func (r *Registry) Register(mods ...any) {
	for _, mod := range mods {
		if m, ok := mod.(APIModule); ok {
			r.api = append(r.api, m)
		}
		if m, ok := mod.(AdminModule); ok {
			r.admin = append(r.admin, m)
		}
	}
}

func (r *Registry) MountAPI(public, authed *gin.RouterGroup) {
	for _, m := range byPriority(r.api) {
		m.MountAPI(public, authed)
	}
}

func (r *Registry) MountAdmin(admin *gin.RouterGroup) {
	for _, m := range byPriority(r.admin) {
		m.MountAdmin(admin)
	}
}

func byPriority[M any](in []M) []M {
	mods := append([]M(nil), in...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	return mods
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
