package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mhimmo/internal/domain"
	"mhimmo/internal/transport/http/ez"
)

type UserModule struct{ Deps }

type createUserIn struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6,max=72"`
	Name     string      `json:"name" binding:"required,max=128"`
	Role     domain.Role `json:"role" binding:"required"`
	Phone    string      `json:"phone"`
}

type userOut struct {
	User domain.User `json:"user"`
}

type usersOut struct {
	Users []domain.User `json:"users"`
}

type searchUsersQ struct {
	Q    string      `form:"q"`
	Role domain.Role `form:"role"`
}

func (m UserModule) MountAPI(_, authed *gin.RouterGroup) {
	log := m.logger()

	ez.RegisterAction(authed, ez.Action[createUserIn, userOut]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: ez.BindJSON,
		Roles:  []domain.Role{domain.RoleOwner},
		Log:    log,
		Handler: func(c *gin.Context, caller domain.User, in *createUserIn) (userOut, error) {
			if !in.Role.Valid() {
				return userOut{}, ez.BadRequest("unknown role " + string(in.Role))
			}
			email := strings.TrimSpace(in.Email)
			// the credential table is keyed by email, so the email must be free there first
			if err := m.Creds.Register(c.Request.Context(), email, in.Password); err != nil {
				return userOut{}, err
			}
			u, err := m.Store.CreateUser(c.Request.Context(), domain.NewUser{
				Name:  strings.TrimSpace(in.Name),
				Email: email,
				Role:  in.Role,
				Phone: strings.TrimSpace(in.Phone),
			})
			if err != nil {
				return userOut{}, err
			}
			log.Info("user created", zap.String("id", u.ID), zap.String("role", string(u.Role)), zap.String("by", caller.ID))
			return userOut{User: u}, nil
		},
	})

	ez.RegisterAction(authed, ez.Action[struct{}, usersOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindNone,
		Roles:  []domain.Role{domain.RoleOwner, domain.RoleManager},
		Handler: func(_ *gin.Context, caller domain.User, _ *struct{}) (usersOut, error) {
			all := m.Store.Users()
			out := make([]domain.User, 0, len(all))
			for _, u := range all {
				if u.ID != caller.ID {
					out = append(out, u)
				}
			}
			return usersOut{Users: out}, nil
		},
	})
}

func (m UserModule) MountAdmin(admin *gin.RouterGroup) {
	ez.RegisterAction(admin, ez.Action[searchUsersQ, usersOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(_ *gin.Context, _ domain.User, in *searchUsersQ) (usersOut, error) {
			if in.Role != "" && !in.Role.Valid() {
				return usersOut{}, ez.BadRequest("unknown role " + string(in.Role))
			}
			return usersOut{Users: m.Store.SearchUsers(in.Q, in.Role)}, nil
		},
	})
}
