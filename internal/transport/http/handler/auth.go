package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mhimmo/internal/domain"
	"mhimmo/internal/persistence"
	"mhimmo/internal/session"
	"mhimmo/internal/transport/http/ez"
	mdw "mhimmo/internal/transport/http/middleware"
)

type AuthModule struct{ Deps }

func (AuthModule) Priority() int { return 10 }

type initOut struct {
	Message string      `json:"message,omitempty"`
	Admin   domain.User `json:"admin"`
}

type loginIn struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionOut struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type loginOut struct {
	User    domain.User `json:"user"`
	Session sessionOut  `json:"session"`
}

type meOut struct {
	User domain.User `json:"user"`
}

func (m AuthModule) MountAPI(public, authed *gin.RouterGroup) {
	log := m.logger()

	ez.RegisterAction(public, ez.Action[struct{}, initOut]{
		Method: http.MethodGet,
		Path:   "/init",
		Binder: ez.BindNone,
		Log:    log,
		Handler: func(c *gin.Context, _ domain.User, _ *struct{}) (initOut, error) {
			for _, u := range m.Store.UsersByRole(domain.RoleOwner) {
				if u.Email == persistence.AdminEmail {
					return initOut{Message: "Admin already exists", Admin: u}, nil
				}
			}
			if _, taken := m.Store.UserByEmail(persistence.AdminEmail); taken {
				return initOut{}, ez.Conflict("admin email belongs to a non-owner account")
			}
			if !m.Creds.Has(persistence.AdminEmail) {
				pw := persistence.BootstrapCredentials[persistence.AdminEmail]
				if err := m.Creds.Register(c.Request.Context(), persistence.AdminEmail, pw); err != nil {
					return initOut{}, err
				}
			}
			u, err := m.Store.CreateUser(c.Request.Context(), domain.NewUser{
				Name:  "Propriétaire Admin",
				Email: persistence.AdminEmail,
				Role:  domain.RoleOwner,
			})
			if err != nil {
				return initOut{}, err
			}
			log.Info("admin user created", zap.String("id", u.ID))
			return initOut{Message: "Admin user created successfully", Admin: u}, nil
		},
	})

	// login gets its own per-IP bucket on top of the global limiter
	throttled := public.Group("", mdw.RateLimitPerIP(1, 10))
	ez.RegisterAction(throttled, ez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Log:    log,
		Handler: func(c *gin.Context, _ domain.User, in *loginIn) (loginOut, error) {
			u, ok := session.Authenticate(m.Store, m.Creds, strings.TrimSpace(in.Email), in.Password)
			if !ok {
				return loginOut{}, ez.Unauthorized("Invalid credentials")
			}
			tok, exp, err := m.JWT.Issue(u.Identity())
			if err != nil {
				return loginOut{}, ez.Internal("issue token failed", err)
			}
			return loginOut{
				User:    u,
				Session: sessionOut{AccessToken: tok, TokenType: "Bearer", ExpiresAt: exp},
			}, nil
		},
	})

	ez.RegisterAction(authed, ez.Action[struct{}, meOut]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(_ *gin.Context, caller domain.User, _ *struct{}) (meOut, error) {
			return meOut{User: caller}, nil
		},
	})
}
