package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"mhimmo/internal/core/auth"
	"mhimmo/internal/domain"
	resp "mhimmo/internal/transport/http/response"
)

const (
	KeyClaims = "claims"
	KeyUser   = "user"
)

// UserSource resolves token subjects to stored users.
type UserSource interface {
	UserByID(id string) (domain.User, bool)
}

// AuthJWT requires a bearer token whose subject still exists in users. The
// stored user, not the token claims, is what later role checks see.
func AuthJWT(j *auth.JWTer, users UserSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Abort(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.Abort(c, http.StatusUnauthorized, "invalid token")
			return
		}
		u, ok := users.UserByID(claims.UID)
		if !ok {
			resp.Abort(c, http.StatusUnauthorized, "unknown user")
			return
		}
		c.Set(KeyClaims, claims)
		c.Set(KeyUser, u)
		c.Next()
	}
}

// RequireRole rejects callers whose stored role is not in roles.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			resp.Abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !slices.Contains(roles, u.Role) {
			resp.Abort(c, http.StatusForbidden, "access denied")
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (domain.User, bool) {
	v, ok := c.Get(KeyUser)
	if !ok {
		return domain.User{}, false
	}
	u, ok := v.(domain.User)
	return u, ok
}
