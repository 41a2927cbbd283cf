// Package ez registers typed JSON actions on gin route groups.
package ez

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mhimmo/internal/domain"
	mdw "mhimmo/internal/transport/http/middleware"
	resp "mhimmo/internal/transport/http/response"
)

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none"
)

// AErr carries the HTTP status an action failure maps to.
type AErr struct {
	Status int
	Msg    string
	Err    error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Status: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Status: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Status: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Status: http.StatusNotFound, Msg: msg} }
func Conflict(msg string) error     { return &AErr{Status: http.StatusConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Status: http.StatusInternalServerError, Msg: msg, Err: err}
}

// FromDomain maps store and session errors onto HTTP statuses. Errors it
// does not recognise become 500s.
func FromDomain(err error) error {
	var ae *AErr
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ae):
		return ae
	case errors.Is(err, domain.ErrPersist):
		return Internal("storage unavailable", err)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrPropertyNotFound):
		return &AErr{Status: http.StatusNotFound, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrPropertyOccupied), errors.Is(err, domain.ErrEmailTaken):
		return &AErr{Status: http.StatusConflict, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrEmptyContent), errors.Is(err, domain.ErrPasswordTooLong):
		return &AErr{Status: http.StatusBadRequest, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrRecipientNotAllowed), errors.Is(err, domain.ErrForbidden):
		return &AErr{Status: http.StatusForbidden, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrInvalidCredentials):
		return &AErr{Status: http.StatusUnauthorized, Msg: err.Error(), Err: err}
	default:
		return Internal("internal error", err)
	}
}

// Action is one endpoint: I is bound from the request, O is written as the
// JSON body on success.
type Action[I any, O any] struct {
	Method string
	Path   string
	Binder Binder
	Auth   bool          // require an authenticated caller
	Roles  []domain.Role // allowed caller roles; empty allows any
	Status int           // success status, 200 when zero
	Log    *zap.Logger
	// Handler receives the caller (zero value on public actions).
	Handler func(c *gin.Context, caller domain.User, in *I) (O, error)
}

func RegisterAction[I any, O any](g *gin.RouterGroup, a Action[I, O]) {
	log := a.Log
	if log == nil {
		log = zap.NewNop()
	}
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}

	h := func(c *gin.Context) {
		caller, authed := mdw.CurrentUser(c)
		if a.Auth || len(a.Roles) > 0 {
			if !authed {
				resp.Abort(c, http.StatusUnauthorized, "unauthorized")
				return
			}
			if len(a.Roles) > 0 && !slices.Contains(a.Roles, caller.Role) {
				resp.Abort(c, http.StatusForbidden, "access denied")
				return
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			var tooBig *http.MaxBytesError
			if errors.As(bindErr, &tooBig) {
				resp.Abort(c, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			resp.Abort(c, http.StatusBadRequest, bindErr.Error())
			return
		}

		out, err := a.Handler(c, caller, &in)
		if err != nil {
			var ae *AErr
			if !errors.As(FromDomain(err), &ae) {
				ae = &AErr{Status: http.StatusInternalServerError, Err: err}
			}
			if ae.Status >= http.StatusInternalServerError {
				log.Error("action failed", zap.String("path", c.FullPath()), zap.Error(err))
				_ = c.Error(err)
			}
			resp.Abort(c, ae.Status, ae.Error())
			return
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		g.GET(a.Path, h)
	case http.MethodPut:
		g.PUT(a.Path, h)
	case http.MethodPatch:
		g.PATCH(a.Path, h)
	case http.MethodDelete:
		g.DELETE(a.Path, h)
	default:
		g.POST(a.Path, h)
	}
}
