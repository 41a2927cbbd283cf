package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	resp "mhimmo/internal/transport/http/response"
)

// MaxBodyBytes caps request bodies at n bytes. Handlers that hit the cap and
// record the error on the context without answering get a 413.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Writer.Written() {
			return
		}
		for _, e := range c.Errors {
			var tooBig *http.MaxBytesError
			if errors.As(e.Err, &tooBig) {
				resp.Abort(c, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
		}
	}
}
