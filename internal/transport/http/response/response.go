package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the body of every non-2xx response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Error builds an error body; an empty msg falls back to the status text.
func Error(status int, msg string) ErrorBody {
	if msg == "" {
		msg = http.StatusText(status)
	}
	return ErrorBody{Error: msg}
}

func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Error(status, msg))
}
