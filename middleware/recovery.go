package middleware

import (
	"fmt"
	"runtime/debug"

	"kacchi/utils"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware turns a panic into a 500 envelope.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				utils.TrackError("panic")
				log.Error("panic recovered",
					"path", c.Request.URL.Path,
					"request_id", c.GetString(requestIDKey),
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				utils.InternalError(c, "Something went wrong. Please try again", fmt.Errorf("%v", rec))
			}
		}()
		c.Next()
	}
}
