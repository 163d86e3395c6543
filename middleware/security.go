package middleware

import (
	"net/http"

	"kacchi/utils"

	"github.com/gin-gonic/gin"
)

func RequestSizeLimiter(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.Fail(c, http.StatusRequestEntityTooLarge, "Request body is too large")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
