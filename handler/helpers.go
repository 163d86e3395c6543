package handler

import (
	"fmt"
	"net/http"

	"kacchi/utils"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into v, answering 400 on failure.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		utils.TrackError("validation")
		utils.BadRequest(c, utils.BindingMessage(err))
		return false
	}
	return true
}

// found formats "Found 3 notes" style messages.
func found(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("Found %d %s", n, singular)
	}
	return fmt.Sprintf("Found %d %s", n, plural)
}

// deleted wraps the removed entity's summary under key, e.g.
// {"deletedNote": {"id": ..., "title": ...}}.
func deleted(key string, summary gin.H) gin.H {
	return gin.H{key: summary}
}

func notFoundRoute(c *gin.Context) {
	utils.Fail(c, http.StatusNotFound, "Route not found")
}
