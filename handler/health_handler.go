package handler

import (
	"context"
	"net/http"
	"time"

	"kacchi/utils"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

type healthStatus struct {
	Status        string  `json:"status"`
	Store         string  `json:"store"`
	Uptime        string  `json:"uptime"`
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
}

// HealthHandler reports store reachability and host load.
func HealthHandler(c *gin.Context, ping func(context.Context) error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := healthStatus{
		Status: "ok",
		Store:  "up",
		Uptime: time.Since(startedAt).Round(time.Second).String(),
	}

	load := utils.GetHostLoad()
	status.CPUPercent = load.CPUPercent
	status.MemoryPercent = load.MemoryPercent

	if err := ping(ctx); err != nil {
		log.Warn("store ping failed", "err", err)
		status.Status = "degraded"
		status.Store = "down"
		c.JSON(http.StatusServiceUnavailable, &utils.Response{
			Success: false,
			Message: "Kacchi Likhavat API is running but the store is unreachable",
			Data:    status,
		})
		return
	}

	utils.Success(c, "Kacchi Likhavat API is running", status)
}
