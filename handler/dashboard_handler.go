package handler

import (
	"kacchi/middleware"
	"kacchi/model"
	"kacchi/usecase"
	"kacchi/utils"

	"github.com/gin-gonic/gin"
)

func DashboardHandler(c *gin.Context, dashboard *usecase.DashboardService) {
	dash, err := dashboard.Build(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err, "Dashboard")
		return
	}

	utils.Success(c, "Dashboard loaded successfully", dash)
}

func SearchHandler(c *gin.Context, search *usecase.SearchService) {
	results, err := search.Search(c.Request.Context(), middleware.UserID(c),
		c.Query("q"), c.Query("tag"), model.SearchType(c.Query("type")))
	if err != nil {
		utils.RespondError(c, err, "Result")
		return
	}

	total := results.Total()
	utils.Results(c, found(total, "result", "results"), results, total)
}
