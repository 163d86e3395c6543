package handler

import (
	"kacchi/middleware"
	"kacchi/model"
	"kacchi/services"
	"kacchi/utils"

	"github.com/gin-gonic/gin"
)

func PresignUploadHandler(c *gin.Context, media services.MediaPresigner) {
	var req model.PresignRequest
	if !bindJSON(c, &req) {
		return
	}

	upload, err := media.PresignUpload(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.RespondError(c, err, "Upload")
		return
	}

	utils.Success(c, "Upload URL created", upload)
}
