package handler

import (
	"kacchi/middleware"
	"kacchi/model"
	"kacchi/usecase"
	"kacchi/utils"

	"github.com/gin-gonic/gin"
)

// GetProfileHandler recomputes stats on every read. A caller asking for
// another user's id gets a 403.
func GetProfileHandler(c *gin.Context, profiles *usecase.ProfileService) {
	profile, err := profiles.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Profile")
		return
	}

	utils.Success(c, "Profile loaded successfully", profile)
}

func UpdateProfileHandler(c *gin.Context, profiles *usecase.ProfileService) {
	var patch model.ProfilePatch
	if !bindJSON(c, &patch) {
		return
	}

	profile, err := profiles.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err, "Profile")
		return
	}

	utils.Success(c, "Profile updated successfully", profile)
}
