package handler

import (
	"kacchi/middleware"
	"kacchi/model"
	"kacchi/usecase"
	"kacchi/utils"

	"github.com/gin-gonic/gin"
)

func CreateMemoryHandler(c *gin.Context, memories *usecase.MemoriesService) {
	var in model.MemoryInput
	if !bindJSON(c, &in) {
		return
	}

	memory, err := memories.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		utils.RespondError(c, err, "Memory")
		return
	}

	utils.Created(c, "Memory saved successfully", memory)
}

func GetMemoriesHandler(c *gin.Context, memories *usecase.MemoriesService) {
	from, to, err := model.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		utils.RespondError(c, err, "Memory")
		return
	}
	filter := model.MemoryFilter{From: from, To: to, Mood: model.Mood(c.Query("mood"))}

	list, err := memories.List(c.Request.Context(), middleware.UserID(c), filter)
	if err != nil {
		utils.RespondError(c, err, "Memory")
		return
	}

	utils.List(c, found(len(list), "memory", "memories"), list, len(list))
}

func GetMemoryHandler(c *gin.Context, memories *usecase.MemoriesService) {
	memory, err := memories.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Memory")
		return
	}

	utils.Success(c, "Memory loaded successfully", memory)
}

func UpdateMemoryHandler(c *gin.Context, memories *usecase.MemoriesService) {
	var patch model.MemoryPatch
	if !bindJSON(c, &patch) {
		return
	}

	memory, err := memories.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err, "Memory")
		return
	}

	utils.Success(c, "Memory updated successfully", memory)
}

func DeleteMemoryHandler(c *gin.Context, memories *usecase.MemoriesService) {
	memory, err := memories.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Memory")
		return
	}

	utils.Success(c, "Memory deleted successfully", deleted("deletedMemory", gin.H{"id": memory.ID}))
}
