package handler

import (
	"kacchi/middleware"
	"kacchi/model"
	"kacchi/usecase"
	"kacchi/utils"

	"github.com/gin-gonic/gin"
)

func CreateStoryHandler(c *gin.Context, stories *usecase.StoriesService) {
	var in model.StoryInput
	if !bindJSON(c, &in) {
		return
	}

	story, err := stories.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		utils.RespondError(c, err, "Story")
		return
	}

	utils.Created(c, "Story created successfully", story)
}

func GetStoriesHandler(c *gin.Context, stories *usecase.StoriesService) {
	list, err := stories.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err, "Story")
		return
	}

	utils.List(c, found(len(list), "story", "stories"), list, len(list))
}

func GetStoryHandler(c *gin.Context, stories *usecase.StoriesService) {
	story, err := stories.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Story")
		return
	}

	utils.Success(c, "Story loaded successfully", story)
}

func UpdateStoryHandler(c *gin.Context, stories *usecase.StoriesService) {
	var patch model.StoryPatch
	if !bindJSON(c, &patch) {
		return
	}

	story, err := stories.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err, "Story")
		return
	}

	utils.Success(c, "Story updated successfully", story)
}

func DeleteStoryHandler(c *gin.Context, stories *usecase.StoriesService) {
	story, err := stories.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Story")
		return
	}

	utils.Success(c, "Story and all chapters deleted successfully", deleted("deletedStory", gin.H{"id": story.ID, "title": story.Title}))
}

func CreateChapterHandler(c *gin.Context, stories *usecase.StoriesService) {
	var in model.ChapterInput
	if !bindJSON(c, &in) {
		return
	}

	chapter, err := stories.CreateChapter(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		// The only lookup before the insert is the parent story.
		utils.RespondError(c, err, "Story")
		return
	}

	utils.Created(c, "Chapter created successfully", chapter)
}

func UpdateChapterHandler(c *gin.Context, stories *usecase.StoriesService) {
	var patch model.ChapterPatch
	if !bindJSON(c, &patch) {
		return
	}

	chapter, err := stories.UpdateChapter(c.Request.Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err, "Chapter")
		return
	}

	utils.Success(c, "Chapter updated successfully", chapter)
}

func DeleteChapterHandler(c *gin.Context, stories *usecase.StoriesService) {
	chapter, err := stories.DeleteChapter(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Chapter")
		return
	}

	utils.Success(c, "Chapter deleted successfully", deleted("deletedChapter", gin.H{"id": chapter.ID, "title": chapter.Title}))
}
