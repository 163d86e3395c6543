package handler

import (
	"strconv"

	"kacchi/middleware"
	"kacchi/model"
	"kacchi/usecase"
	"kacchi/utils"

	"github.com/gin-gonic/gin"
)

func CreateNoteHandler(c *gin.Context, notes *usecase.NotesService) {
	var in model.NoteInput
	if !bindJSON(c, &in) {
		return
	}

	note, err := notes.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		utils.RespondError(c, err, "Note")
		return
	}

	utils.Created(c, "Note created successfully", note)
}

func GetNotesHandler(c *gin.Context, notes *usecase.NotesService) {
	filter := model.NoteFilter{
		RoomID: c.Query("roomId"),
		Tag:    c.Query("tag"),
	}
	if raw := c.Query("archived"); raw != "" {
		archived, err := strconv.ParseBool(raw)
		if err != nil {
			utils.BadRequest(c, "archived must be true or false")
			return
		}
		filter.Archived = &archived
	}

	list, err := notes.List(c.Request.Context(), middleware.UserID(c), filter)
	if err != nil {
		utils.RespondError(c, err, "Note")
		return
	}

	utils.List(c, found(len(list), "note", "notes"), list, len(list))
}

func GetNoteHandler(c *gin.Context, notes *usecase.NotesService) {
	note, err := notes.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Note")
		return
	}

	utils.Success(c, "Note loaded successfully", note)
}

func UpdateNoteHandler(c *gin.Context, notes *usecase.NotesService) {
	var patch model.NotePatch
	if !bindJSON(c, &patch) {
		return
	}

	note, err := notes.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err, "Note")
		return
	}

	utils.Success(c, "Note updated successfully", note)
}

func DeleteNoteHandler(c *gin.Context, notes *usecase.NotesService) {
	note, err := notes.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Note")
		return
	}

	utils.Success(c, "Note deleted successfully", deleted("deletedNote", gin.H{"id": note.ID, "title": note.Title}))
}
