package handler

import (
	"kacchi/middleware"
	"kacchi/model"
	"kacchi/usecase"
	"kacchi/utils"

	"github.com/gin-gonic/gin"
)

func CreateRoomHandler(c *gin.Context, rooms *usecase.RoomsService) {
	var in model.RoomInput
	if !bindJSON(c, &in) {
		return
	}

	room, err := rooms.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		utils.RespondError(c, err, "Room")
		return
	}

	utils.Created(c, "New writing room created! Start writing your thoughts", room)
}

func GetRoomsHandler(c *gin.Context, rooms *usecase.RoomsService) {
	list, err := rooms.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err, "Room")
		return
	}

	message := found(len(list), "room", "rooms")
	if len(list) == 0 {
		message = "No rooms yet. Create your first writing room"
	}
	utils.List(c, message, list, len(list))
}

func GetRoomHandler(c *gin.Context, rooms *usecase.RoomsService) {
	room, err := rooms.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Room")
		return
	}

	utils.Success(c, "Room loaded successfully", room)
}

func UpdateRoomHandler(c *gin.Context, rooms *usecase.RoomsService) {
	var patch model.RoomPatch
	if !bindJSON(c, &patch) {
		return
	}

	room, err := rooms.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		utils.RespondError(c, err, "Room")
		return
	}

	utils.Success(c, "Your work has been saved successfully", room)
}

func DeleteRoomHandler(c *gin.Context, rooms *usecase.RoomsService) {
	room, err := rooms.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Room")
		return
	}

	utils.Success(c, "Room deleted successfully", deleted("deletedRoom", gin.H{"id": room.ID, "title": room.Title, "type": room.Type}))
}

func GetRoomNotesHandler(c *gin.Context, rooms *usecase.RoomsService) {
	notes, err := rooms.ListNotes(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Room")
		return
	}

	utils.List(c, found(len(notes), "note", "notes"), notes, len(notes))
}
