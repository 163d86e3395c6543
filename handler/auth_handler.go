package handler

import (
	"kacchi/model"
	"kacchi/usecase"
	"kacchi/utils"

	"github.com/gin-gonic/gin"
)

func RegisterHandler(c *gin.Context, accounts *usecase.AccountsService) {
	var req model.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := accounts.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err, "User")
		return
	}

	utils.Created(c, "User registered successfully", result)
}

func LoginHandler(c *gin.Context, accounts *usecase.AccountsService) {
	var req model.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := accounts.Login(c.Request.Context(), req, c.Request.UserAgent())
	if err != nil {
		utils.RespondError(c, err, "User")
		return
	}

	utils.Success(c, "Login successful", result)
}
