package controllers

import (
	"net/http"

	"healthtrack/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	view, err := uc.Users.ProfileView(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := uc.Users.UpdateProfile(c.Request.Context(), uid, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeleteProfile removes the account and all of its data.
func (uc *UserController) DeleteProfile(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	if err := uc.Users.DeleteUser(c.Request.Context(), uid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
