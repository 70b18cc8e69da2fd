package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"usertable-api/internal/service"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// GetUsers handles GET /api/users
func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, "get_users", "Error getting users", err)
		return
	}

	c.JSON(http.StatusOK, users)
}
