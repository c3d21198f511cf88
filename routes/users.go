package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhive/taskhive/database"
	"taskhive/taskhive/services"
)

func RegisterUserRoutes(group *gin.RouterGroup, db *database.Database, userService services.UserServiceInterface) {
	group.GET("/users", func(c *gin.Context) { GetUsers(c, db, userService) })
	group.GET("/users/:id", func(c *gin.Context) { GetUserById(c, db, userService) })
}

func GetUserById(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	id := c.Param("id")
	user, err := userService.GetUserById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func GetUsers(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	params := make(map[string]interface{})

	if email := c.Query("email"); email != "" {
		params["email"] = email
	}

	users, err := userService.GetUsers(db, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}
