package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskhive/taskhive/database"
	"taskhive/taskhive/models"
	"taskhive/taskhive/services"
)

type createTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" binding:"required"`
	DueDate     *int64     `json:"due_date" binding:"required"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
}

func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface) {
	group.GET("/tasks", func(c *gin.Context) { GetTasks(c, db, taskService) })
	group.POST("/tasks", func(c *gin.Context) { CreateTask(c, db, taskService) })
	group.GET("/tasks/:id", func(c *gin.Context) { GetTaskById(c, db, taskService) })
	group.PUT("/tasks/:id", func(c *gin.Context) { UpdateTask(c, db, taskService) })
	group.DELETE("/tasks/:id", func(c *gin.Context) { DeleteTask(c, db, taskService) })
}

// callerID pulls the authenticated user id set by the auth middleware.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return userIDInterface.(uuid.UUID), true
}

func CreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var request createTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	createdTask, err := taskService.CreateTask(db, request.Title, request.Description,
		request.Priority, *request.DueDate, request.AssigneeID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPriority):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		case errors.Is(err, services.ErrAssigneeNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assignee not found"})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, createdTask)
}

func GetTaskById(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	task, err := taskService.GetAccessibleTaskById(db, c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to access this task"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

func GetTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	tasks, err := taskService.GetAccessibleTasks(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func UpdateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var update models.TaskUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	updatedTask, err := taskService.UpdateTask(db, c.Param("id"), update, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this task"})
		case errors.Is(err, services.ErrInvalidPriority):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		case errors.Is(err, services.ErrAssigneeNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assignee not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, updatedTask)
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := taskService.DeleteTask(db, c.Param("id"), userID); err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this task"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}
