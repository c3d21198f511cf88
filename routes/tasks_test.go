package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"taskhive/taskhive/database"
	"taskhive/taskhive/models"
	"taskhive/taskhive/services"
)

var (
	testCallerID   = uuid.MustParse("90a12345-f12a-98c4-a456-513432930000")
	testOwnedTask  = uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	testOthersTask = uuid.MustParse("123e4567-e89b-12d3-a456-426614174001")
	testMissing    = uuid.MustParse("123e4567-e89b-12d3-a456-426614174999")
)

// MockTaskService mirrors the policy decisions for a fixed fixture: one
// task owned by the test caller, one assigned to someone else, one absent.
type MockTaskService struct{}

func (m *MockTaskService) CreateTask(db *database.Database, title, description, priority string, dueDate int64, assigneeID *uuid.UUID, ownerID uuid.UUID) (models.Task, error) {
	prio, ok := models.ParsePriority(priority)
	if !ok {
		return models.Task{}, services.ErrInvalidPriority
	}
	return models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Priority:    prio,
		DueDate:     dueDate,
		OwnerID:     ownerID,
		AssigneeID:  assigneeID,
	}, nil
}

func (m *MockTaskService) GetAccessibleTasks(db *database.Database, callerID uuid.UUID) ([]models.Task, error) {
	return []models.Task{
		{ID: testOwnedTask, Title: "Owned task", Priority: models.PriorityLow, OwnerID: callerID},
		{ID: uuid.New(), Title: "Unassigned task", Priority: models.PriorityHigh, OwnerID: uuid.New()},
	}, nil
}

func (m *MockTaskService) GetAccessibleTaskById(db *database.Database, id string, callerID uuid.UUID) (models.Task, error) {
	switch id {
	case testOwnedTask.String():
		return models.Task{ID: testOwnedTask, Title: "Owned task", Priority: models.PriorityLow, OwnerID: callerID}, nil
	case testOthersTask.String():
		return models.Task{}, services.ErrForbidden
	}
	return models.Task{}, services.ErrTaskNotFound
}

func (m *MockTaskService) UpdateTask(db *database.Database, id string, update models.TaskUpdate, callerID uuid.UUID) (models.Task, error) {
	switch id {
	case testOwnedTask.String():
		task := models.Task{ID: testOwnedTask, Title: "Owned task", Priority: models.PriorityLow, OwnerID: callerID}
		if update.Description != nil {
			task.Description = *update.Description
		}
		return task, nil
	case testOthersTask.String():
		return models.Task{}, services.ErrForbidden
	}
	return models.Task{}, services.ErrTaskNotFound
}

func (m *MockTaskService) DeleteTask(db *database.Database, id string, callerID uuid.UUID) error {
	switch id {
	case testOwnedTask.String():
		return nil
	case testOthersTask.String():
		return services.ErrForbidden
	}
	return services.ErrTaskNotFound
}

func setupTaskRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	db := &database.Database{}

	apiGroup := router.Group("/api/v1")
	apiGroup.Use(func(c *gin.Context) {
		c.Set("userID", testCallerID)
		c.Next()
	})
	RegisterTaskRoutes(apiGroup, db, &MockTaskService{})
	return router
}

func TestCreateTask(t *testing.T) {
	router := setupTaskRouter()

	t.Run("Valid Task", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"title":"Write report","priority":"HIGH","due_date":1700000000}`
		req, _ := http.NewRequest("POST", "/api/v1/tasks", bytes.NewBufferString(body))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)

		var task models.Task
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
		assert.Equal(t, testCallerID, task.OwnerID)
		assert.False(t, task.IsCompleted)
	})

	t.Run("Missing Due Date", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/tasks", bytes.NewBufferString(`{"title":"Write report","priority":"HIGH"}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid Priority", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"title":"Write report","priority":"URGENT","due_date":1700000000}`
		req, _ := http.NewRequest("POST", "/api/v1/tasks", bytes.NewBufferString(body))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetTaskById(t *testing.T) {
	router := setupTaskRouter()

	t.Run("Task Not Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/tasks/"+testMissing.String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Task Forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/tasks/"+testOthersTask.String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Task Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/tasks/"+testOwnedTask.String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Owned task")
	})
}

func TestGetTasks(t *testing.T) {
	router := setupTaskRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/tasks", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Owned task")
	assert.Contains(t, w.Body.String(), "Unassigned task")
}

func TestUpdateTask(t *testing.T) {
	router := setupTaskRouter()

	t.Run("Task Not Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/v1/tasks/"+testMissing.String(), bytes.NewBufferString(`{"description":"x"}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Task Forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/v1/tasks/"+testOthersTask.String(), bytes.NewBufferString(`{"description":"x"}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Task Updated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/v1/tasks/"+testOwnedTask.String(), bytes.NewBufferString(`{"description":"updated"}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "updated")
	})
}

func TestDeleteTask(t *testing.T) {
	router := setupTaskRouter()

	t.Run("Task Not Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/v1/tasks/"+testMissing.String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Task Forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/v1/tasks/"+testOthersTask.String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Task Deleted", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/v1/tasks/"+testOwnedTask.String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestTaskRoutesRequireAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	apiGroup := router.Group("/api/v1")
	RegisterTaskRoutes(apiGroup, &database.Database{}, &MockTaskService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/tasks", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
