package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhive/taskhive/broker"
	"taskhive/taskhive/database"
	"taskhive/taskhive/models"
)

type TaskServiceInterface interface {
	CreateTask(db *database.Database, title, description, priority string, dueDate int64, assigneeID *uuid.UUID, ownerID uuid.UUID) (models.Task, error)
	GetAccessibleTasks(db *database.Database, callerID uuid.UUID) ([]models.Task, error)
	GetAccessibleTaskById(db *database.Database, id string, callerID uuid.UUID) (models.Task, error)
	UpdateTask(db *database.Database, id string, update models.TaskUpdate, callerID uuid.UUID) (models.Task, error)
	DeleteTask(db *database.Database, id string, callerID uuid.UUID) error
}

type TaskService struct{}

// CreateTask validates the input and inserts a new task owned by ownerID.
// There is no authorization beyond authentication: the caller always
// becomes the owner.
func (s *TaskService) CreateTask(db *database.Database, title, description, priority string, dueDate int64, assigneeID *uuid.UUID, ownerID uuid.UUID) (models.Task, error) {
	if title == "" {
		return models.Task{}, ErrInvalidInput
	}

	prio, ok := models.ParsePriority(priority)
	if !ok {
		return models.Task{}, ErrInvalidPriority
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	if assigneeID != nil {
		if err := userExists(tx, *assigneeID); err != nil {
			tx.Rollback()
			return models.Task{}, err
		}
	}

	task := models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Priority:    prio,
		IsCompleted: false,
		DueDate:     dueDate,
		OwnerID:     ownerID,
		AssigneeID:  assigneeID,
		LastUpdate:  time.Now().UTC(),
	}

	if err := tx.Create(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := recordTaskEvent(tx, broker.TaskCreated, task, ownerID); err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	publishTaskEvent(broker.TaskCreated, task, ownerID)

	return task, nil
}

// GetAccessibleTasks returns every task visible to the caller.
func (s *TaskService) GetAccessibleTasks(db *database.Database, callerID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	result := db.DB.Scopes(AccessibleTo(callerID)).Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// GetAccessibleTaskById fetches a single task. A task that exists but is
// not visible to the caller yields ErrForbidden, keeping "no such task"
// and "no access" observably distinct.
func (s *TaskService) GetAccessibleTaskById(db *database.Database, id string, callerID uuid.UUID) (models.Task, error) {
	var task models.Task
	if err := db.DB.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if !IsVisible(task, callerID) {
		return models.Task{}, ErrForbidden
	}

	return task, nil
}

// UpdateTask applies a partial update under the mutation policy. The
// whole update runs in one transaction: authorization and validation
// failures roll back with no partial writes.
func (s *TaskService) UpdateTask(db *database.Database, id string, update models.TaskUpdate, callerID uuid.UUID) (models.Task, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if err := AuthorizeUpdate(task, callerID, update); err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if update.IsEmpty() {
		tx.Rollback()
		return task, nil
	}

	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Priority != nil {
		prio, ok := models.ParsePriority(*update.Priority)
		if !ok {
			tx.Rollback()
			return models.Task{}, ErrInvalidPriority
		}
		task.Priority = prio
	}
	if update.DueDate != nil {
		task.DueDate = *update.DueDate
	}
	if update.AssigneeID != nil {
		if err := userExists(tx, *update.AssigneeID); err != nil {
			tx.Rollback()
			return models.Task{}, err
		}
		task.AssigneeID = update.AssigneeID
	}
	if update.IsCompleted != nil {
		task.IsCompleted = *update.IsCompleted
	}
	task.LastUpdate = time.Now().UTC()

	if err := tx.Save(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := recordTaskEvent(tx, broker.TaskUpdated, task, callerID); err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	publishTaskEvent(broker.TaskUpdated, task, callerID)

	return task, nil
}

// DeleteTask removes a task. Only the owner may delete, regardless of
// assignment.
func (s *TaskService) DeleteTask(db *database.Database, id string, callerID uuid.UUID) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := AuthorizeDelete(task, callerID); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&task).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := recordTaskEvent(tx, broker.TaskDeleted, task, callerID); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	publishTaskEvent(broker.TaskDeleted, task, callerID)

	return nil
}

func userExists(tx *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrAssigneeNotFound
	}
	return nil
}

func taskEventPayload(task models.Task) map[string]interface{} {
	payload := map[string]interface{}{
		"task_id":      task.ID.String(),
		"owner_id":     task.OwnerID.String(),
		"title":        task.Title,
		"is_completed": task.IsCompleted,
	}
	if task.AssigneeID != nil {
		payload["assignee_id"] = task.AssigneeID.String()
	}
	return payload
}

func recordTaskEvent(tx *gorm.DB, eventType broker.EventType, task models.Task, actorID uuid.UUID) error {
	event, err := models.NewEvent(string(eventType), "task", actorID.String(), taskEventPayload(task))
	if err != nil {
		return err
	}
	return tx.Create(event).Error
}

func publishTaskEvent(eventType broker.EventType, task models.Task, actorID uuid.UUID) {
	broker.PublishMessage(string(eventType), broker.NewStandardMessage(
		eventType, "task", actorID.String(), taskEventPayload(task),
	))
}

var TaskServiceInstance TaskServiceInterface = &TaskService{}
