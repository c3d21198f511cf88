package services

import "errors"

// Common errors
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAssigneeNotFound   = errors.New("assignee not found")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrForbidden          = errors.New("forbidden")
	ErrInternal           = errors.New("internal server error")
)
