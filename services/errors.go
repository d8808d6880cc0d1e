package services

import "errors"

// Common errors. Routes translate these into HTTP statuses; services
// never map to status codes themselves.
var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrParentTaskNotFound = errors.New("parent task not found")
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidToken       = errors.New("invalid token")
)
