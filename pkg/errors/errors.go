package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// Validation errors (bad user input, duplicate names)
	ErrTypeValidation ErrorType = "validation"
	// Missing entities
	ErrTypeNotFound ErrorType = "notfound"
	// Storage read/write errors
	ErrTypeStorage ErrorType = "storage"
	// Generic application errors
	ErrTypeApp ErrorType = "application"
)

// AppError represents a structured application error
type AppError struct {
	Type        ErrorType              `json:"type"`
	Code        string                 `json:"code"`
	Message     string                 `json:"message"`
	UserMessage string                 `json:"userMessage"`
	InternalErr error                  `json:"-"`
	Context     map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.InternalErr != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Code, e.Message, e.InternalErr)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// Unwrap exposes the wrapped error to errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.InternalErr
}

// GetUserMessage returns a user-friendly error message
func (e *AppError) GetUserMessage() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	return e.Message
}

// WithUserMessage sets a user-friendly message
func (e *AppError) WithUserMessage(msg string) *AppError {
	e.UserMessage = msg
	return e
}

// WithContext returns a copy of the error carrying extra context. The
// copy keeps predefined errors immutable.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	clone := *e
	clone.Context = make(map[string]interface{}, len(e.Context)+1)
	for k, v := range e.Context {
		clone.Context[k] = v
	}
	clone.Context[key] = value
	return &clone
}

// ContextString renders the context for log output.
func (e *AppError) ContextString() string {
	if len(e.Context) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e.Context))
	for k, v := range e.Context {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, ", ")
}

// New creates a new AppError
func New(errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errType,
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:        errType,
		Code:        code,
		Message:     message,
		InternalErr: err,
	}
}

// Predefined errors for common scenarios
var (
	ErrFolderNameEmpty = New(ErrTypeValidation, "FOLDER_NAME_EMPTY", "folder name cannot be empty").
				WithUserMessage("Folder name cannot be empty")

	ErrFolderNameTaken = New(ErrTypeValidation, "FOLDER_NAME_TAKEN", "folder name already in use").
				WithUserMessage("A folder with this name already exists")

	ErrFolderNotFound = New(ErrTypeNotFound, "FOLDER_NOT_FOUND", "folder not found").
				WithUserMessage("The requested folder could not be found")

	ErrNoteTitleEmpty = New(ErrTypeValidation, "NOTE_TITLE_EMPTY", "note title cannot be empty").
				WithUserMessage("Note title cannot be empty")

	ErrNoteNotFound = New(ErrTypeNotFound, "NOTE_NOT_FOUND", "note not found").
			WithUserMessage("The requested note could not be found")

	ErrTrashedItemNotFound = New(ErrTypeNotFound, "TRASHED_ITEM_NOT_FOUND", "trashed item not found").
				WithUserMessage("This item is no longer in the trash")

	ErrReminderNotFound = New(ErrTypeNotFound, "REMINDER_NOT_FOUND", "reminder not found").
				WithUserMessage("The requested reminder could not be found")

	ErrReminderTitleEmpty = New(ErrTypeValidation, "REMINDER_TITLE_EMPTY", "reminder title cannot be empty").
				WithUserMessage("Reminder title cannot be empty")

	ErrInvalidDueDate = New(ErrTypeValidation, "INVALID_DUE_DATE", "invalid due date or time").
				WithUserMessage("Please provide a valid due date and time")

	ErrInvalidLanguage = New(ErrTypeValidation, "INVALID_LANGUAGE", "unknown language").
				WithUserMessage("Unknown language selection")

	ErrInvalidPhoto = New(ErrTypeValidation, "INVALID_PHOTO", "invalid photo payload").
			WithUserMessage("Photos must be inline image data")
)
