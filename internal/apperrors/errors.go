package apperrors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrorType classifies application errors for handling and logging
type ErrorType string

const (
	// ErrorTypeValidation covers malformed caller input. Handlers recover
	// from it by falling back to documented defaults where possible.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration means the user has not set up the data the
	// operation needs (e.g. an empty correction scale). Surfaced as
	// guidance, never as a failure page.
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeUnsupported marks requests for something the system does not
	// offer, such as an unknown export format.
	ErrorTypeUnsupported ErrorType = "unsupported"
	ErrorTypeDatabase    ErrorType = "database"
	ErrorTypeInternal    ErrorType = "internal"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Code     string
	Message  string
	Internal error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []any {
	fields := []any{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
	}
	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}
	return fields
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
	}
}

// Predefined errors
var (
	// ErrNoScaleConfigured is returned when dose resolution is requested
	// but the user has no correction scale bands at all.
	ErrNoScaleConfigured = New(ErrorTypeConfiguration, "NO_SCALE", "no correction scale configured")
	// ErrNoScheduleConfigured is returned when the user has no scheduled
	// insulin entries.
	ErrNoScheduleConfigured = New(ErrorTypeConfiguration, "NO_SCHEDULE", "no insulin schedule configured")
	// ErrUnsupportedFormat is returned for an unknown export format.
	ErrUnsupportedFormat = New(ErrorTypeUnsupported, "BAD_FORMAT", "unsupported export format")
	ErrNotFound          = New(ErrorTypeDatabase, "NOT_FOUND", "record not found")
)

// NewValidationError creates a validation error with a custom message
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, "VALIDATION", message)
}

// NewDatabaseError wraps a persistence failure
func NewDatabaseError(err error) *AppError {
	return Wrap(err, ErrorTypeDatabase, "DB_ERROR", "database operation failed")
}

// IsConfiguration reports whether err is a missing-configuration condition
// that should surface as guidance rather than a failure.
func IsConfiguration(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ErrorTypeConfiguration
}

// Handler provides error handling strategies
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle logs an error according to its type
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
		return
	}

	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeConfiguration, ErrorTypeUnsupported:
		h.logger.WarnContext(ctx, "Request-scoped error", appErr.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Critical error", appErr.LogFields()...)
	}
}
