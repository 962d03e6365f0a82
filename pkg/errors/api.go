package errors

import "fmt"

/*
ApiError is the error type every component of the platform returns. The
Status field carries the HTTP status the handlers should respond with, so
the transport layer never has to inspect error strings.
*/
type ApiError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

/*
Error implements the error interface for ApiError.
*/
func (e *ApiError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Sentinel errors for the platform's failure taxonomy. Handlers map the
// Status field straight onto the response code.
var (
	ErrAgentNotFound    = &ApiError{Status: 404, Message: "Agent not found"}
	ErrTaskNotFound     = &ApiError{Status: 404, Message: "Task not found"}
	ErrInvalidTaskState = &ApiError{Status: 400, Message: "Task is in a state that does not accept messages"}
	ErrValidation       = &ApiError{Status: 400, Message: "Invalid request"}
	ErrConfiguration    = &ApiError{Status: 500, Message: "Platform misconfigured"}
	ErrInternal         = &ApiError{Status: 500, Message: "Internal error"}
)

// WithMessagef creates a *copy* of an ApiError with a formatted message.
// It does not modify the original sentinel.
func (e *ApiError) WithMessagef(format string, args ...any) *ApiError {
	newErr := *e
	newErr.Message = fmt.Sprintf(format, args...)
	return &newErr
}
