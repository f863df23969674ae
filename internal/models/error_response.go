package models

import "net/http"

// Machine-readable error codes surfaced to clients alongside the HTTP status.
const (
	CodeInvalidTransition   = "invalid_transition"
	CodeUnknownArtifactType = "unknown_artifact_type"
	CodeNotFound            = "not_found"
	CodeConflict            = "conflict"
)

// ErrorResponse describes a failure with an HTTP status, a code and a message.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"reason"`
}

// NewErrorResponse creates a new error with a status code and a message.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message}
}

// NewInvalidTransition reports a workflow step completion attempted out of order.
func NewInvalidTransition(message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: http.StatusConflict,
		Code:       CodeInvalidTransition,
		Message:    message,
	}
}

// NewUnknownArtifactType reports an unrecognized artifact type tag.
func NewUnknownArtifactType(message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Code:       CodeUnknownArtifactType,
		Message:    message,
	}
}

// NewNotFound reports an operation on a nonexistent RFP or artifact.
func NewNotFound(message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: http.StatusNotFound,
		Code:       CodeNotFound,
		Message:    message,
	}
}

// NewConflict reports a concurrent mutation detected at the storage boundary.
func NewConflict(message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: http.StatusConflict,
		Code:       CodeConflict,
		Message:    message,
	}
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// ErrorCode returns the machine-readable code of err, or an empty string
// if err is not an ErrorResponse.
func ErrorCode(err error) string {
	if errorResponse, ok := err.(*ErrorResponse); ok {
		return errorResponse.Code
	}
	return ""
}
