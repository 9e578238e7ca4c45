package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Capacity errors
var (
	ErrCapacityExhausted     = errors.New("schedule has no available capacity")
	ErrCapacityBelowAssigned = errors.New("capacity cannot be lower than the number of assigned social servers")
)

// Catalog errors
var (
	ErrDuplicateAssociation = errors.New("park is already associated with this program")
	ErrInvalidAssociation   = errors.New("schedule does not belong to the specified program")
)

// Social server errors
var (
	ErrDuplicateEmail = errors.New("a social server with this email already exists")
	ErrParkMismatch   = errors.New("social server does not belong to the specified park")
)

// Attendance errors
var (
	ErrInvalidAttendanceType = errors.New("attendance type must be CHECK_IN or CHECK_OUT")
	ErrMissingPhoto          = errors.New("attendance photo is required")
)

// Park errors
var (
	ErrDuplicatePark  = errors.New("a park with this name or abbreviation already exists")
	ErrParkHasServers = errors.New("park has assigned social servers and cannot be deleted")
)

// Storage errors
var (
	ErrStorageFailure = errors.New("file storage failure")
)

// Content errors
var (
	ErrInvalidFormat = errors.New("invalid token format")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
