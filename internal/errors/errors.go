package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingToken is returned when no Authorization header is sent.
	ErrMissingToken = errors.New("missing token")
	// ErrMalformedToken is returned when the Authorization header is not a Bearer credential.
	ErrMalformedToken = errors.New("malformed authorization header")
	// ErrInvalidToken is returned for any token that fails signature or expiry checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnknownSubject is returned when a valid token names a user that no longer exists.
	ErrUnknownSubject = errors.New("token subject not found")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAdminRequired is returned when a non-admin calls an admin-only operation.
	ErrAdminRequired = errors.New("admin role required")
	// ErrForbidden is returned when an identity acts on a user that is not itself.
	ErrForbidden = errors.New("forbidden")
	// ErrEmailTaken is returned when an email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrPatientNotFound is returned when a patient id does not exist.
	ErrPatientNotFound = errors.New("patient not found")
	// ErrRecordNotFound is returned when a medical record id does not exist.
	ErrRecordNotFound = errors.New("record not found")
	// ErrUserNotFound is returned when a user id does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Stack string `json:"stack,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// ValidationError reports a request payload that failed its schema. Message
// is the fixed, endpoint-specific text sent to the client; Err keeps the
// underlying violation for logs.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Invalid wraps cause in a ValidationError carrying message.
func Invalid(message string, cause error) error {
	return &ValidationError{Message: message, Err: cause}
}

type mapping struct {
	err    error
	status int
	msg    string
	code   string
}

// Order matters only for errors that wrap more than one sentinel.
var mappings = []mapping{
	{ErrMissingToken, http.StatusUnauthorized, "Missing token", "MISSING_TOKEN"},
	{ErrMalformedToken, http.StatusUnauthorized, "Missing token", "MALFORMED_TOKEN"},
	{ErrInvalidToken, http.StatusUnauthorized, "Invalid token", "INVALID_TOKEN"},
	{ErrUnknownSubject, http.StatusUnauthorized, "Invalid token user", "INVALID_TOKEN_USER"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS"},
	{ErrAdminRequired, http.StatusForbidden, "Admin required", "ADMIN_REQUIRED"},
	{ErrForbidden, http.StatusForbidden, "Forbidden", "FORBIDDEN"},
	{ErrEmailTaken, http.StatusConflict, "Email already registered", "EMAIL_TAKEN"},
	{ErrPatientNotFound, http.StatusNotFound, "Patient not found", "PATIENT_NOT_FOUND"},
	{ErrRecordNotFound, http.StatusNotFound, "Record not found", "RECORD_NOT_FOUND"},
	{ErrUserNotFound, http.StatusNotFound, "User not found", "USER_NOT_FOUND"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500.
func MapErrorToHTTP(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return NewHTTPError(http.StatusBadRequest, ve.Message, "VALIDATION_FAILED")
	}

	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.msg, m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "Internal Server Error", "INTERNAL_ERROR")
}

// IsKnown reports whether err maps to something other than a 500.
func IsKnown(err error) bool {
	return MapErrorToHTTP(err).StatusCode != http.StatusInternalServerError
}
