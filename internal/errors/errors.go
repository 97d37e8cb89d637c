package errors

import (
	stderrors "errors"
	"net/http"
)

var (
	// ErrMissingInput is returned when a request carries no body.
	ErrMissingInput = stderrors.New("no input data provided")
	// ErrValidation is returned when a request body does not match the expected schema.
	ErrValidation = stderrors.New("validation failed")
	// ErrInvalidHours is returned when a reservation length is not between 1 and 720 hours.
	ErrInvalidHours = stderrors.New("hours reserved must be between 1 and 720")
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = stderrors.New("user does not exist")
	// ErrSpotNotFound is returned when no spot matches the lookup.
	ErrSpotNotFound = stderrors.New("spot does not exist")
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = stderrors.New("user already exists")
	// ErrSpotBusy is returned when a spot is still reserved or occupied.
	ErrSpotBusy = stderrors.New("forbidden reserve, the spot is still reserved or occupied")
	// ErrSpotNotReserved is returned when checking in to a spot nobody reserved.
	ErrSpotNotReserved = stderrors.New("not checked in, the spot is not reserved")
	// ErrNotSpotOwner is returned by strict check-in when the requester does not own the spot.
	ErrNotSpotOwner = stderrors.New("spot is reserved by another user")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = stderrors.New("wrong password, please try again")
	// ErrAdminTokenInvalid is returned when an administration route gets no valid admin token.
	ErrAdminTokenInvalid = stderrors.New("admin token missing or invalid")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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

var mappings = []struct {
	err    error
	status int
	code   string
}{
	{ErrMissingInput, http.StatusBadRequest, "MISSING_INPUT"},
	{ErrInvalidHours, http.StatusUnprocessableEntity, "INVALID_HOURS"},
	{ErrValidation, http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrSpotNotFound, http.StatusNotFound, "SPOT_NOT_FOUND"},
	{ErrUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
	// the public API has always answered a busy spot with 403
	{ErrSpotBusy, http.StatusForbidden, "SPOT_BUSY"},
	{ErrSpotNotReserved, http.StatusForbidden, "SPOT_NOT_RESERVED"},
	{ErrNotSpotOwner, http.StatusForbidden, "NOT_SPOT_OWNER"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrAdminTokenInvalid, http.StatusUnauthorized, "ADMIN_TOKEN_INVALID"},
}

// MapErrorToHTTP maps domain errors, possibly wrapped, to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mappings {
		if stderrors.Is(err, m.err) {
			return NewHTTPError(m.status, err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
