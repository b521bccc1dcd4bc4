package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserExists is returned when username or email is already taken.
	ErrUserExists = errors.New("user with email or username already exists")
	// ErrUserNotFound is returned when no user matches the given username.
	ErrUserNotFound = errors.New("user with given username not found")
	// ErrInvalidCredentials is returned when password verification fails.
	ErrInvalidCredentials = errors.New("user password does not match")
	// ErrNotLoggedIn is returned when logout is called without a valid session.
	ErrNotLoggedIn = errors.New("user is already logged out")
	// ErrQuestionNotFound is returned when a question is not found.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrAnswerNotFound is returned when an answer is not found, or does not
	// belong to the named question.
	ErrAnswerNotFound = errors.New("answer not found")
	// ErrNotQuestionOwner is returned when a caller acts on a question they do not own.
	ErrNotQuestionOwner = errors.New("not the question owner")
	// ErrNotificationDenied collapses "absent" and "not yours" so that
	// notification existence is not leaked.
	ErrNotificationDenied = errors.New("notification not found or not authorized")
	// ErrInvalidInput is returned when a required field is empty or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidVoteType is returned when the vote direction is not up or down.
	ErrInvalidVoteType = errors.New("invalid vote type")
	// ErrAlreadyVoted is returned when a user votes twice on the same answer.
	ErrAlreadyVoted = errors.New("user already voted on this answer")
	// ErrUploadFailed is returned when the asset host rejects an image upload.
	ErrUploadFailed = errors.New("image upload failed")
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

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse
// to a fixed internal-error response; their detail is for logs only.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNotLoggedIn):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_LOGGED_IN")
	case errors.Is(err, ErrQuestionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "QUESTION_NOT_FOUND")
	case errors.Is(err, ErrAnswerNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ANSWER_NOT_FOUND")
	case errors.Is(err, ErrNotQuestionOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_QUESTION_OWNER")
	case errors.Is(err, ErrNotificationDenied):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOTIFICATION_DENIED")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, ErrInvalidVoteType):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_VOTE_TYPE")
	case errors.Is(err, ErrAlreadyVoted):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_VOTED")
	case errors.Is(err, ErrUploadFailed):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "UPLOAD_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
