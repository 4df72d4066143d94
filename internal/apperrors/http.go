package apperrors

import (
	"net/http"
	"time"
)

// Response is the boundary error payload.
type Response struct {
	StatusCode int          `json:"statusCode"`
	Timestamp  string       `json:"timestamp"`
	Path       string       `json:"path"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
}

// HTTPStatus maps the effective kind of err to a status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidInput, KindInvalidRelation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ToResponse builds the outward payload for err. The message of 500-class
// and unauthorized failures is replaced by a generic one unless devMode is
// set; field-level validation details are always included.
func ToResponse(err error, path string, devMode bool) (int, Response) {
	status := HTTPStatus(err)

	message := "internal server error"
	var details []FieldError

	if appErr := Find(err); appErr != nil {
		switch status {
		case http.StatusUnauthorized:
			message = "unauthorized"
		case http.StatusInternalServerError:
			if devMode {
				message = appErr.Message
			}
		default:
			message = appErr.Message
			details = appErr.Fields
			if devMode && appErr.Field != "" {
				details = append(details, FieldError{Field: appErr.Field, Message: appErr.Message})
			}
		}
	}

	return status, Response{
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       path,
		Message:    message,
		Details:    details,
	}
}
