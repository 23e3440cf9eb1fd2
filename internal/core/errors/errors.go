package errors

const (
	HttpInternalError     = "internal_error"
	HttpInvalidJsonError  = "invalid_json"
	HttpUnknownModelError = "unknown_model"
	HttpInvalidQueryError = "invalid_query"
	HttpTypeMismatchError = "type_mismatch"
)

// ErrorResponse is the error response body for aggregate API errors.
type ErrorResponse struct {
	ErrorType string `json:"error_type"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
}
