package apperror

// AppError is an error that carries the HTTP status code it should be
// reported with. The wrapped error stays internal and is never exposed to
// the client.
type AppError struct {
	Code    int    // HTTP status code (e.g., 400, 404)
	Message string // user-facing message
	Err     error  // underlying error, if any
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates an AppError around an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
