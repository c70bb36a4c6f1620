package apperror

import "fmt"

// AppError is the error type services return; ToHTTP turns it into the response envelope.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error

	sentinel *AppError
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel this error was derived from with WithCause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.sentinel != nil && e.sentinel == t
}

// WithCause returns a copy of e carrying cause. errors.Is matches both e and cause.
func (e *AppError) WithCause(cause error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		HTTPStatus: e.HTTPStatus,
		Err:        cause,
		sentinel:   e,
	}
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap returns nil when err is nil.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
