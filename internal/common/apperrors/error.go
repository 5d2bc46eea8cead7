// Package apperrors defines the layered application error type used across
// the service. Errors carry an HTTP status code and can wrap other errors
// while preserving sentinel identity for errors.Is checks.
package apperrors

type Error interface {
	Error() string
	ErrorAll() string
	New(msg string) Error
	MsgErr(msg string, err ...error) Error
	Msg(msg string) Error
	Err(err ...error) Error
	Unwrap() []error
	Is(target error) bool
	SetExpandError(expand bool) Error
	SetStatusCode(code int) Error
	StatusCode() int
}
