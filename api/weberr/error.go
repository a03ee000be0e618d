package weberr

import "net/http"

// ErrorResponse is the body every decorated error renders as.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RequestError marks an error as caused by the request rather than the
// server, so the middleware logs it without a stack of context.
type RequestError struct {
	Err error
}

func (r *RequestError) Error() string { return r.Err.Error() }

func (r *RequestError) Unwrap() error { return r.Err }

// NewError wraps err as a RequestError carrying a client-facing
// message and status code.
func NewError(err error, msg string, status int, opts ...Opt) error {
	opts = append(opts, WithResponse(&ErrorResponse{msg}, status))
	return Wrap(&RequestError{Err: err}, opts...)
}

func BadRequest(err error, opts ...Opt) error {
	return NewError(err, "bad request", http.StatusBadRequest, opts...)
}

func NotAuthorized(err error, opts ...Opt) error {
	return NewError(err, "not authorized to access resource", http.StatusUnauthorized, opts...)
}

func NotFound(err error, opts ...Opt) error {
	return NewError(err, "the resource could not be found", http.StatusNotFound, opts...)
}

func Conflict(err error, opts ...Opt) error {
	return NewError(err, "the request conflicts with the current state of the resource", http.StatusConflict, opts...)
}

// Unprocessable keeps the caller's message: the client needs to know
// which business rule was violated, not just that one was.
func Unprocessable(err error, msg string, opts ...Opt) error {
	return NewError(err, msg, http.StatusUnprocessableEntity, opts...)
}

func InternalError(err error, opts ...Opt) error {
	return NewError(err, "the server encountered a problem and could not process your request", http.StatusInternalServerError, opts...)
}
