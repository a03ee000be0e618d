// Package weberr decorates errors flowing out of handlers with the
// HTTP response to send and the fields to log. The error middleware
// peels the decorations off at the edge; everything in between treats
// the value as a plain error.
package weberr

// Opt attaches one behavior to an error.
type Opt func(error) error

// Wrap applies every option to err in order.
func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

// WithResponse sets the body and status code the client receives.
func WithResponse(body interface{}, status int) Opt {
	return func(err error) error {
		return &withResponse{err: err, body: body, status: status}
	}
}

// WithFields attaches structured fields for the error log line.
func WithFields(fields map[string]interface{}) Opt {
	return func(err error) error {
		return &withFields{err: err, fields: fields}
	}
}
