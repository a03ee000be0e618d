package weberr

import "errors"

type withResponse struct {
	err    error
	body   interface{}
	status int
}

func (e *withResponse) Error() string                { return e.err.Error() }
func (e *withResponse) Unwrap() error                { return e.err }
func (e *withResponse) Response() (interface{}, int) { return e.body, e.status }

type withFields struct {
	err    error
	fields map[string]interface{}
}

func (e *withFields) Error() string                  { return e.err.Error() }
func (e *withFields) Unwrap() error                  { return e.err }
func (e *withFields) Fields() map[string]interface{} { return e.fields }

// Response walks the error chain for an attached HTTP response.
func Response(err error) (body interface{}, status int, ok bool) {
	var re interface {
		Response() (interface{}, int)
	}
	if !errors.As(err, &re) {
		return nil, 0, false
	}
	body, status = re.Response()
	return body, status, true
}

// Fields walks the error chain for attached log fields.
func Fields(err error) (map[string]interface{}, bool) {
	var fe interface {
		Fields() map[string]interface{}
	}
	if !errors.As(err, &fe) {
		return nil, false
	}
	return fe.Fields(), true
}
