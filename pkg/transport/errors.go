package transport

import "fmt"

// StatusError is returned for completed HTTP exchanges that ended with a
// status code of 400 or above. The raw body is preserved untouched so the
// caller can attempt payload decoding.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("server returned status %d: %s", e.Code, string(e.Body))
	}
	return fmt.Sprintf("server returned status %d", e.Code)
}

// HTTPStatus returns the response status code.
func (e *StatusError) HTTPStatus() int { return e.Code }

// ResponseBody returns the raw response body, which may be empty.
func (e *StatusError) ResponseBody() []byte { return e.Body }
