package errorhandler

import (
	"errors"
	"fmt"
)

// CallError is returned by every failed SDK call.
type CallError struct {
	Outcome Outcome
	cause   error
}

func (e *CallError) Error() string {
	switch e.Outcome.Status {
	case StatusDataError:
		return fmt.Sprintf("server error (%d): %s", derefCode(e.Outcome.Code), e.Outcome.Payload.ErrorMessage())
	case StatusTimeout:
		return "request timed out"
	case StatusNoConnection:
		return "no connection"
	default:
		if e.Outcome.Code != nil {
			return fmt.Sprintf("unhandled error (%d)", *e.Outcome.Code)
		}
		return "unhandled error"
	}
}

func (e *CallError) Unwrap() error { return e.cause }

// OutcomeOf extracts the classified outcome from err. The second return
// is false when err did not come from this SDK.
func OutcomeOf(err error) (Outcome, bool) {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Outcome, true
	}
	return Outcome{}, false
}

// IsTimeout reports whether err classified as a timeout.
func IsTimeout(err error) bool {
	out, ok := OutcomeOf(err)
	return ok && out.Status == StatusTimeout
}

// IsNoConnection reports whether err classified as a connectivity
// failure.
func IsNoConnection(err error) bool {
	out, ok := OutcomeOf(err)
	return ok && out.Status == StatusNoConnection
}

func derefCode(code *int) int {
	if code == nil {
		return 0
	}
	return *code
}
