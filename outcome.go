package errorhandler

import "net/http"

// Status is the category of a classified failure.
type Status int

const (
	// StatusUnknown covers unclassifiable failures and HTTP failures whose
	// body no registered shape could decode.
	StatusUnknown Status = iota
	// StatusDataError indicates the server error payload was decoded into
	// one of the registered shapes.
	StatusDataError
	StatusUnauthorized
	StatusForbidden
	StatusNotFound
	StatusTimeout
	StatusNoConnection
	StatusInternalServerError
)

func (s Status) String() string {
	switch s {
	case StatusDataError:
		return "DATA_ERROR"
	case StatusUnauthorized:
		return "UNAUTHORIZED"
	case StatusForbidden:
		return "FORBIDDEN"
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusTimeout:
		return "TIMEOUT"
	case StatusNoConnection:
		return "NO_CONNECTION"
	case StatusInternalServerError:
		return "INTERNAL_SERVER_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Payload is implemented by decoded server error payloads. ErrorMessage
// must return the empty string when the message field was not populated
// from the body.
type Payload interface {
	ErrorMessage() string
}

// Outcome is the normalized result of classifying one failure.
//
// StatusDataError always carries a non-nil Payload holding the decoded
// shape. StatusTimeout and StatusNoConnection carry neither code nor
// payload. StatusUnknown carries a code and a *GenericPayload when the
// failure was an HTTP exchange, and nothing otherwise.
type Outcome struct {
	Status  Status
	Code    *int
	Payload Payload
}

// GenericPayload is the fallback payload attached when an HTTP failure
// body exists but no registered shape decodes it. RawJSON preserves the
// original body for diagnostics.
type GenericPayload struct {
	Message string
	Code    int
	RawJSON string
}

func (p *GenericPayload) ErrorMessage() string { return p.Message }

// StatusFromCode maps an HTTP status code to its named category. The
// classifier itself never applies this mapping: HTTP failures classify by
// payload decodability alone, and the code-named categories exist for
// callers that inspect Outcome.Code themselves.
func StatusFromCode(code int) Status {
	switch code {
	case http.StatusUnauthorized:
		return StatusUnauthorized
	case http.StatusForbidden:
		return StatusForbidden
	case http.StatusNotFound:
		return StatusNotFound
	case http.StatusInternalServerError:
		return StatusInternalServerError
	default:
		return StatusUnknown
	}
}
