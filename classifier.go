// Package errorhandler normalizes failures raised by remote calls into
// structured outcomes, decoding server error payloads against a caller
// registered set of shapes.
package errorhandler

import (
	"context"
	"errors"
	"net"
	"net/url"
)

// HTTPFailure is implemented by transport errors that carry a completed
// HTTP exchange. The body may be empty when the server sent none.
type HTTPFailure interface {
	error
	HTTPStatus() int
	ResponseBody() []byte
}

const (
	msgUnhandled = "Unhandled error"
	msgParsing   = "Parsing error"
)

// Classifier turns failures into Outcomes using an injected registry.
type Classifier struct {
	registry *Registry
}

// NewClassifier creates a classifier reading from reg. A nil reg behaves
// like an empty registry.
func NewClassifier(reg *Registry) *Classifier {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Classifier{registry: reg}
}

// Registry returns the registry this classifier consults.
func (c *Classifier) Registry() *Registry { return c.registry }

// Classify is total: it never fails, whatever err carries. HTTP failures
// classify by payload decodability alone and produce either DataError or
// Unknown; the numeric status code is carried on the outcome but never
// mapped to a category here (see StatusFromCode).
func (c *Classifier) Classify(err error) Outcome {
	var hf HTTPFailure
	if errors.As(err, &hf) {
		return c.decodeBody(hf.HTTPStatus(), hf.ResponseBody())
	}
	if isTimeout(err) {
		return Outcome{Status: StatusTimeout}
	}
	if isConnectivity(err) {
		return Outcome{Status: StatusNoConnection}
	}
	return Outcome{Status: StatusUnknown}
}

// decodeBody tries each registered shape in order; the first decode that
// yields a populated message wins.
func (c *Classifier) decodeBody(code int, raw []byte) (out Outcome) {
	defer func() {
		if recover() != nil {
			out = fallbackOutcome(code, raw, msgParsing)
		}
	}()

	decoders := c.registry.Decoders()
	if len(raw) == 0 || len(decoders) == 0 {
		return fallbackOutcome(code, raw, msgUnhandled)
	}
	for _, decode := range decoders {
		p, err := decode(raw)
		if err != nil || p == nil {
			continue
		}
		if p.ErrorMessage() == "" {
			continue
		}
		return Outcome{Status: StatusDataError, Code: intPtr(code), Payload: p}
	}
	return fallbackOutcome(code, raw, msgUnhandled)
}

func fallbackOutcome(code int, raw []byte, msg string) Outcome {
	return Outcome{
		Status:  StatusUnknown,
		Code:    intPtr(code),
		Payload: &GenericPayload{Message: msg, Code: code, RawJSON: string(raw)},
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// isConnectivity reports failures where no HTTP exchange happened, such
// as refused connections and name resolution errors. Timeouts are ruled
// out by the caller before this check.
func isConnectivity(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func intPtr(v int) *int { return &v }
