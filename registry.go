package errorhandler

import (
	"encoding/json"
	"sync"
)

// DecodeFunc attempts to decode a raw error body into one concrete shape.
// Returning a nil payload or a non-nil error marks the body as not
// matching this shape; the decoder then moves on to the next entry.
type DecodeFunc func(raw []byte) (Payload, error)

// Registry is an ordered, append-only collection of shape decoders.
//
// Registration order is significant: decoding tries entries first to last
// and stops at the first match, so register the most specific shapes
// first when bodies can be ambiguous. Duplicates are kept as registered.
// There is no removal; a registry lives for the life of the process that
// built it.
//
// Registry is safe for concurrent use, so shapes may still be registered
// while other goroutines classify.
type Registry struct {
	mu       sync.RWMutex
	decoders []DecodeFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Register appends a decoder. It never fails.
func (r *Registry) Register(fn DecodeFunc) {
	r.mu.Lock()
	r.decoders = append(r.decoders, fn)
	r.mu.Unlock()
}

// Decoders returns a snapshot of the registered decoders, safe to iterate
// while registration continues elsewhere.
func (r *Registry) Decoders() []DecodeFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]DecodeFunc, len(r.decoders))
	copy(out, r.decoders)
	return out
}

// Len reports the number of registered decoders.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.decoders)
}

// JSONShape builds a DecodeFunc that unmarshals the body into a fresh T.
// The pointer type *T must implement Payload.
func JSONShape[T any, P interface {
	*T
	Payload
}]() DecodeFunc {
	return func(raw []byte) (Payload, error) {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return P(&v), nil
	}
}
