package kvcache

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/kvcache/keys"
)

var (
	ErrInvalidSize = errors.New("kvcache: size must be positive")

	// ErrKeyGeneration is wrapped by errors from key derivation.
	ErrKeyGeneration = keys.ErrKeyGeneration
)

// PersistError reports a snapshot rewrite that failed after an in-memory
// mutation. The mutation itself is kept.
type PersistError struct {
	Namespace string
	Op        string // "write" or "remove"
	Key       string
	EncodeErr error
	StoreErr  error
}

func (e *PersistError) Error() string {
	switch {
	case e.EncodeErr != nil:
		return fmt.Sprintf("kvcache: %s %q in %q: encode snapshot: %v", e.Op, e.Key, e.Namespace, e.EncodeErr)
	case e.StoreErr != nil:
		return fmt.Sprintf("kvcache: %s %q in %q: store snapshot: %v", e.Op, e.Key, e.Namespace, e.StoreErr)
	default:
		return fmt.Sprintf("kvcache: %s %q in %q: unknown persist error", e.Op, e.Key, e.Namespace)
	}
}

func (e *PersistError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.EncodeErr != nil {
		errs = append(errs, e.EncodeErr)
	}
	if e.StoreErr != nil {
		errs = append(errs, e.StoreErr)
	}
	return errs
}
