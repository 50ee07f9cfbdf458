package codec

import "fmt"

// LimitCodec wraps another codec to enforce a maximum allowed snapshot size
// at Decode time. Encode is forwarded to Inner unchanged.
// If MaxDecode <= 0, size limiting is disabled.
//
// Typical use: protect hydration against oversized snapshots coming from a
// shared store.
type LimitCodec[V any] struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner Codec[V]
	// MaxDecode is the maximum permitted length (in bytes) of the incoming
	// snapshot for Decode. If the snapshot is larger, Decode returns an
	// error without invoking Inner.
	MaxDecode int
}

func (c LimitCodec[V]) Encode(entries []Entry[V]) ([]byte, error) { return c.Inner.Encode(entries) }
func (c LimitCodec[V]) Decode(b []byte) ([]Entry[V], error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		return nil, fmt.Errorf("snapshot too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
