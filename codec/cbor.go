package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// cborPair is encoded as a two-element CBOR array: [key, value].
type cborPair[V any] struct {
	_     struct{} `cbor:",toarray"`
	Key   string
	Value V
}

// CBOR is a Codec that serializes snapshots using fxamacker/cbor as an array
// of [key, value] pairs. CBOR maps have no defined order; the pair array does.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
//
// Use deterministic=true for canonical encoding (RFC 8949 Core Deterministic)
// when you need byte-for-byte stable outputs.
// Time values are encoded as RFC3339Nano.
type CBOR[V any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec[struct{}] = CBOR[struct{}]{}

// NewCBOR constructs a CBOR codec.
//   - Deterministic is true, uses CoreDetEncOptions (RFC 8949).
//   - Otherwise uses PreferredUnsortedEncOptions.
func NewCBOR[V any](deterministic bool) (CBOR[V], error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	eo.Time = cbor.TimeRFC3339Nano

	em, err := eo.EncMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	// Untyped maps come back keyed by string so they stay JSON-compatible.
	dm, err := (cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any(nil))}).DecMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	return CBOR[V]{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
// Handy for package-level variables in tests/examples.
func MustCBOR[V any](deterministic bool) CBOR[V] {
	c, err := NewCBOR[V](deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR[V]) Encode(entries []Entry[V]) ([]byte, error) {
	pairs := make([]cborPair[V], len(entries))
	for i, e := range entries {
		pairs[i] = cborPair[V]{Key: e.Key, Value: e.Value}
	}
	return c.enc.Marshal(pairs)
}

func (c CBOR[V]) Decode(b []byte) ([]Entry[V], error) {
	var pairs []cborPair[V]
	if err := c.dec.Unmarshal(b, &pairs); err != nil {
		return nil, err
	}
	out := make([]Entry[V], len(pairs))
	for i, p := range pairs {
		out[i] = Entry[V]{Key: p.Key, Value: p.Value}
	}
	return out, nil
}
