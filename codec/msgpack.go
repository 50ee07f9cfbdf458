package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack encodes a snapshot as a msgpack map written pair by pair, so the
// map keeps insertion order on the wire. The zero value is ready to use.
//
// Be mindful of struct tag differences vs JSON.
// Use `msgpack:"fieldName"` tags if you need explicit control.
type Msgpack[V any] struct{}

var _ Codec[struct{}] = Msgpack[struct{}]{}

func (Msgpack[V]) Encode(entries []Entry[V]) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.EncodeMapLen(len(entries)); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := enc.EncodeString(e.Key); err != nil {
			return nil, err
		}
		if err := enc.Encode(e.Value); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (Msgpack[V]) Decode(b []byte) ([]Entry[V], error) {
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}
	out := make([]Entry[V], 0, n)
	for i := 0; i < n; i++ {
		k, err := dec.DecodeString()
		if err != nil {
			return nil, err
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, Entry[V]{Key: k, Value: v})
	}
	return out, nil
}
