package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var errNotObject = errors.New("snapshot is not a JSON object")

// JSON encodes a snapshot as a flat JSON object, keys in insertion order.
// This is the default snapshot format. The zero value is ready to use.
type JSON[V any] struct{}

var _ Codec[struct{}] = JSON[struct{}]{}

func (JSON[V]) Encode(entries []Entry[V]) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", e.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Decode walks the object members in document order.
func (JSON[V]) Decode(b []byte) ([]Entry[V], error) {
	if !gjson.ValidBytes(b) {
		return nil, errors.New("invalid JSON snapshot")
	}
	root := gjson.ParseBytes(b)
	if !root.IsObject() {
		return nil, errNotObject
	}
	var (
		out  []Entry[V]
		derr error
	)
	root.ForEach(func(k, v gjson.Result) bool {
		var val V
		if err := json.Unmarshal([]byte(v.Raw), &val); err != nil {
			derr = fmt.Errorf("decode %q: %w", k.String(), err)
			return false
		}
		out = append(out, Entry[V]{Key: k.String(), Value: val})
		return true
	})
	if derr != nil {
		return nil, derr
	}
	return out, nil
}
