package codec

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Protobuf encodes an untyped snapshot as a google.protobuf.ListValue of
// [key, value] pairs. Values must be accepted by structpb.NewValue; numbers
// decode as float64, the same as encoding/json into any.
type Protobuf struct{}

var _ Codec[any] = Protobuf{}

func (Protobuf) Encode(entries []Entry[any]) ([]byte, error) {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(entries))}
	for _, e := range entries {
		v, err := structpb.NewValue(e.Value)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", e.Key, err)
		}
		pair := &structpb.ListValue{Values: []*structpb.Value{structpb.NewStringValue(e.Key), v}}
		list.Values = append(list.Values, structpb.NewListValue(pair))
	}
	return proto.Marshal(list)
}

func (Protobuf) Decode(b []byte) ([]Entry[any], error) {
	var list structpb.ListValue
	if err := proto.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	out := make([]Entry[any], 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		pair := item.GetListValue().GetValues()
		if len(pair) != 2 {
			return nil, fmt.Errorf("protobuf snapshot: pair %d has %d members", i, len(pair))
		}
		if _, ok := pair[0].GetKind().(*structpb.Value_StringValue); !ok {
			return nil, fmt.Errorf("protobuf snapshot: pair %d key is not a string", i)
		}
		out = append(out, Entry[any]{Key: pair[0].GetStringValue(), Value: pair[1].AsInterface()})
	}
	return out, nil
}
