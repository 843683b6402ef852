// Package trackerpb holds the tracker.v1 messages and service descriptor.
// Messages encode themselves with protowire so no generated code is needed;
// the layout matches proto3 (see the field numbers on each struct).
package trackerpb

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Message is implemented by every request and response type.
type Message interface {
	AppendWire(b []byte) []byte
	UnmarshalWire(b []byte) error
}

var errNested = errors.New("trackerpb: bad nested message")

// walk calls f for each field. f returns the bytes it consumed, 0 to skip the
// field, or a negative protowire error code.
func walk(b []byte, f func(num protowire.Number, typ protowire.Type, b []byte) int) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		m := f(num, typ, b)
		if m == 0 {
			m = protowire.ConsumeFieldValue(num, typ, b)
		}
		if m < 0 {
			if m == errCodeNested {
				return errNested
			}
			return protowire.ParseError(m)
		}
		b = b[m:]
	}
	return nil
}

// outside protowire's range of error codes
const errCodeNested = -100

func consumeString(b []byte, dst *string) int {
	v, n := protowire.ConsumeBytes(b)
	if n >= 0 {
		*dst = string(v)
	}
	return n
}

// consumeOptString marks presence, for partial updates.
func consumeOptString(b []byte, dst **string) int {
	v, n := protowire.ConsumeBytes(b)
	if n >= 0 {
		s := string(v)
		*dst = &s
	}
	return n
}

func consumeVarint(b []byte, dst *uint64) int {
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = v
	}
	return n
}

func consumeMessage(b []byte, m Message) int {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n
	}
	if err := m.UnmarshalWire(v); err != nil {
		return errCodeNested
	}
	return n
}

func consumeTimestamp(b []byte, dst **timestamppb.Timestamp) int {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n
	}
	ts := &timestamppb.Timestamp{}
	err := walk(v, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == 1 && typ == protowire.VarintType:
			var x uint64
			m := consumeVarint(b, &x)
			ts.Seconds = int64(x)
			return m
		case num == 2 && typ == protowire.VarintType:
			var x uint64
			m := consumeVarint(b, &x)
			ts.Nanos = int32(x)
			return m
		}
		return 0
	})
	if err != nil {
		return errCodeNested
	}
	*dst = ts
	return n
}

// proto3: empty strings are not written
func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendOptString(b []byte, num protowire.Number, s *string) []byte {
	if s == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, *s)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	return appendVarint(b, num, protowire.EncodeBool(v))
}

func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.AppendWire(nil))
}

func appendTimestamp(b []byte, num protowire.Number, ts *timestamppb.Timestamp) []byte {
	if ts == nil {
		return b
	}
	var inner []byte
	inner = appendVarint(inner, 1, uint64(ts.Seconds))
	inner = appendVarint(inner, 2, uint64(ts.Nanos))
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}
