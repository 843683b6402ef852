package trackerpb

import "fmt"

// Codec is registered on the server with grpc.ForceServerCodec. It is named
// "proto" so standard gRPC clients interoperate.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("trackerpb: cannot marshal %T", v)
	}
	return m.AppendWire(nil), nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("trackerpb: cannot unmarshal into %T", v)
	}
	return m.UnmarshalWire(data)
}

func (Codec) Name() string { return "proto" }
