package debugrpc

import "github.com/maidsafe/stableset/internal/wire"

// codecName is the content-subtype this service's gRPC codec registers
// under — clients must dial with grpc.CallContentSubtype(codecName) to
// talk to it, since it carries the section's CBOR wire format instead of
// protobuf.
const codecName = "section-wire"

// wireCodec adapts internal/wire's canonical CBOR encoding to
// encoding.Codec, so the debug service's hand-rolled grpc.ServiceDesc
// doesn't need generated protobuf types for its request/response structs.
type wireCodec struct{}

func (wireCodec) Marshal(v interface{}) ([]byte, error) {
	return wire.Encode(v)
}

func (wireCodec) Unmarshal(data []byte, v interface{}) error {
	return wire.Decode(data, v)
}

func (wireCodec) Name() string {
	return codecName
}
