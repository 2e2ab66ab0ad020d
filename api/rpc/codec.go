// Package rpc exposes the engine over gRPC. It deliberately does not
// use protoc-generated message types: hand-authoring correct generated
// code (with real descriptor/reflection data satisfying proto.Message)
// without running protoc is impractical. Instead this package
// registers a small JSON codec with google.golang.org/grpc and
// exchanges plain Go structs over it.
package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec implements google.golang.org/grpc/encoding.Codec.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return "json"
}

// CodecName is the name gRPC's content-subtype negotiation uses to
// select jsonCodec; both server and client must dial/serve with it.
const CodecName = "json"
