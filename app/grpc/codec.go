package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// CodecName is the stock gRPC content-subtype, so any protobuf client can call the service.
const CodecName = "proto"

// Codec returns the wire codec for AuthService. Generated messages are encoded as they are.
// The service's request and response types travel as google.protobuf.Struct, matching
// proto/menu/auth/v1/auth.proto.
func Codec() encoding.Codec {
	return structCodec{}
}

type structCodec struct{}

func (structCodec) Marshal(v any) ([]byte, error) {
	if msg, ok := v.(proto.Message); ok {
		return proto.Marshal(msg)
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("grpc: encode %T: %w", v, err)
	}
	msg := &structpb.Struct{}
	if err = protojson.Unmarshal(payload, msg); err != nil {
		return nil, fmt.Errorf("grpc: encode %T: %w", v, err)
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(msg)
}

func (structCodec) Unmarshal(data []byte, v any) error {
	if msg, ok := v.(proto.Message); ok {
		return proto.Unmarshal(data, msg)
	}

	msg := &structpb.Struct{}
	if err := proto.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("grpc: decode %T: %w", v, err)
	}
	payload, err := protojson.Marshal(msg)
	if err != nil {
		return fmt.Errorf("grpc: decode %T: %w", v, err)
	}
	return json.Unmarshal(payload, v)
}

func (structCodec) Name() string {
	return CodecName
}
