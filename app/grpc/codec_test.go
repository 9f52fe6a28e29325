package grpc_test

import (
	"bytes"
	"testing"
	"time"

	menugrpc "github.com/vibast-solutions/ms-go-menu/app/grpc"
	"github.com/vibast-solutions/ms-go-menu/app/types"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestCodecEncodesStructMessages(t *testing.T) {
	codec := menugrpc.Codec()
	if codec.Name() != "proto" {
		t.Fatalf("expected the stock proto subtype, got %q", codec.Name())
	}

	expires := time.Date(2026, time.March, 9, 9, 30, 0, 0, time.UTC)
	data, err := codec.Marshal(&types.VerifyCodeResponse{
		Success:      true,
		SessionToken: "token",
		ExpiresAt:    expires,
		User:         &types.Profile{ID: "user-1", Email: "owner@example.com", EmailVerified: true},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	wire := &structpb.Struct{}
	if err = proto.Unmarshal(data, wire); err != nil {
		t.Fatalf("payload is not a protobuf Struct: %v", err)
	}
	fields := wire.GetFields()
	if !fields["success"].GetBoolValue() || fields["sessionToken"].GetStringValue() != "token" {
		t.Fatalf("unexpected wire fields: %v", wire)
	}
	if fields["user"].GetStructValue().GetFields()["email"].GetStringValue() != "owner@example.com" {
		t.Fatalf("expected nested profile, got %v", wire)
	}

	var decoded types.VerifyCodeResponse
	if err = codec.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.ExpiresAt.Equal(expires) || decoded.User == nil || !decoded.User.EmailVerified {
		t.Fatalf("unexpected decoded response: %+v", decoded)
	}
}

func TestCodecPassesProtoMessagesThrough(t *testing.T) {
	codec := menugrpc.Codec()
	msg, err := structpb.NewStruct(map[string]any{"slug": "bistro"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	data, err := codec.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want, err := proto.Marshal(msg)
	if err != nil {
		t.Fatalf("proto marshal: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Fatalf("proto messages must be encoded unchanged")
	}

	var req types.GetMenuRequest
	if err = codec.Unmarshal(data, &req); err != nil {
		t.Fatalf("unmarshal into request: %v", err)
	}
	if req.Slug != "bistro" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestCodecRejectsGarbage(t *testing.T) {
	var req types.GetMenuRequest
	if err := menugrpc.Codec().Unmarshal([]byte{0xff, 0xff, 0xff}, &req); err == nil {
		t.Fatalf("expected malformed payload to be rejected")
	}
}
