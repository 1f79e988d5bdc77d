// Package proto is the wire contract between the auction client, the primary
// and its replicas: request/response messages, a JSON codec registered under
// the "json" content subtype, and gRPC service descriptors with typed clients.
//
// The codec encodes protobuf messages (the health service, for one) with the
// canonical protojson mapping and everything else with encoding/json.
//
// Clients must dial with DialOptions so every call selects the JSON codec;
// servers pick it up from the content-type automatically.
package proto

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	gproto "google.golang.org/protobuf/proto"
)

// ContentSubtype selects the JSON codec ("application/grpc+json").
const ContentSubtype = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(gproto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(gproto.Message); ok {
		return protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(data, m)
	}
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return ContentSubtype
}

// DialOptions returns the options every connection in this system uses.
func DialOptions(extra ...grpc.DialOption) []grpc.DialOption {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(ContentSubtype)),
	}
	return append(opts, extra...)
}
