package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ReplicaService_Apply_FullMethodName = "/auction.ReplicaService/Apply"
	ReplicaService_Query_FullMethodName = "/auction.ReplicaService/Query"
	ReplicaService_Stop_FullMethodName  = "/auction.ReplicaService/Stop"
)

// ReplicaServiceServer is served by every replica and receives multicast
// deliveries from the primary.
type ReplicaServiceServer interface {
	Apply(context.Context, *ApplyRequest) (*ApplyResponse, error)
	Query(context.Context, *QueryRequest) (*QueryResponse, error)
	Stop(context.Context, *StopRequest) (*StopResponse, error)
}

type UnimplementedReplicaServiceServer struct{}

func (UnimplementedReplicaServiceServer) Apply(context.Context, *ApplyRequest) (*ApplyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Apply not implemented")
}
func (UnimplementedReplicaServiceServer) Query(context.Context, *QueryRequest) (*QueryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Query not implemented")
}
func (UnimplementedReplicaServiceServer) Stop(context.Context, *StopRequest) (*StopResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Stop not implemented")
}

func RegisterReplicaServiceServer(s grpc.ServiceRegistrar, srv ReplicaServiceServer) {
	s.RegisterService(&ReplicaService_ServiceDesc, srv)
}

var ReplicaService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "auction.ReplicaService",
	HandlerType: (*ReplicaServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Apply", Handler: unaryHandler(ReplicaService_Apply_FullMethodName, ReplicaServiceServer.Apply)},
		{MethodName: "Query", Handler: unaryHandler(ReplicaService_Query_FullMethodName, ReplicaServiceServer.Query)},
		{MethodName: "Stop", Handler: unaryHandler(ReplicaService_Stop_FullMethodName, ReplicaServiceServer.Stop)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "auction.proto",
}

type ReplicaServiceClient interface {
	Apply(ctx context.Context, in *ApplyRequest, opts ...grpc.CallOption) (*ApplyResponse, error)
	Query(ctx context.Context, in *QueryRequest, opts ...grpc.CallOption) (*QueryResponse, error)
	Stop(ctx context.Context, in *StopRequest, opts ...grpc.CallOption) (*StopResponse, error)
}

type replicaServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewReplicaServiceClient(cc grpc.ClientConnInterface) ReplicaServiceClient {
	return &replicaServiceClient{cc}
}

func (c *replicaServiceClient) Apply(ctx context.Context, in *ApplyRequest, opts ...grpc.CallOption) (*ApplyResponse, error) {
	return invoke[ApplyResponse](ctx, c.cc, ReplicaService_Apply_FullMethodName, in, opts...)
}

func (c *replicaServiceClient) Query(ctx context.Context, in *QueryRequest, opts ...grpc.CallOption) (*QueryResponse, error) {
	return invoke[QueryResponse](ctx, c.cc, ReplicaService_Query_FullMethodName, in, opts...)
}

func (c *replicaServiceClient) Stop(ctx context.Context, in *StopRequest, opts ...grpc.CallOption) (*StopResponse, error) {
	return invoke[StopResponse](ctx, c.cc, ReplicaService_Stop_FullMethodName, in, opts...)
}
