package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ReplicationService_Join_FullMethodName  = "/auction.ReplicationService/Join"
	ReplicationService_Leave_FullMethodName = "/auction.ReplicationService/Leave"
)

// ReplicationServiceServer is served by the primary so standalone replicas
// can enter and leave its group.
type ReplicationServiceServer interface {
	Join(context.Context, *JoinRequest) (*JoinResponse, error)
	Leave(context.Context, *LeaveRequest) (*LeaveResponse, error)
}

type UnimplementedReplicationServiceServer struct{}

func (UnimplementedReplicationServiceServer) Join(context.Context, *JoinRequest) (*JoinResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Join not implemented")
}
func (UnimplementedReplicationServiceServer) Leave(context.Context, *LeaveRequest) (*LeaveResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Leave not implemented")
}

func RegisterReplicationServiceServer(s grpc.ServiceRegistrar, srv ReplicationServiceServer) {
	s.RegisterService(&ReplicationService_ServiceDesc, srv)
}

var ReplicationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "auction.ReplicationService",
	HandlerType: (*ReplicationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Join", Handler: unaryHandler(ReplicationService_Join_FullMethodName, ReplicationServiceServer.Join)},
		{MethodName: "Leave", Handler: unaryHandler(ReplicationService_Leave_FullMethodName, ReplicationServiceServer.Leave)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "auction.proto",
}

type ReplicationServiceClient interface {
	Join(ctx context.Context, in *JoinRequest, opts ...grpc.CallOption) (*JoinResponse, error)
	Leave(ctx context.Context, in *LeaveRequest, opts ...grpc.CallOption) (*LeaveResponse, error)
}

type replicationServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewReplicationServiceClient(cc grpc.ClientConnInterface) ReplicationServiceClient {
	return &replicationServiceClient{cc}
}

func (c *replicationServiceClient) Join(ctx context.Context, in *JoinRequest, opts ...grpc.CallOption) (*JoinResponse, error) {
	return invoke[JoinResponse](ctx, c.cc, ReplicationService_Join_FullMethodName, in, opts...)
}

func (c *replicationServiceClient) Leave(ctx context.Context, in *LeaveRequest, opts ...grpc.CallOption) (*LeaveResponse, error) {
	return invoke[LeaveResponse](ctx, c.cc, ReplicationService_Leave_FullMethodName, in, opts...)
}
