package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const AuctionServiceName = "auction.AuctionService"

const (
	AuctionService_RegisterUser_FullMethodName    = "/auction.AuctionService/RegisterUser"
	AuctionService_GetUser_FullMethodName         = "/auction.AuctionService/GetUser"
	AuctionService_ListUsers_FullMethodName       = "/auction.AuctionService/ListUsers"
	AuctionService_CreateAuction_FullMethodName   = "/auction.AuctionService/CreateAuction"
	AuctionService_BidOnAuction_FullMethodName    = "/auction.AuctionService/BidOnAuction"
	AuctionService_CloseAuction_FullMethodName    = "/auction.AuctionService/CloseAuction"
	AuctionService_ListAuctions_FullMethodName    = "/auction.AuctionService/ListAuctions"
	AuctionService_GetChallenge_FullMethodName    = "/auction.AuctionService/GetChallenge"
	AuctionService_ChallengeServer_FullMethodName = "/auction.AuctionService/ChallengeServer"
	AuctionService_ReturnChallenge_FullMethodName = "/auction.AuctionService/ReturnChallenge"
	AuctionService_GetPublicKey_FullMethodName    = "/auction.AuctionService/GetPublicKey"
	AuctionService_SendPublicKey_FullMethodName   = "/auction.AuctionService/SendPublicKey"
	AuctionService_Replicate_FullMethodName       = "/auction.AuctionService/Replicate"
	AuctionService_Close_FullMethodName           = "/auction.AuctionService/Close"
	AuctionService_Ping_FullMethodName            = "/auction.AuctionService/Ping"
)

// AuctionServiceServer is the client-facing API of the primary.
type AuctionServiceServer interface {
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	CreateAuction(context.Context, *CreateAuctionRequest) (*CreateAuctionResponse, error)
	BidOnAuction(context.Context, *BidRequest) (*BidResponse, error)
	CloseAuction(context.Context, *CloseAuctionRequest) (*CloseAuctionResponse, error)
	ListAuctions(context.Context, *ListAuctionsRequest) (*ListAuctionsResponse, error)
	GetChallenge(context.Context, *GetChallengeRequest) (*GetChallengeResponse, error)
	ChallengeServer(context.Context, *ChallengeServerRequest) (*ChallengeServerResponse, error)
	ReturnChallenge(context.Context, *ReturnChallengeRequest) (*ReturnChallengeResponse, error)
	GetPublicKey(context.Context, *GetPublicKeyRequest) (*GetPublicKeyResponse, error)
	SendPublicKey(context.Context, *SendPublicKeyRequest) (*SendPublicKeyResponse, error)
	Replicate(context.Context, *ReplicateRequest) (*ReplicateResponse, error)
	Close(context.Context, *CloseRequest) (*CloseResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedAuctionServiceServer can be embedded for forward compatibility.
type UnimplementedAuctionServiceServer struct{}

func (UnimplementedAuctionServiceServer) RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterUser not implemented")
}
func (UnimplementedAuctionServiceServer) GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUser not implemented")
}
func (UnimplementedAuctionServiceServer) ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListUsers not implemented")
}
func (UnimplementedAuctionServiceServer) CreateAuction(context.Context, *CreateAuctionRequest) (*CreateAuctionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAuction not implemented")
}
func (UnimplementedAuctionServiceServer) BidOnAuction(context.Context, *BidRequest) (*BidResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method BidOnAuction not implemented")
}
func (UnimplementedAuctionServiceServer) CloseAuction(context.Context, *CloseAuctionRequest) (*CloseAuctionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CloseAuction not implemented")
}
func (UnimplementedAuctionServiceServer) ListAuctions(context.Context, *ListAuctionsRequest) (*ListAuctionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAuctions not implemented")
}
func (UnimplementedAuctionServiceServer) GetChallenge(context.Context, *GetChallengeRequest) (*GetChallengeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetChallenge not implemented")
}
func (UnimplementedAuctionServiceServer) ChallengeServer(context.Context, *ChallengeServerRequest) (*ChallengeServerResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChallengeServer not implemented")
}
func (UnimplementedAuctionServiceServer) ReturnChallenge(context.Context, *ReturnChallengeRequest) (*ReturnChallengeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReturnChallenge not implemented")
}
func (UnimplementedAuctionServiceServer) GetPublicKey(context.Context, *GetPublicKeyRequest) (*GetPublicKeyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPublicKey not implemented")
}
func (UnimplementedAuctionServiceServer) SendPublicKey(context.Context, *SendPublicKeyRequest) (*SendPublicKeyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SendPublicKey not implemented")
}
func (UnimplementedAuctionServiceServer) Replicate(context.Context, *ReplicateRequest) (*ReplicateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Replicate not implemented")
}
func (UnimplementedAuctionServiceServer) Close(context.Context, *CloseRequest) (*CloseResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Close not implemented")
}
func (UnimplementedAuctionServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterAuctionServiceServer(s grpc.ServiceRegistrar, srv AuctionServiceServer) {
	s.RegisterService(&AuctionService_ServiceDesc, srv)
}

var AuctionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AuctionServiceName,
	HandlerType: (*AuctionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterUser", Handler: unaryHandler(AuctionService_RegisterUser_FullMethodName, AuctionServiceServer.RegisterUser)},
		{MethodName: "GetUser", Handler: unaryHandler(AuctionService_GetUser_FullMethodName, AuctionServiceServer.GetUser)},
		{MethodName: "ListUsers", Handler: unaryHandler(AuctionService_ListUsers_FullMethodName, AuctionServiceServer.ListUsers)},
		{MethodName: "CreateAuction", Handler: unaryHandler(AuctionService_CreateAuction_FullMethodName, AuctionServiceServer.CreateAuction)},
		{MethodName: "BidOnAuction", Handler: unaryHandler(AuctionService_BidOnAuction_FullMethodName, AuctionServiceServer.BidOnAuction)},
		{MethodName: "CloseAuction", Handler: unaryHandler(AuctionService_CloseAuction_FullMethodName, AuctionServiceServer.CloseAuction)},
		{MethodName: "ListAuctions", Handler: unaryHandler(AuctionService_ListAuctions_FullMethodName, AuctionServiceServer.ListAuctions)},
		{MethodName: "GetChallenge", Handler: unaryHandler(AuctionService_GetChallenge_FullMethodName, AuctionServiceServer.GetChallenge)},
		{MethodName: "ChallengeServer", Handler: unaryHandler(AuctionService_ChallengeServer_FullMethodName, AuctionServiceServer.ChallengeServer)},
		{MethodName: "ReturnChallenge", Handler: unaryHandler(AuctionService_ReturnChallenge_FullMethodName, AuctionServiceServer.ReturnChallenge)},
		{MethodName: "GetPublicKey", Handler: unaryHandler(AuctionService_GetPublicKey_FullMethodName, AuctionServiceServer.GetPublicKey)},
		{MethodName: "SendPublicKey", Handler: unaryHandler(AuctionService_SendPublicKey_FullMethodName, AuctionServiceServer.SendPublicKey)},
		{MethodName: "Replicate", Handler: unaryHandler(AuctionService_Replicate_FullMethodName, AuctionServiceServer.Replicate)},
		{MethodName: "Close", Handler: unaryHandler(AuctionService_Close_FullMethodName, AuctionServiceServer.Close)},
		{MethodName: "Ping", Handler: unaryHandler(AuctionService_Ping_FullMethodName, AuctionServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "auction.proto",
}

// AuctionServiceClient is the typed client of AuctionServiceServer.
type AuctionServiceClient interface {
	RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error)
	GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error)
	ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error)
	CreateAuction(ctx context.Context, in *CreateAuctionRequest, opts ...grpc.CallOption) (*CreateAuctionResponse, error)
	BidOnAuction(ctx context.Context, in *BidRequest, opts ...grpc.CallOption) (*BidResponse, error)
	CloseAuction(ctx context.Context, in *CloseAuctionRequest, opts ...grpc.CallOption) (*CloseAuctionResponse, error)
	ListAuctions(ctx context.Context, in *ListAuctionsRequest, opts ...grpc.CallOption) (*ListAuctionsResponse, error)
	GetChallenge(ctx context.Context, in *GetChallengeRequest, opts ...grpc.CallOption) (*GetChallengeResponse, error)
	ChallengeServer(ctx context.Context, in *ChallengeServerRequest, opts ...grpc.CallOption) (*ChallengeServerResponse, error)
	ReturnChallenge(ctx context.Context, in *ReturnChallengeRequest, opts ...grpc.CallOption) (*ReturnChallengeResponse, error)
	GetPublicKey(ctx context.Context, in *GetPublicKeyRequest, opts ...grpc.CallOption) (*GetPublicKeyResponse, error)
	SendPublicKey(ctx context.Context, in *SendPublicKeyRequest, opts ...grpc.CallOption) (*SendPublicKeyResponse, error)
	Replicate(ctx context.Context, in *ReplicateRequest, opts ...grpc.CallOption) (*ReplicateResponse, error)
	Close(ctx context.Context, in *CloseRequest, opts ...grpc.CallOption) (*CloseResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type auctionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuctionServiceClient(cc grpc.ClientConnInterface) AuctionServiceClient {
	return &auctionServiceClient{cc}
}

func (c *auctionServiceClient) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error) {
	return invoke[RegisterUserResponse](ctx, c.cc, AuctionService_RegisterUser_FullMethodName, in, opts...)
}
func (c *auctionServiceClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error) {
	return invoke[GetUserResponse](ctx, c.cc, AuctionService_GetUser_FullMethodName, in, opts...)
}
func (c *auctionServiceClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, AuctionService_ListUsers_FullMethodName, in, opts...)
}
func (c *auctionServiceClient) CreateAuction(ctx context.Context, in *CreateAuctionRequest, opts ...grpc.CallOption) (*CreateAuctionResponse, error) {
	return invoke[CreateAuctionResponse](ctx, c.cc, AuctionService_CreateAuction_FullMethodName, in, opts...)
}
func (c *auctionServiceClient) BidOnAuction(ctx context.Context, in *BidRequest, opts ...grpc.CallOption) (*BidResponse, error) {
	return invoke[BidResponse](ctx, c.cc, AuctionService_BidOnAuction_FullMethodName, in, opts...)
}
func (c *auctionServiceClient) CloseAuction(ctx context.Context, in *CloseAuctionRequest, opts ...grpc.CallOption) (*CloseAuctionResponse, error) {
	return invoke[CloseAuctionResponse](ctx, c.cc, AuctionService_CloseAuction_FullMethodName, in, opts...)
}
func (c *auctionServiceClient) ListAuctions(ctx context.Context, in *ListAuctionsRequest, opts ...grpc.CallOption) (*ListAuctionsResponse, error) {
	return invoke[ListAuctionsResponse](ctx, c.cc, AuctionService_ListAuctions_FullMethodName, in, opts...)
}
func (c *auctionServiceClient) GetChallenge(ctx context.Context, in *GetChallengeRequest, opts ...grpc.CallOption) (*GetChallengeResponse, error) {
	return invoke[GetChallengeResponse](ctx, c.cc, AuctionService_GetChallenge_FullMethodName, in, opts...)
}
func (c *auctionServiceClient) ChallengeServer(ctx context.Context, in *ChallengeServerRequest, opts ...grpc.CallOption) (*ChallengeServerResponse, error) {
	return invoke[ChallengeServerResponse](ctx, c.cc, AuctionService_ChallengeServer_FullMethodName, in, opts...)
}
func (c *auctionServiceClient) ReturnChallenge(ctx context.Context, in *ReturnChallengeRequest, opts ...grpc.CallOption) (*ReturnChallengeResponse, error) {
	return invoke[ReturnChallengeResponse](ctx, c.cc, AuctionService_ReturnChallenge_FullMethodName, in, opts...)
}
func (c *auctionServiceClient) GetPublicKey(ctx context.Context, in *GetPublicKeyRequest, opts ...grpc.CallOption) (*GetPublicKeyResponse, error) {
	return invoke[GetPublicKeyResponse](ctx, c.cc, AuctionService_GetPublicKey_FullMethodName, in, opts...)
}
func (c *auctionServiceClient) SendPublicKey(ctx context.Context, in *SendPublicKeyRequest, opts ...grpc.CallOption) (*SendPublicKeyResponse, error) {
	return invoke[SendPublicKeyResponse](ctx, c.cc, AuctionService_SendPublicKey_FullMethodName, in, opts...)
}
func (c *auctionServiceClient) Replicate(ctx context.Context, in *ReplicateRequest, opts ...grpc.CallOption) (*ReplicateResponse, error) {
	return invoke[ReplicateResponse](ctx, c.cc, AuctionService_Replicate_FullMethodName, in, opts...)
}
func (c *auctionServiceClient) Close(ctx context.Context, in *CloseRequest, opts ...grpc.CallOption) (*CloseResponse, error) {
	return invoke[CloseResponse](ctx, c.cc, AuctionService_Close_FullMethodName, in, opts...)
}
func (c *auctionServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, AuctionService_Ping_FullMethodName, in, opts...)
}
