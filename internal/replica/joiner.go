package replica

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/auctionhouse/internal/proto"
	"github.com/dmitrijs2005/auctionhouse/internal/server/replication"
	"google.golang.org/grpc"
)

// RemoteJoiner joins a primary over its ReplicationService.
type RemoteJoiner struct {
	conn   *grpc.ClientConn
	client proto.ReplicationServiceClient
}

func NewRemoteJoiner(primaryAddr string) (*RemoteJoiner, error) {
	conn, err := grpc.NewClient(primaryAddr, proto.DialOptions()...)
	if err != nil {
		return nil, fmt.Errorf("dial primary %s: %w", primaryAddr, err)
	}
	return &RemoteJoiner{conn: conn, client: proto.NewReplicationServiceClient(conn)}, nil
}

func (j *RemoteJoiner) Join(ctx context.Context, id, address string) error {
	_, err := j.client.Join(ctx, &proto.JoinRequest{MemberID: id, Address: address})
	return err
}

func (j *RemoteJoiner) Leave(ctx context.Context, id string) error {
	_, err := j.client.Leave(ctx, &proto.LeaveRequest{MemberID: id})
	return err
}

func (j *RemoteJoiner) Close() error {
	return j.conn.Close()
}

// LocalJoiner joins a coordinator running in the same process, as replicas
// spawned by the primary do.
type LocalJoiner struct {
	Coordinator *replication.Coordinator
}

func (j LocalJoiner) Join(ctx context.Context, id, address string) error {
	return j.Coordinator.Join(ctx, id, address)
}

func (j LocalJoiner) Leave(ctx context.Context, id string) error {
	j.Coordinator.Leave(ctx, id)
	return nil
}
