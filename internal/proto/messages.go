package proto

import "github.com/dmitrijs2005/auctionhouse/internal/models"

// Status reasons carried in mutating responses.
const (
	ReasonOK                 = "ok"
	ReasonValidation         = "validation"
	ReasonNotOwner           = "not_owner"
	ReasonAuctionNotFound    = "auction_not_found"
	ReasonBidTooLow          = "bid_too_low"
	ReasonUsernameTaken      = "username_taken"
	ReasonUserNotFound       = "user_not_found"
	ReasonReplicationTimeout = "replication_timeout"
)

// Status is the per-call outcome of a mutating operation.
type Status struct {
	OK      bool   `json:"ok"`
	Reason  string `json:"reason"`
	Message string `json:"message,omitempty"`
}

// Replication summarises the multicast that followed an accepted mutation.
type Replication struct {
	Members int      `json:"members"`
	Acked   int      `json:"acked"`
	Failed  []string `json:"failed,omitempty"`
	Warning string   `json:"warning,omitempty"`
}

type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type RegisterUserResponse struct {
	User        *models.User `json:"user,omitempty"`
	Status      Status       `json:"status"`
	Replication Replication  `json:"replication"`
}

type GetUserRequest struct {
	Username string `json:"username"`
}

type GetUserResponse struct {
	User   *models.User `json:"user,omitempty"`
	Status Status       `json:"status"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []models.User `json:"users"`
}

type CreateAuctionRequest struct {
	Description   string      `json:"description"`
	Owner         models.User `json:"owner"`
	StartingPrice float64     `json:"starting_price"`
	ReservePrice  float64     `json:"reserve_price"`
}

type CreateAuctionResponse struct {
	Auction     *models.Auction `json:"auction,omitempty"`
	Status      Status          `json:"status"`
	Replication Replication     `json:"replication"`
}

type BidRequest struct {
	AuctionID int64       `json:"auction_id"`
	Bidder    models.User `json:"bidder"`
	Amount    float64     `json:"amount"`
}

type BidResponse struct {
	Auction     *models.Auction `json:"auction,omitempty"`
	Status      Status          `json:"status"`
	Replication Replication     `json:"replication"`
}

type CloseAuctionRequest struct {
	AuctionID int64       `json:"auction_id"`
	Requester models.User `json:"requester"`
}

// CloseAuctionResponse reports the winner. When Sold is false Winner is the
// no-winner sentinel; when Sold is true and nobody bid, Winner is nil.
type CloseAuctionResponse struct {
	Auction     *models.Auction `json:"auction,omitempty"`
	Sold        bool            `json:"sold"`
	Winner      *models.User    `json:"winner,omitempty"`
	Status      Status          `json:"status"`
	Replication Replication     `json:"replication"`
}

type ListAuctionsRequest struct{}

type ListAuctionsResponse struct {
	Auctions []models.Auction `json:"auctions"`
}

type GetChallengeRequest struct{}

type GetChallengeResponse struct {
	SessionID string `json:"session_id"`
	Nonce     []byte `json:"nonce"`
}

type ChallengeServerRequest struct {
	Nonce []byte `json:"nonce"`
}

type ChallengeServerResponse struct {
	Signature []byte `json:"signature"`
}

type ReturnChallengeRequest struct {
	SessionID string `json:"session_id"`
	Username  string `json:"username"`
	Signature []byte `json:"signature"`
}

type ReturnChallengeResponse struct {
	Verified     bool   `json:"verified"`
	SessionToken string `json:"session_token,omitempty"`
}

type GetPublicKeyRequest struct{}

type GetPublicKeyResponse struct {
	PublicKey []byte `json:"public_key"`
}

type SendPublicKeyRequest struct {
	Username  string `json:"username"`
	PublicKey []byte `json:"public_key"`
}

type SendPublicKeyResponse struct{}

type ReplicateRequest struct{}

type ReplicateResponse struct {
	MemberID string `json:"member_id"`
	Address  string `json:"address"`
}

type CloseRequest struct{}

type CloseResponse struct{}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// Replication group membership (replica -> primary).

type JoinRequest struct {
	MemberID string `json:"member_id"`
	Address  string `json:"address"`
}

type JoinResponse struct {
	Members int `json:"members"`
}

type LeaveRequest struct {
	MemberID string `json:"member_id"`
}

type LeaveResponse struct{}

// Multicast deliveries (primary -> replica).

type ApplyRequest struct {
	Mutation models.Mutation `json:"mutation"`
}

type ApplyResponse struct{}

type QueryRequest struct {
	Query models.Query `json:"query"`
}

type QueryResponse struct {
	Result models.QueryResult `json:"result"`
}

type StopRequest struct{}

type StopResponse struct{}
