// Package auth is the server half of the mutual challenge-response login.
//
// Registration pins a user's Ed25519 public key on first use. A login then
// consists of the client challenging the server (SignChallenge), the server
// issuing a single-use nonce bound to a session id (IssueChallenge) and the
// client returning its signature over that nonce (VerifyChallenge).
package auth

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/auctionhouse/internal/common"
	"github.com/dmitrijs2005/auctionhouse/internal/cryptox"
	"github.com/dmitrijs2005/auctionhouse/internal/logging"
	"github.com/dmitrijs2005/auctionhouse/internal/server/keys"
	"github.com/dmitrijs2005/auctionhouse/internal/server/ledger"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// MaxClientNonce bounds the nonce a client may ask the server to sign.
const MaxClientNonce = 4096

var (
	ErrUnknownUser      = errors.New("unknown user")
	ErrMalformedKey     = cryptox.ErrMalformedKey
	ErrKeyAlreadyPinned = keys.ErrAlreadyPinned
	ErrInvalidNonce     = fmt.Errorf("nonce must be 1..%d bytes", MaxClientNonce)
)

// UserDirectory tells the authenticator which usernames are registered.
type UserDirectory interface {
	User(username string) (ledger.User, bool)
}

type Options struct {
	ChallengeTTL   time.Duration
	MaxSessions    int
	ChallengeRate  rate.Limit
	ChallengeBurst int
}

func DefaultOptions() Options {
	return Options{
		ChallengeTTL:   time.Minute,
		MaxSessions:    10000,
		ChallengeRate:  rate.Limit(100),
		ChallengeBurst: 200,
	}
}

type Authenticator struct {
	pub      ed25519.PublicKey
	priv     ed25519.PrivateKey
	keys     keys.Store
	users    UserDirectory
	sessions *expirable.LRU[string, []byte]
	limiter  *rate.Limiter
	issuer   *SessionIssuer
	logger   logging.Logger
}

// New generates the server signing key. The key lives only as long as the
// process, so clients must re-pin it after a restart.
func New(store keys.Store, users UserDirectory, issuer *SessionIssuer, logger logging.Logger, opts Options) (*Authenticator, error) {
	pub, priv, err := cryptox.GenerateSigningKey()
	if err != nil {
		return nil, fmt.Errorf("generate server key: %w", err)
	}

	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultOptions().MaxSessions
	}
	if opts.ChallengeTTL <= 0 {
		opts.ChallengeTTL = DefaultOptions().ChallengeTTL
	}
	if opts.ChallengeRate <= 0 {
		opts.ChallengeRate = rate.Inf
	}

	return &Authenticator{
		pub:      pub,
		priv:     priv,
		keys:     store,
		users:    users,
		sessions: expirable.NewLRU[string, []byte](opts.MaxSessions, nil, opts.ChallengeTTL),
		limiter:  rate.NewLimiter(opts.ChallengeRate, opts.ChallengeBurst),
		issuer:   issuer,
		logger:   logger.With("module", "auth"),
	}, nil
}

func (a *Authenticator) PublicKey() ed25519.PublicKey {
	return a.pub
}

// PinKey records key for a registered user. Sending the same key twice is
// accepted; a different one is refused.
func (a *Authenticator) PinKey(ctx context.Context, username string, raw []byte) error {
	if _, ok := a.users.User(username); !ok {
		return ErrUnknownUser
	}

	key, err := cryptox.ParsePublicKey(raw)
	if err != nil {
		return err
	}

	if err := a.keys.Pin(ctx, username, key); err != nil {
		return err
	}

	a.logger.Info(ctx, "public key pinned", "username", username)
	return nil
}

// ResetKey drops any key pinned for username. It is called once a username
// is freshly registered, so a key left over from an earlier registration of
// the same name (kept by a persistent store across restarts) cannot log in
// as the new user.
func (a *Authenticator) ResetKey(ctx context.Context, username string) error {
	if err := a.keys.Forget(ctx, username); err != nil {
		return fmt.Errorf("forget key: %w", err)
	}
	return nil
}

// SignChallenge proves the server's identity over a client supplied nonce.
func (a *Authenticator) SignChallenge(nonce []byte) ([]byte, error) {
	if len(nonce) == 0 || len(nonce) > MaxClientNonce {
		return nil, ErrInvalidNonce
	}
	return cryptox.Sign(a.priv, nonce)
}

// IssueChallenge stores a fresh nonce under a new session id.
func (a *Authenticator) IssueChallenge(ctx context.Context) (string, []byte, error) {
	if !a.limiter.Allow() {
		a.logger.Warn(ctx, "challenge rate limit hit")
		return "", nil, common.ErrorRateLimited
	}

	id := uuid.NewString()
	nonce := common.GenerateRandByteArray(common.ChallengeSize)
	a.sessions.Add(id, nonce)

	return id, append([]byte(nil), nonce...), nil
}

// VerifyChallenge consumes the session and reports whether sig is a valid
// signature over its nonce by the key pinned for username. Any failure,
// including an unregistered user or an unknown or expired session, yields
// false. On success a
// session token is returned as well.
func (a *Authenticator) VerifyChallenge(ctx context.Context, sessionID, username string, sig []byte) (string, bool) {
	nonce, ok := a.sessions.Get(sessionID)
	if !ok || !a.sessions.Remove(sessionID) {
		a.logger.Info(ctx, "challenge rejected: unknown or used session", "username", username)
		return "", false
	}
	defer common.WipeByteArray(nonce)

	if _, ok := a.users.User(username); !ok {
		a.logger.Info(ctx, "challenge rejected: user not registered", "username", username)
		return "", false
	}

	key, err := a.keys.Get(ctx, username)
	if err != nil {
		if !errors.Is(err, keys.ErrNotPinned) {
			a.logger.Error(ctx, "key lookup failed", "username", username, "error", err)
		}
		return "", false
	}

	if !cryptox.Verify(key, nonce, sig) {
		a.logger.Info(ctx, "challenge rejected: bad signature", "username", username)
		return "", false
	}

	token, err := a.issuer.Issue(username)
	if err != nil {
		a.logger.Error(ctx, "issue session token", "username", username, "error", err)
		return "", false
	}

	a.logger.Info(ctx, "user authenticated", "username", username)
	return token, true
}

// Subject resolves a session token to its username.
func (a *Authenticator) Subject(token string) (string, error) {
	return a.issuer.Subject(token)
}
