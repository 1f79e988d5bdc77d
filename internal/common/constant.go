package common

// SessionTokenHeaderName is the gRPC metadata key carrying the session token
// issued after a successful challenge-response login.
const SessionTokenHeaderName = "session_token"

// ChallengeSize is the length in bytes of every authentication nonce.
const ChallengeSize = 1024
