// Package client is the client side of the auction protocol.
//
// GRPCClient talks to the primary over gRPC with the JSON codec, attaches the
// session token to every call once logged in, and maps gRPC status codes and
// rejection statuses back to sentinel errors (see errors.go and the models
// package), so callers can use errors.Is.
//
// Handshake runs the mutual challenge-response login: the client first checks
// that the server can sign a fresh nonce with its pinned key, then proves its
// own identity by signing the server's nonce.
package client
