// Package cli provides the interactive auction command-line client.
//
// The client keeps each user's signing key in an encrypted key file (see
// package keyfile). Registering creates the user on the primary, pins a fresh
// key pair and the server's key, and logs in. Later sessions unlock the key
// file with the passphrase and run the challenge-response handshake.
//
// Commands can be typed at the prompt or passed on the command line for a
// single run, e.g. `client -u alice auctions`.
package cli
