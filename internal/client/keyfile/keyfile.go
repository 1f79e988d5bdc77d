// Package keyfile persists a user's signing identity on the client.
//
// A key file holds the username, the user's Ed25519 private key sealed with
// AES-GCM under an argon2id-derived passphrase key, and the server public
// key pinned at enrollment. The server key is stored in the clear: it is not
// secret, but replacing it is detected by the handshake.
package keyfile

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/auctionhouse/internal/common"
	"github.com/dmitrijs2005/auctionhouse/internal/cryptox"
	"github.com/dmitrijs2005/auctionhouse/internal/filex"
)

const fileExt = ".key"

var (
	ErrNotFound        = errors.New("key file not found")
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted key file")
)

// Identity is what a client needs to log in.
type Identity struct {
	Username   string
	PrivateKey ed25519.PrivateKey
	ServerKey  ed25519.PublicKey
}

type fileFormat struct {
	Version    int    `json:"version"`
	Username   string `json:"username"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
	ServerKey  []byte `json:"server_key"`
}

// Path returns the key file location for username inside dir.
func Path(dir, username string) string {
	return filepath.Join(dir, username+fileExt)
}

// Save encrypts id with passphrase and writes it to dir. An existing file
// for the same user is replaced.
func Save(dir string, id Identity, passphrase []byte) (string, error) {
	if id.Username == "" {
		return "", errors.New("empty username")
	}
	if len(id.PrivateKey) != ed25519.PrivateKeySize || len(id.ServerKey) != ed25519.PublicKeySize {
		return "", cryptox.ErrMalformedKey
	}

	dir, err := filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}

	salt := cryptox.NewSalt()
	key := cryptox.DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	ciphertext, nonce, err := cryptox.Seal(id.PrivateKey, key)
	if err != nil {
		return "", fmt.Errorf("seal: %w", err)
	}

	data, err := json.Marshal(fileFormat{
		Version:    1,
		Username:   id.Username,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: ciphertext,
		ServerKey:  id.ServerKey,
	})
	if err != nil {
		return "", err
	}

	path := Path(dir, id.Username)
	if err := filex.WriteFileAtomic(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads and decrypts the key file of username from dir.
func Load(dir, username string, passphrase []byte) (Identity, error) {
	data, err := os.ReadFile(Path(dir, username))
	if errors.Is(err, os.ErrNotExist) {
		return Identity{}, ErrNotFound
	}
	if err != nil {
		return Identity{}, fmt.Errorf("read key file: %w", err)
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return Identity{}, fmt.Errorf("parse key file: %w", err)
	}

	serverKey, err := cryptox.ParsePublicKey(f.ServerKey)
	if err != nil {
		return Identity{}, fmt.Errorf("server key: %w", err)
	}

	key := cryptox.DeriveKey(passphrase, f.Salt)
	defer common.WipeByteArray(key)

	priv, err := cryptox.Open(f.Ciphertext, f.Nonce, key)
	if err != nil || len(priv) != ed25519.PrivateKeySize {
		return Identity{}, ErrWrongPassphrase
	}

	return Identity{
		Username:   f.Username,
		PrivateKey: ed25519.PrivateKey(priv),
		ServerKey:  serverKey,
	}, nil
}

// Exists reports whether a key file for username is present in dir.
func Exists(dir, username string) bool {
	_, err := os.Stat(Path(dir, username))
	return err == nil
}
