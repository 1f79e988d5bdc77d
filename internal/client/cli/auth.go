package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/auctionhouse/internal/client/client"
	"github.com/dmitrijs2005/auctionhouse/internal/client/keyfile"
	"github.com/dmitrijs2005/auctionhouse/internal/common"
	"github.com/dmitrijs2005/auctionhouse/internal/cryptox"
)

// getSimpleText and getPassword can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register creates the user, pins a new key pair, saves the key file and
// logs in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter your email", a.out)
	if err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}
	if err := validateUsername(username); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Choose a passphrase to protect your key file.")
	passphrase, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passphrase)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user, err := a.api.RegisterUser(ctx, name, email, username)
	if err != nil {
		return err
	}

	pub, priv, err := cryptox.GenerateSigningKey()
	if err != nil {
		return err
	}
	serverKey, err := a.api.Enroll(ctx, username, pub)
	if err != nil {
		return fmt.Errorf("enroll key: %w", err)
	}

	path, err := keyfile.Save(a.config.KeyDir, keyfile.Identity{Username: username, PrivateKey: priv, ServerKey: serverKey}, passphrase)
	if err != nil {
		return fmt.Errorf("save key file: %w", err)
	}

	if err := a.api.Login(ctx, username, priv, serverKey); err != nil {
		return err
	}
	a.user = &user

	fmt.Fprintf(a.out, "Registered %s, key saved to %s\n", username, path)
	return nil
}

// Login unlocks the key file and runs the handshake.
func (a *App) Login(ctx context.Context) error {
	username := a.config.Username
	if username == "" {
		var err error
		if username, err = getSimpleText(a.reader, "Enter your username", a.out); err != nil {
			return err
		}
	}

	passphrase, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passphrase)

	id, err := keyfile.Load(a.config.KeyDir, username, passphrase)
	if err != nil {
		if errors.Is(err, keyfile.ErrNotFound) {
			return fmt.Errorf("no key file for %q in %s, register first", username, a.config.KeyDir)
		}
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user, err := a.api.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, client.ErrUserNotFound) {
			fmt.Fprintln(a.out, "No such user")
		}
		return err
	}

	if err := a.api.Login(ctx, id.Username, id.PrivateKey, id.ServerKey); err != nil {
		return err
	}
	a.user = &user

	fmt.Fprintf(a.out, "Welcome back, %s\n", user.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.user = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
