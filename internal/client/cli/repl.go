package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/auctionhouse/internal/client/client"
)

// errExit ends the prompt without an error.
var errExit = errors.New("exit")

var errNotLoggedIn = errors.New("please register or log in first")

// execIface is the command surface the prompt dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Auctions(ctx context.Context) error
	Users(ctx context.Context) error
	Create(ctx context.Context) error
	Bid(ctx context.Context) error
	Close(ctx context.Context) error
	Replicate(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// dispatch runs one command. Commands acting on behalf of a user require a
// login.
func dispatch(ctx context.Context, a execIface, cmd string, w io.Writer) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(w, "Available commands: auctions, create, bid, close, users, replicate, shutdown, logout, exit")
		} else {
			fmt.Fprintln(w, "Available commands: register, login, auctions, users, exit")
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "l", "auctions":
		return a.Auctions(ctx)
	case "users":
		return a.Users(ctx)
	case "replicate":
		return a.Replicate(ctx)
	case "shutdown":
		if err := a.Shutdown(ctx); err != nil {
			return err
		}
		return errExit
	case "exit", "quit":
		fmt.Fprintln(w, "Bye!")
		return errExit
	}

	var run func(context.Context) error
	switch cmd {
	case "create":
		run = a.Create
	case "bid":
		run = a.Bid
	case "close":
		run = a.Close
	default:
		fmt.Fprintln(w, "Unknown command:", cmd)
		return nil
	}
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	return run(ctx)
}

// runREPL reads commands from reader until EOF, "exit" or "shutdown".
// Command errors are printed and the loop goes on, except for a failed
// server authentication which ends the session.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) error {
	for {
		fmt.Fprintf(w, "auction%s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return nil
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		err = dispatch(ctx, a, parts[0], w)
		switch {
		case err == nil:
		case errors.Is(err, errExit):
			return nil
		case errors.Is(err, client.ErrServerAuthenticationFailed):
			fmt.Fprintln(w, "The server could not prove its identity. Stopping.")
			return err
		default:
			fmt.Fprintln(w, "Error:", err)
		}
	}
}
