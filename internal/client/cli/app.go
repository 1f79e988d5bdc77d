package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/auctionhouse/internal/client/client"
	"github.com/dmitrijs2005/auctionhouse/internal/client/config"
	"github.com/dmitrijs2005/auctionhouse/internal/flagx"
	"github.com/dmitrijs2005/auctionhouse/internal/models"
)

type App struct {
	config *config.Config
	api    client.Client
	user   *models.User
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	out := os.Stdout
	api, err := client.NewAuctionClient(c.ServerEndpointAddr, client.WithReplicationWarnings(func(w client.ReplicationWarning) {
		fmt.Fprintf(out, "warning: %d of %d replicas acknowledged (%s)\n", w.Acked, w.Members, w.Warning)
	}))
	if err != nil {
		return nil, err
	}
	return newApp(c, api, os.Stdin, out), nil
}

func newApp(c *config.Config, api client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, api: api, reader: bufio.NewReader(in), out: out}
}

// Run executes the command given in args, or starts the prompt if there is
// none. With a configured username the user is logged in first, unless the
// command is "register".
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.api.Close()

	cmds := flagx.Positional(args, config.FlagsWithValues)

	if a.config.Username != "" && (len(cmds) == 0 || cmds[0] != "register") {
		if err := a.Login(ctx); err != nil {
			return err
		}
	}

	if len(cmds) > 0 {
		err := dispatch(ctx, a, cmds[0], a.out)
		if errors.Is(err, errExit) {
			return nil
		}
		return err
	}

	fmt.Fprintln(a.out, "Auction house CLI (type 'help' for commands)")
	return runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return "(" + a.user.Username + ")"
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
