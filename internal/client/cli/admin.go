package cli

import (
	"context"
	"fmt"
)

func (a *App) Users(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	users, err := a.api.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%s\t%s <%s>\n", u.Username, u.Name, u.Email)
	}
	return nil
}

func (a *App) Replicate(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	id, addr, err := a.api.Replicate(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Replica %s started on %s\n", id, addr)
	return nil
}

// Shutdown stops the primary and all replicas.
func (a *App) Shutdown(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.api.Shutdown(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Server is shutting down")
	return nil
}
