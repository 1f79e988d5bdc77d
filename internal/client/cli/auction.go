package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/auctionhouse/internal/models"
)

func (a *App) Auctions(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	auctions, err := a.api.ListAuctions(ctx)
	if err != nil {
		return err
	}
	if len(auctions) == 0 {
		fmt.Fprintln(a.out, "No open auctions")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDESCRIPTION\tOWNER\tPRICE\tRESERVE MET\tHIGHEST BIDDER")
	for _, au := range auctions {
		bidder := "-"
		if au.HighestBidder != nil {
			bidder = au.HighestBidder.Username
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\t%s\n", au.ID, au.Description, au.Owner.Username, au.CurrentPrice, yesNo(au.Sold()), bidder)
	}
	return tw.Flush()
}

func (a *App) Create(ctx context.Context) error {
	description, err := getSimpleText(a.reader, "Describe the item", a.out)
	if err != nil {
		return err
	}
	startingPrice, err := GetAmount(a.reader, "Starting price", a.out)
	if err != nil {
		return err
	}
	reservePrice, err := GetAmount(a.reader, "Reserve price", a.out)
	if err != nil {
		return err
	}
	if err := validatePrices(startingPrice, reservePrice); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	au, err := a.api.CreateAuction(ctx, description, *a.user, startingPrice, reservePrice)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Auction %d created\n", au.ID)
	return nil
}

func (a *App) Bid(ctx context.Context) error {
	id, err := GetID(a.reader, "Auction id", a.out)
	if err != nil {
		return err
	}
	amount, err := GetAmount(a.reader, "Your bid", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	au, err := a.api.Bid(ctx, id, *a.user, amount)
	switch {
	case errors.Is(err, models.ErrBidTooLow):
		fmt.Fprintf(a.out, "Bid too low, the current price is %.2f\n", au.CurrentPrice)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintf(a.out, "You are the highest bidder on auction %d at %.2f\n", au.ID, au.CurrentPrice)
	return nil
}

func (a *App) Close(ctx context.Context) error {
	id, err := GetID(a.reader, "Auction id", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	res, err := a.api.CloseAuction(ctx, id, *a.user)
	if err != nil {
		return err
	}

	switch {
	case !res.Sold:
		fmt.Fprintf(a.out, "Auction %d closed, the reserve price was not met\n", id)
	case res.Winner == nil:
		fmt.Fprintf(a.out, "Auction %d closed, sold at %.2f without bids\n", id, res.Auction.CurrentPrice)
	default:
		fmt.Fprintf(a.out, "Auction won by: %s <%s> for %.2f\n", res.Winner.Name, res.Winner.Email, res.Auction.CurrentPrice)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
