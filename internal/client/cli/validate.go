package cli

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/auctionhouse/internal/models"
)

var errInvalidInput = errors.New("invalid input")

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

func validateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: %q is not a valid email address", errInvalidInput, email)
	}
	return nil
}

func validateUsername(username string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username is empty", errInvalidInput)
	case strings.EqualFold(username, models.ReservedUsername):
		return fmt.Errorf("%w: username %q is reserved", errInvalidInput, username)
	case strings.ContainsAny(username, `/\ `):
		return fmt.Errorf("%w: username must not contain slashes or spaces", errInvalidInput)
	}
	return nil
}

func validatePrices(startingPrice, reservePrice float64) error {
	if reservePrice <= startingPrice {
		return fmt.Errorf("%w: reserve price must exceed the starting price", errInvalidInput)
	}
	return nil
}
