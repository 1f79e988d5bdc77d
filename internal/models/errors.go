package models

import "errors"

// Rejections a ledger returns for well-formed requests it will not accept.
var (
	ErrValidation      = errors.New("validation error")
	ErrNotOwner        = errors.New("requester does not own this auction")
	ErrAuctionNotFound = errors.New("auction not found")
	ErrBidTooLow       = errors.New("bid must exceed the current price")
	ErrUsernameTaken   = errors.New("username taken")
)
