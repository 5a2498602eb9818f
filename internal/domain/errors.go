package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the root of every precondition violation raised by
// constructors and mutators. Match with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	// Account number errors
	ErrInvalidBranchID  = fmt.Errorf("%w: branch id must be %d upper-case letters", ErrInvalidArgument, BranchIDLen)
	ErrInvalidAccountID = fmt.Errorf("%w: account id must be in [%d, %d)", ErrInvalidArgument, MinAccountID, MaxAccountID)

	// Account errors
	ErrMissingAccountNumber = fmt.Errorf("%w: account number is required", ErrInvalidArgument)
	ErrBalanceOutOfRange    = fmt.Errorf("%w: balance must be in [0, %d]", ErrInvalidArgument, MaxBalance)
	ErrInvalidAmount        = fmt.Errorf("%w: amount must be at least 1", ErrInvalidArgument)
	ErrInsufficientFunds    = fmt.Errorf("%w: amount exceeds balance", ErrInvalidArgument)
	ErrDepositTooLarge      = fmt.Errorf("%w: amount exceeds maximum deposit", ErrInvalidArgument)
	ErrSameAccount          = fmt.Errorf("%w: cannot transfer to same account", ErrInvalidArgument)
	ErrMissingDestination   = fmt.Errorf("%w: destination account is required", ErrInvalidArgument)

	// Registry errors
	ErrAccountNotFound = errors.New("account not found")
)
