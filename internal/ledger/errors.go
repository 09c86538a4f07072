package ledger

import "errors"

// Engine failures are sentinel errors; callers branch with errors.Is. Every
// failing command leaves the ledger unmodified.
var (
	ErrNotSetup           = errors.New("budget is not set up")
	ErrAlreadySetup       = errors.New("budget is already set up")
	ErrInvalidAmount      = errors.New("amount must be a positive integer")
	ErrInvalidType        = errors.New("transaction type must be expense or income")
	ErrUnknownAccount     = errors.New("account does not exist")
	ErrUnknownTransaction = errors.New("transaction does not exist")
	ErrReservedAccount    = errors.New("account is reserved and cannot be deleted")
	ErrSameAccount        = errors.New("transfer source and destination are the same account")
	ErrEndDateRequired    = errors.New("end date is required")
)
