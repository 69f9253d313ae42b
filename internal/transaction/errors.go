package transaction

import "errors"

var (
	ErrNotFound      = errors.New("transaction not found")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrInvalidType   = errors.New("type must be income or expense")
	ErrMissingDate   = errors.New("date is required")
)
