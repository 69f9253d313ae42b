package budget

import "errors"

var (
	ErrNotFound      = errors.New("budget not found")
	ErrInvalidLimit  = errors.New("budget limit must be greater than zero")
	ErrInvalidPeriod = errors.New("budget month must be between 1 and 12")
)
