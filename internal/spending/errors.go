package spending

import (
	"errors"
	"fmt"
)

// ErrInvalidRange reports a month outside 1..12. It indicates a caller bug.
var ErrInvalidRange = errors.New("invalid month range")

// ErrPriorRequired is returned when a delete is requested without the prior record.
var ErrPriorRequired = errors.New("prior transaction state is required")

// ErrPriorMismatch is returned when the prior record passed to an update is
// not the transaction being updated.
var ErrPriorMismatch = errors.New("prior transaction does not match the update")

// LedgerWriteError wraps a failed create, update or delete. No aggregate work
// is attempted after one.
type LedgerWriteError struct {
	Op  string
	Err error
}

func (e *LedgerWriteError) Error() string {
	return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
}

func (e *LedgerWriteError) Unwrap() error { return e.Err }

// RecomputeError reports a failed recomputation of one total. It is logged
// and never returned from a mutation.
type RecomputeError struct {
	Key Key
	Err error
}

func (e *RecomputeError) Error() string {
	return fmt.Sprintf("recomputing spending %s: %v", e.Key, e.Err)
}

func (e *RecomputeError) Unwrap() error { return e.Err }
