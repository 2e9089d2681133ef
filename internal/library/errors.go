package library

import (
	"errors"
	"fmt"
)

// ErrNoPreviousVersion is returned when a diff is requested against
// version 1, which has nothing before it.
var ErrNoPreviousVersion = errors.New("no previous version to compare")

// ValidationError rejects a write before any store call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StoreError wraps a failed collaborator call. The operation was aborted
// and nothing beyond the failing call was applied.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IntegrityError signals a broken core invariant, e.g. a prompt with no
// versions. It should not occur under correct usage; treat as a defect.
type IntegrityError struct {
	Msg string
}

func (e *IntegrityError) Error() string {
	return "integrity violation: " + e.Msg
}

// PartialError reports a multi-call operation that failed after some calls
// had already committed. There is no rollback; Applied tells the user how
// far the operation got so they can check state before retrying.
type PartialError struct {
	Op        string
	Applied   int
	Attempted int
	Err       error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%s: %d of %d updates committed before failure: %v", e.Op, e.Applied, e.Attempted, e.Err)
}

func (e *PartialError) Unwrap() error { return e.Err }
