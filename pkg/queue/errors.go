package queue

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateGroup = errors.New("group already in queue")
	ErrQueueEmpty     = errors.New("no group in queue")
	ErrNotFound       = errors.New("group not in queue")
)

// Error records the operation and group that violated a queue invariant.
type Error struct {
	Op    string
	Group GroupID
	Err   error
}

func (e *Error) Error() string {
	if e.Op == "next" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s group %d: %v", e.Op, e.Group, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
