package session

import (
	"errors"
	"fmt"
)

var (
	ErrNoActiveChallenge = errors.New("no active challenge")
	ErrResumeExpired     = errors.New("challenge is too old to resume")
)

// PersistenceError reports a failed write or read of a storage slot. The
// in-memory state it accompanies is still valid.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("persist %s (%s): %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
