package model

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrEnvironment       = errors.New("environment error")
	ErrIncompatibleChain = errors.New("incompatible chain")
	ErrCorruptBlock      = errors.New("corrupt block")
	ErrIO                = errors.New("i/o error")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrDatabaseExists    = errors.New("address database already exists")
	ErrDatabaseLocked    = errors.New("address database is locked by another process")
	// ErrDatabaseTruncated marks a failure after an existing database file was already emptied.
	ErrDatabaseTruncated = errors.New("existing address database was truncated")
)

// CorruptBlockError reports internally inconsistent data inside a complete block file.
type CorruptBlockError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *CorruptBlockError) Error() string {
	return fmt.Sprintf("corrupt block in %s at offset %d: %v", e.Path, e.Offset, e.Err)
}

func (e *CorruptBlockError) Unwrap() error { return e.Err }

func (e *CorruptBlockError) Is(target error) bool { return target == ErrCorruptBlock }

// CapacityExceededError reports that the database cannot take another distinct address
// without breaking its documented false-positive bound.
type CapacityExceededError struct {
	Capacity uint64
	Limit    uint64
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("address database full: %d entries reached the limit for %d slots (use a larger --dblength)",
		e.Limit, e.Capacity)
}

func (e *CapacityExceededError) Is(target error) bool { return target == ErrCapacityExceeded }

// IOError reports an unreadable input or unwritable output file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// ErrorKind returns a short label naming the failure class of err.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrDatabaseTruncated):
		return "database_truncated"
	case errors.Is(err, ErrEnvironment):
		return "environment"
	case errors.Is(err, ErrIncompatibleChain):
		return "incompatible_chain"
	case errors.Is(err, ErrCorruptBlock):
		return "corrupt_block"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrDatabaseExists):
		return "database_exists"
	case errors.Is(err, ErrDatabaseLocked):
		return "database_locked"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, context.Canceled):
		return "interrupted"
	default:
		return "unknown"
	}
}
