package replication

import "errors"

var (
	ErrPrimaryUnreachable = errors.New("primary node unreachable")
	ErrPrimaryWriteFailed = errors.New("primary write failed")
	ErrClosed             = errors.New("propagator is closed")
)
