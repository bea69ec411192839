package session

import "errors"

var (
	// ErrInvalidInput indicates a submission with a blank field.
	ErrInvalidInput = errors.New("invalid session input")
	// ErrConnection indicates the store was unreachable.
	ErrConnection = errors.New("session store unreachable")
	// ErrWrite indicates the insert failed and nothing was stored.
	ErrWrite = errors.New("session write failed")
	// ErrRead indicates the select failed.
	ErrRead = errors.New("session read failed")
)
