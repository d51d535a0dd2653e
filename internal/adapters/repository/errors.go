package repository

import "errors"

var (
	// ErrNotFound indicates the requested record is not in the store.
	ErrNotFound = errors.New("record not found")
	// ErrStoreClosed indicates an operation on a closed store.
	ErrStoreClosed = errors.New("store is closed")
)
