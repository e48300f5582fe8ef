package model

import "errors"

var (
	// ErrSourceUnavailable means the chain source could not serve a request.
	ErrSourceUnavailable = errors.New("chain source unavailable")
	// ErrChainDiscontinuity means a successor link was missing or inconsistent before the target height.
	ErrChainDiscontinuity = errors.New("chain discontinuity")
	// ErrDuplicateTransaction means a transaction id is already present in the store.
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	// ErrStorageWrite means a durable append did not complete.
	ErrStorageWrite = errors.New("storage write failure")
	// ErrNotFound means a location does not hold a record.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidArgument is returned for inputs rejected before any I/O.
	ErrInvalidArgument = errors.New("invalid argument")
)
