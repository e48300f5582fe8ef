package ingest

import (
	"fmt"
	"strings"
)

// ErrorPolicy decides what happens when a block cannot be fetched or is rejected.
type ErrorPolicy int

const (
	// StopOnError aborts the run on the first failed block.
	StopOnError ErrorPolicy = iota
	// SkipAndContinue records the failed height and moves on.
	SkipAndContinue
)

func (p ErrorPolicy) String() string {
	switch p {
	case StopOnError:
		return "stop"
	case SkipAndContinue:
		return "skip"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// ParseErrorPolicy accepts "stop" or "skip".
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(s) {
	case "stop":
		return StopOnError, nil
	case "skip":
		return SkipAndContinue, nil
	default:
		return 0, fmt.Errorf("unknown error policy %q", s)
	}
}

// DuplicatePolicy decides what happens when a transaction is already stored.
type DuplicatePolicy int

const (
	// RejectDuplicates fails the whole block.
	RejectDuplicates DuplicatePolicy = iota
	// SkipDuplicates logs the transaction and writes the rest of the block.
	SkipDuplicates
)

func (p DuplicatePolicy) String() string {
	switch p {
	case RejectDuplicates:
		return "reject"
	case SkipDuplicates:
		return "skip"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
	}
}

// ParseDuplicatePolicy accepts "reject" or "skip".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(s) {
	case "reject":
		return RejectDuplicates, nil
	case "skip":
		return SkipDuplicates, nil
	default:
		return 0, fmt.Errorf("unknown duplicate policy %q", s)
	}
}
