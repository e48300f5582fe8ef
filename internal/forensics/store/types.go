package store

import "time"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records store operation outcomes.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
