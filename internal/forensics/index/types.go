package index

import "time"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records index operation outcomes.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
