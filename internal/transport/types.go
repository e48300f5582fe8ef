package transport

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Forensics interface {
		Trace(ctx context.Context, seed string, maxDepth int) (*model.TraceGraph, error)
		Lookup(address string) ([]model.Location, error)
		Transaction(loc model.Location) (model.TransactionRecord, error)
	}
)
