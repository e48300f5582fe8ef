package trace

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	AddressIndex interface {
		Lookup(address string) ([]model.Location, error)
	}
	RecordReader interface {
		ReadTransaction(loc model.Location) (model.TransactionRecord, error)
	}
	Metrics interface {
		ObserveTrace(err error, maxDepth, nodes, edges int, started time.Time)
		ObserveSkippedRead(err error)
	}
)
