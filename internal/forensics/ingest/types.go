package ingest

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/index"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source is the chain data collaborator. Implementations resolve addresses
	// and substitute sentinels before returning a block.
	Source interface {
		Block(ctx context.Context, hash string) (*model.Block, error)
		BlockHashAtHeight(ctx context.Context, height uint64) (string, error)
		ChainHeight(ctx context.Context) (uint64, error)
	}
	RecordStore interface {
		AppendTransaction(rec model.TransactionRecord) (model.Location, error)
		AppendEdges(edges []model.EdgeRecord) error
		ReadTransaction(loc model.Location) (model.TransactionRecord, error)
		ScanTransactions(from int64, fn func(loc model.Location, rec model.TransactionRecord) error) error
		TruncateEdges(offset int64) error
		Cursor() model.Cursor
	}
	AddressIndex interface {
		Commit(b index.Batch) error
		Contains(txid string) (bool, error)
		Locate(txid string) (model.Location, bool, error)
		Checkpoint() (model.Checkpoint, error)
		Reset() error
	}
	// Mirror receives committed records for analytics. It is never on the commit path.
	Mirror interface {
		InsertTransactions(ctx context.Context, recs []model.TransactionRecord) error
		InsertEdges(ctx context.Context, edges []model.EdgeRecord) error
	}
	Metrics interface {
		ObserveFetch(err error, height uint64, started time.Time)
		ObserveBlock(err error, height uint64, transactions int, started time.Time)
		ObserveRecover(err error, transactions int, started time.Time)
		ObserveMirrorFlush(err error, blocks int, started time.Time)
	}
)
