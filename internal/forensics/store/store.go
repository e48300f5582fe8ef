// Package store implements the append-only Record Store: a transaction log and an edge log.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/recordlog"
	"go.uber.org/zap"
)

const (
	// TransactionLog names the log holding transaction records.
	TransactionLog = "transactions"
	// EdgeLog names the log holding edge records.
	EdgeLog = "edges"

	transactionFile = "transactions.log"
	edgeFile        = "edges.log"
)

// Config describes where the store keeps its logs.
type Config struct {
	Dir        string
	SyncWrites bool
}

// Store is safe for one writer and many concurrent readers.
type Store struct {
	txs     *recordlog.Log
	edges   *recordlog.Log
	metrics Metrics
	logger  *zap.Logger
}

// Open opens both logs under cfg.Dir.
func Open(cfg Config, metrics Metrics, logger *zap.Logger) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("store directory is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	txs, err := recordlog.Open(recordlog.Config{
		Path:       filepath.Join(cfg.Dir, transactionFile),
		Name:       TransactionLog,
		SyncWrites: cfg.SyncWrites,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open transaction log: %w", err)
	}
	edges, err := recordlog.Open(recordlog.Config{
		Path:       filepath.Join(cfg.Dir, edgeFile),
		Name:       EdgeLog,
		SyncWrites: cfg.SyncWrites,
		Logger:     logger,
	})
	if err != nil {
		_ = txs.Close()
		return nil, fmt.Errorf("open edge log: %w", err)
	}

	logger.Info("record store opened",
		zap.String("dir", cfg.Dir),
		zap.Int64("transactions", txs.Count()),
		zap.Int64("edges", edges.Count()),
	)
	return &Store{txs: txs, edges: edges, metrics: metrics, logger: logger}, nil
}

// AppendTransaction durably writes rec and returns its location.
func (s *Store) AppendTransaction(rec model.TransactionRecord) (loc model.Location, err error) {
	started := time.Now()
	defer func() {
		s.observe("append_transaction", err, started)
	}()

	data, err := json.Marshal(rec)
	if err != nil {
		return model.Location{}, fmt.Errorf("encode transaction %s: %w", rec.TxID, err)
	}
	off, err := s.txs.Append(data)
	if err != nil {
		return model.Location{}, fmt.Errorf("%w: append transaction %s: %w", model.ErrStorageWrite, rec.TxID, err)
	}
	return model.Location{Log: TransactionLog, Offset: off}, nil
}

// AppendEdges durably writes edges as one batch.
func (s *Store) AppendEdges(edges []model.EdgeRecord) (err error) {
	if len(edges) == 0 {
		return nil
	}
	started := time.Now()
	defer func() {
		s.observe("append_edges", err, started)
	}()

	records := make([][]byte, 0, len(edges))
	for _, e := range edges {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode edge %s: %w", e.TxID, err)
		}
		records = append(records, data)
	}
	if _, err = s.edges.AppendBatch(records); err != nil {
		return fmt.Errorf("%w: append %d edges: %w", model.ErrStorageWrite, len(edges), err)
	}
	return nil
}

// ReadTransaction returns the record at loc or model.ErrNotFound.
func (s *Store) ReadTransaction(loc model.Location) (rec model.TransactionRecord, err error) {
	started := time.Now()
	defer func() {
		s.observe("read_transaction", err, started)
	}()

	if loc.Log != TransactionLog {
		return model.TransactionRecord{}, fmt.Errorf("%w: %s is not a transaction location", model.ErrNotFound, loc)
	}
	data, err := s.txs.Read(loc.Offset)
	if err != nil {
		if errors.Is(err, recordlog.ErrOutOfRange) || errors.Is(err, recordlog.ErrNotBoundary) {
			return model.TransactionRecord{}, fmt.Errorf("%w: %s", model.ErrNotFound, loc)
		}
		return model.TransactionRecord{}, fmt.Errorf("read %s: %w", loc, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.TransactionRecord{}, fmt.Errorf("%w: decode %s: %w", model.ErrNotFound, loc, err)
	}
	return rec, nil
}

// ScanTransactions visits transaction records starting at offset from.
func (s *Store) ScanTransactions(from int64, fn func(loc model.Location, rec model.TransactionRecord) error) error {
	return s.txs.Scan(from, func(offset int64, data []byte) error {
		var rec model.TransactionRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("decode transaction at %d: %w", offset, err)
		}
		return fn(model.Location{Log: TransactionLog, Offset: offset}, rec)
	})
}

// ScanEdges visits edge records starting at offset from.
func (s *Store) ScanEdges(from int64, fn func(offset int64, edge model.EdgeRecord) error) error {
	return s.edges.Scan(from, func(offset int64, data []byte) error {
		var e model.EdgeRecord
		if err := json.Unmarshal(data, &e); err != nil {
			return fmt.Errorf("decode edge at %d: %w", offset, err)
		}
		return fn(offset, e)
	})
}

// TruncateEdges drops edge records at or after offset. It is only used to discard
// edges written past the last index commit before they are regenerated.
func (s *Store) TruncateEdges(offset int64) error {
	if err := s.edges.TruncateTo(offset); err != nil {
		return fmt.Errorf("%w: truncate edges: %w", model.ErrStorageWrite, err)
	}
	return nil
}

// Cursor returns the current end offsets of the transaction and edge logs.
func (s *Store) Cursor() model.Cursor {
	return model.Cursor{
		TransactionOffset: s.txs.Size(),
		EdgeOffset:        s.edges.Size(),
	}
}

func (s *Store) TransactionCount() int64 { return s.txs.Count() }

func (s *Store) EdgeCount() int64 { return s.edges.Count() }

func (s *Store) Close() error {
	return errors.Join(s.txs.Close(), s.edges.Close())
}

func (s *Store) observe(operation string, err error, started time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.Observe(operation, err, started)
}
