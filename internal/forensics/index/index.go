// Package index implements the Address Index on top of BadgerDB.
//
// Every (address, location) occurrence is a separate key whose suffix is the
// big-endian record offset, so a prefix scan yields locations in append order
// and writing the same occurrence twice is a no-op.
package index

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"github.com/goodnatureofminers/blockinsight7000-forensics/pkg/safe"
	"go.uber.org/zap"
)

var (
	addressPrefix  = []byte("a/")
	txPrefix       = []byte("t/")
	checkpointKey  = []byte("m/checkpoint")
	addressEndMark = byte(0)
)

// Entry binds an address to the location of a record it is party to.
type Entry struct {
	Address  string
	Location model.Location
}

// Located binds a transaction id to the location of its record.
type Located struct {
	TxID     string
	Location model.Location
}

// Batch is one atomic unit of index work, normally a block.
type Batch struct {
	Entries []Entry
	// Transactions feed duplicate detection and Locate.
	Transactions []Located
	// Checkpoint, when set, is written after all entries.
	Checkpoint *model.Checkpoint
}

// Index is safe for concurrent use.
type Index struct {
	db      *badger.DB
	gc      *gcRunner
	metrics Metrics
	logger  *zap.Logger
}

// Open opens or creates the index described by cfg.
func Open(cfg Config, metrics Metrics, logger *zap.Logger) (*Index, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := openBadger(cfg, logger)
	if err != nil {
		return nil, err
	}

	idx := &Index{db: db, metrics: metrics, logger: logger}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		gc, err := newGCRunner(db, cfg.GCInterval, cfg.GCDiscardRatio, logger)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		gc.Start()
		idx.gc = gc
	}

	logger.Info("address index opened", zap.String("path", cfg.Path), zap.Bool("in_memory", cfg.InMemory))
	return idx, nil
}

// Record associates address with loc.
func (i *Index) Record(address string, loc model.Location) error {
	return i.Commit(Batch{Entries: []Entry{{Address: address, Location: loc}}})
}

// Commit writes every entry and txid of b, then its checkpoint.
func (i *Index) Commit(b Batch) (err error) {
	started := time.Now()
	defer func() {
		i.observe("commit", err, started)
	}()

	wb := i.db.NewWriteBatch()
	defer wb.Cancel()

	for _, e := range b.Entries {
		if e.Address == "" {
			return fmt.Errorf("%w: empty address for %s", model.ErrInvalidArgument, e.Location)
		}
		key, err := addressKey(e.Address, e.Location)
		if err != nil {
			return fmt.Errorf("%w: %w", model.ErrInvalidArgument, err)
		}
		val, err := json.Marshal(e.Location)
		if err != nil {
			return fmt.Errorf("encode location %s: %w", e.Location, err)
		}
		if err := wb.Set(key, val); err != nil {
			return fmt.Errorf("index %s: %w", e.Address, err)
		}
	}
	for _, tx := range b.Transactions {
		val, err := json.Marshal(tx.Location)
		if err != nil {
			return fmt.Errorf("encode location %s: %w", tx.Location, err)
		}
		if err := wb.Set(txKey(tx.TxID), val); err != nil {
			return fmt.Errorf("index txid %s: %w", tx.TxID, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush index batch: %w", err)
	}

	if b.Checkpoint == nil {
		return nil
	}
	data, err := json.Marshal(b.Checkpoint)
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	if err := i.db.Update(func(txn *badger.Txn) error {
		return txn.Set(checkpointKey, data)
	}); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return nil
}

// Lookup returns the locations recorded for address in insertion order.
// An unknown address yields an empty slice. Keys sort by record offset, which is
// insertion order because every location refers to the single append-only
// transaction log; locations in different logs would sort by offset, not by log.
func (i *Index) Lookup(address string) (locs []model.Location, err error) {
	started := time.Now()
	defer func() {
		i.observe("lookup", err, started)
	}()

	if address == "" {
		return nil, fmt.Errorf("%w: empty address", model.ErrInvalidArgument)
	}

	prefix := addressScanPrefix(address)
	locs = []model.Location{}
	err = i.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var loc model.Location
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &loc)
			}); err != nil {
				return fmt.Errorf("decode location for %s: %w", address, err)
			}
			locs = append(locs, loc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return locs, nil
}

// Contains reports whether txid has been committed.
func (i *Index) Contains(txid string) (bool, error) {
	err := i.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(txKey(txid))
		return err
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("check txid %s: %w", txid, err)
	}
}

// Locate returns the location of the record committed for txid.
func (i *Index) Locate(txid string) (loc model.Location, found bool, err error) {
	started := time.Now()
	defer func() {
		i.observe("locate", err, started)
	}()

	err = i.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(txKey(txid))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) == 0 {
				return nil
			}
			found = true
			return json.Unmarshal(val, &loc)
		})
	})
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return model.Location{}, false, nil
	case err != nil:
		return model.Location{}, false, fmt.Errorf("locate txid %s: %w", txid, err)
	}
	return loc, found, nil
}

// Checkpoint returns the last committed checkpoint, or the zero value for a fresh index.
func (i *Index) Checkpoint() (model.Checkpoint, error) {
	var cp model.Checkpoint
	err := i.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(checkpointKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cp)
		})
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return model.Checkpoint{}, fmt.Errorf("read checkpoint: %w", err)
	}
	return cp, nil
}

// Reset removes every entry, txid and the checkpoint.
func (i *Index) Reset() error {
	if err := i.db.DropAll(); err != nil {
		return fmt.Errorf("drop index: %w", err)
	}
	i.logger.Info("address index reset")
	return nil
}

func (i *Index) Close() error {
	if i.gc != nil {
		i.gc.Stop()
	}
	return i.db.Close()
}

func (i *Index) observe(operation string, err error, started time.Time) {
	if i.metrics == nil {
		return
	}
	i.metrics.Observe(operation, err, started)
}

func addressScanPrefix(address string) []byte {
	var buf bytes.Buffer
	buf.Grow(len(addressPrefix) + len(address) + 1)
	buf.Write(addressPrefix)
	buf.WriteString(address)
	buf.WriteByte(addressEndMark)
	return buf.Bytes()
}

func addressKey(address string, loc model.Location) ([]byte, error) {
	off, err := safe.Uint64(loc.Offset)
	if err != nil {
		return nil, fmt.Errorf("location %s: %w", loc, err)
	}
	prefix := addressScanPrefix(address)
	key := make([]byte, 0, len(prefix)+8+len(loc.Log))
	key = append(key, prefix...)
	key = binary.BigEndian.AppendUint64(key, off)
	key = append(key, loc.Log...)
	return key, nil
}

func txKey(txid string) []byte {
	return append(append([]byte{}, txPrefix...), txid...)
}
