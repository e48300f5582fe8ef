// Package service wires the record store, address index, ingestion pipeline and
// traversal engine over one data directory.
package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/index"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/ingest"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/store"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/trace"
	"go.uber.org/zap"
)

const (
	recordsDir = "records"
	indexDir   = "index"
)

type Config struct {
	DataDir string
	// NoSyncWrites skips the fsync after every append and index commit.
	NoSyncWrites bool
	// InMemoryIndex keeps the index in RAM; it is rebuilt from the records on Open.
	InMemoryIndex bool
	Ingest        ingest.Config
	TraceWorkers  int
}

// Metrics groups the collectors of every component. Ingest is required.
type Metrics struct {
	Store  store.Metrics
	Index  index.Metrics
	Ingest ingest.Metrics
	Trace  trace.Metrics
}

// Forensics owns the on-disk state. Writes (ingest, recover, rebuild) are
// serialized; traces run concurrently with them.
type Forensics struct {
	cfg     Config
	store   *store.Store
	index   *index.Index
	engine  *trace.Engine
	metrics Metrics
	logger  *zap.Logger

	writeMu sync.Mutex
}

// Open opens the data directory and reconciles the index with the records.
func Open(ctx context.Context, cfg Config, metrics Metrics, logger *zap.Logger) (*Forensics, error) {
	if cfg.DataDir == "" {
		return nil, errors.New("data directory is required")
	}
	if metrics.Ingest == nil {
		return nil, errors.New("ingest metrics is required")
	}

	st, err := store.Open(storeConfig(cfg), metrics.Store, logger.Named("store"))
	if err != nil {
		return nil, err
	}

	idx, err := index.Open(indexConfig(cfg), metrics.Index, logger.Named("index"))
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	f := &Forensics{
		cfg:     cfg,
		store:   st,
		index:   idx,
		engine:  trace.NewEngine(idx, st, metrics.Trace, cfg.TraceWorkers, logger.Named("trace")),
		metrics: metrics,
		logger:  logger,
	}

	if cfg.InMemoryIndex {
		_, err = f.RebuildIndex(ctx)
	} else {
		_, err = f.Recover(ctx)
	}
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func storeConfig(cfg Config) store.Config {
	return store.Config{
		Dir:        filepath.Join(cfg.DataDir, recordsDir),
		SyncWrites: !cfg.NoSyncWrites,
	}
}

func indexConfig(cfg Config) index.Config {
	if cfg.InMemoryIndex {
		return index.InMemoryConfig()
	}
	idxCfg := index.DefaultConfig()
	idxCfg.Path = filepath.Join(cfg.DataDir, indexDir)
	if cfg.NoSyncWrites {
		idxCfg.SyncWrites = false
	}
	return idxCfg
}

// Pipeline builds a pipeline over the opened state. mirror may be nil.
// Callers that run it directly must not overlap it with other writes.
func (f *Forensics) Pipeline(source ingest.Source, mirror ingest.Mirror) (*ingest.Pipeline, error) {
	if source == nil {
		source = offlineSource{}
	}
	return ingest.NewPipeline(source, f.store, f.index, mirror, f.metrics.Ingest, f.cfg.Ingest, f.logger.Named("ingest"))
}

// Ingest runs one ingestion request.
func (f *Forensics) Ingest(ctx context.Context, source ingest.Source, mirror ingest.Mirror, req ingest.Request) (ingest.Report, error) {
	if source == nil {
		return ingest.Report{}, errors.New("chain source is required")
	}
	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	p, err := f.Pipeline(source, mirror)
	if err != nil {
		return ingest.Report{}, err
	}
	return p.Ingest(ctx, req)
}

// Follow ingests from the last committed block to the chain tip, then waits
// interval and repeats until ctx is done. Failed runs are logged and retried.
func (f *Forensics) Follow(ctx context.Context, source ingest.Source, mirror ingest.Mirror, start uint64, interval time.Duration) error {
	logger := f.logger.Named("follow")
	for {
		from, err := f.Resume(start)
		if err != nil {
			return err
		}
		tip, err := source.ChainHeight(ctx)
		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			logger.Warn("chain height unavailable", zap.Error(err))
		case from <= tip:
			f.follow(ctx, source, mirror, from, logger)
		}
		if err := clock.SleepWithContext(ctx, interval); err != nil {
			return err
		}
	}
}

func (f *Forensics) follow(ctx context.Context, source ingest.Source, mirror ingest.Mirror, from uint64, logger *zap.Logger) {
	report, err := f.Ingest(ctx, source, mirror, ingest.Request{
		Start:       from,
		OnError:     ingest.StopOnError,
		OnDuplicate: ingest.SkipDuplicates,
	})
	switch {
	case ctx.Err() != nil:
	case err != nil:
		logger.Warn("follow run failed", zap.Uint64("from", from), zap.Error(err))
	default:
		logger.Info("follow run finished", zap.Uint64("last_height", report.LastHeight), zap.Int("blocks", report.Blocks))
	}
}

// Recover brings the index up to the end of the transaction log.
func (f *Forensics) Recover(ctx context.Context) (int, error) {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	p, err := f.Pipeline(nil, nil)
	if err != nil {
		return 0, err
	}
	n, err := p.Recover(ctx)
	if err != nil {
		return n, fmt.Errorf("recover index: %w", err)
	}
	if n > 0 {
		f.logger.Info("index recovered", zap.Int("transactions", n))
	}
	return n, nil
}

// RebuildIndex discards the index and regenerates it from the transaction log.
func (f *Forensics) RebuildIndex(ctx context.Context) (int, error) {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	p, err := f.Pipeline(nil, nil)
	if err != nil {
		return 0, err
	}
	return p.RebuildIndex(ctx)
}

// Resume returns the height after the last committed block, or fallback.
func (f *Forensics) Resume(fallback uint64) (uint64, error) {
	p, err := f.Pipeline(nil, nil)
	if err != nil {
		return 0, err
	}
	return p.Resume(fallback)
}

// Checkpoint returns the last committed state of the index.
func (f *Forensics) Checkpoint() (model.Checkpoint, error) {
	return f.index.Checkpoint()
}

// Trace runs a bounded traversal from seed.
func (f *Forensics) Trace(ctx context.Context, seed string, maxDepth int) (*model.TraceGraph, error) {
	return f.engine.Trace(ctx, seed, maxDepth)
}

// Lookup returns the locations indexed for address.
func (f *Forensics) Lookup(address string) ([]model.Location, error) {
	return f.index.Lookup(address)
}

// Outputs reads back outputs of committed transactions. Chain sources use it to
// name inputs without asking the node.
func (f *Forensics) Outputs() *ingest.OutputResolver {
	return ingest.NewOutputResolver(f.store, f.index)
}

// Transaction reads the record at loc.
func (f *Forensics) Transaction(loc model.Location) (model.TransactionRecord, error) {
	return f.store.ReadTransaction(loc)
}

func (f *Forensics) Close() error {
	return errors.Join(f.index.Close(), f.store.Close())
}

// offlineSource backs pipelines that only touch local state.
type offlineSource struct{}

func (offlineSource) Block(context.Context, string) (*model.Block, error) {
	return nil, model.ErrSourceUnavailable
}

func (offlineSource) BlockHashAtHeight(context.Context, uint64) (string, error) {
	return "", model.ErrSourceUnavailable
}

func (offlineSource) ChainHeight(context.Context) (uint64, error) {
	return 0, model.ErrSourceUnavailable
}
