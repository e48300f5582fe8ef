// Package ingest implements the Ingestion Pipeline. Blocks are followed by their
// successor hash, transaction and edge records are appended to the record store,
// and only then are index entries and the commit checkpoint written.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config tunes fetch retries.
type Config struct {
	FetchAttempts int
	RetryDelay    time.Duration
}

// Request describes one ingestion run over [Start, End].
type Request struct {
	Start uint64
	// End is inclusive. A nil End follows successors until the chain tip.
	End         *uint64
	OnError     ErrorPolicy
	OnDuplicate DuplicatePolicy
	// OnBlock is called once per height after it has been committed or skipped.
	OnBlock func(height uint64)
}

func (r Request) isLast(height uint64) bool {
	return r.End != nil && height >= *r.End
}

// SkippedBlock is a height left behind under SkipAndContinue.
type SkippedBlock struct {
	Height uint64 `json:"height"`
	Reason string `json:"reason"`
}

// Report summarizes an ingestion run. ResolvedInputs counts inputs named from
// stored records rather than by the source.
type Report struct {
	Blocks         int            `json:"blocks"`
	Transactions   int            `json:"transactions"`
	Edges          int            `json:"edges"`
	Duplicates     int            `json:"duplicates"`
	ResolvedInputs int            `json:"resolved_inputs"`
	Skipped        []SkippedBlock `json:"skipped,omitempty"`
	LastHeight     uint64         `json:"last_height"`
	LastHash       string         `json:"last_hash,omitempty"`
}

func (r *Report) skip(height uint64, err error) {
	r.Skipped = append(r.Skipped, SkippedBlock{Height: height, Reason: err.Error()})
}

// Pipeline is the single writer of the record store and the index.
// Ingest, Recover and RebuildIndex must not run concurrently.
type Pipeline struct {
	source  Source
	store   RecordStore
	index   AddressIndex
	mirror  Mirror
	outputs *OutputResolver
	metrics Metrics
	logger  *zap.Logger

	sleep         func(context.Context, time.Duration) error
	fetchAttempts int
	retryDelay    time.Duration
}

// NewPipeline wires a pipeline. mirror may be nil.
func NewPipeline(
	source Source,
	store RecordStore,
	idx AddressIndex,
	mirror Mirror,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
) (*Pipeline, error) {
	switch {
	case source == nil:
		return nil, errors.New("chain source is required")
	case store == nil:
		return nil, errors.New("record store is required")
	case idx == nil:
		return nil, errors.New("address index is required")
	case metrics == nil:
		return nil, errors.New("ingest metrics is required")
	}
	if cfg.FetchAttempts <= 0 {
		cfg.FetchAttempts = defaultFetchAttempts
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	return &Pipeline{
		source:        source,
		store:         store,
		index:         idx,
		mirror:        mirror,
		outputs:       NewOutputResolver(store, idx),
		metrics:       metrics,
		logger:        logger,
		sleep:         clock.SleepWithContext,
		fetchAttempts: cfg.FetchAttempts,
		retryDelay:    cfg.RetryDelay,
	}, nil
}

// Ingest walks req.Start..req.End. Heights are strictly increasing and each block's
// writes are durable before the next block is written; the fetch of the next block
// overlaps with the writes of the current one.
func (p *Pipeline) Ingest(ctx context.Context, req Request) (report Report, err error) {
	if req.End != nil && *req.End < req.Start {
		return report, fmt.Errorf("%w: end height %d is below start height %d", model.ErrInvalidArgument, *req.End, req.Start)
	}

	logger := p.logger.With(
		zap.Uint64("start", req.Start),
		zap.Stringer("on_error", req.OnError),
		zap.Stringer("on_duplicate", req.OnDuplicate),
	)
	if req.End != nil {
		logger = logger.With(zap.Uint64("end", *req.End))
	}
	logger.Info("ingestion started")

	var mirror *mirrorWriter
	if p.mirror != nil {
		mirror = newMirrorWriter(p.mirror, p.metrics, p.logger.Named("mirror"))
		mirror.Start(ctx)
		defer mirror.Stop()
	}

	height := req.Start
	res := p.fetch(ctx, height, "")
	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if res.err != nil {
			if isFatal(res.err) || req.OnError == StopOnError {
				logger.Error("fetch block failed", zap.Uint64("height", height), zap.Error(res.err))
				return report, res.err
			}
			if req.End == nil && p.beyondTip(ctx, height) {
				logger.Info("reached chain tip", zap.Uint64("height", height-1))
				return report, nil
			}
			report.skip(height, res.err)
			logger.Warn("block skipped", zap.Uint64("height", height), zap.Error(res.err))
			p.notify(req, height)
			if req.isLast(height) {
				break
			}
			height++
			res = p.fetch(ctx, height, "")
			continue
		}

		block := res.block
		last := req.isLast(height)
		hasNext := !last && block.NextHash != ""

		g, gctx := errgroup.WithContext(ctx)
		var next fetchResult
		if hasNext {
			nextHeight, nextHash := height+1, block.NextHash
			g.Go(func() error {
				next = p.fetch(gctx, nextHeight, nextHash)
				return nil
			})
		}
		var blockErr error
		g.Go(func() error {
			blockErr = p.writeBlock(ctx, block, req.OnDuplicate, &report, mirror)
			if blockErr != nil && !errors.Is(blockErr, model.ErrDuplicateTransaction) {
				return blockErr
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			logger.Error("write block failed", zap.Uint64("height", height), zap.Error(err))
			return report, err
		}
		if blockErr != nil {
			if req.OnError == StopOnError {
				logger.Error("block rejected", zap.Uint64("height", height), zap.Error(blockErr))
				return report, blockErr
			}
			report.skip(height, blockErr)
			logger.Warn("block rejected and skipped", zap.Uint64("height", height), zap.Error(blockErr))
		}
		p.notify(req, height)

		if last {
			break
		}
		if !hasNext {
			if req.End == nil {
				logger.Info("reached chain tip", zap.Uint64("height", height), zap.String("hash", block.Hash))
				break
			}
			return report, fmt.Errorf("%w: block %d (%s) has no successor before end height %d",
				model.ErrChainDiscontinuity, height, block.Hash, *req.End)
		}
		height++
		res = next
	}

	logger.Info("ingestion finished",
		zap.Int("blocks", report.Blocks),
		zap.Int("transactions", report.Transactions),
		zap.Int("edges", report.Edges),
		zap.Int("duplicates", report.Duplicates),
		zap.Int("resolved_inputs", report.ResolvedInputs),
		zap.Int("skipped", len(report.Skipped)),
	)
	return report, nil
}

// Resume returns the height after the last committed block, or fallback if nothing
// has been committed yet.
func (p *Pipeline) Resume(fallback uint64) (uint64, error) {
	cp, err := p.index.Checkpoint()
	if err != nil {
		return 0, err
	}
	if !cp.HasBlock {
		return fallback, nil
	}
	return cp.Height + 1, nil
}

func (p *Pipeline) beyondTip(ctx context.Context, height uint64) bool {
	tip, err := p.source.ChainHeight(ctx)
	if err != nil {
		p.logger.Warn("chain height unavailable", zap.Error(err))
		return false
	}
	return height > tip
}

func (p *Pipeline) notify(req Request, height uint64) {
	if req.OnBlock != nil {
		req.OnBlock(height)
	}
}

// isFatal reports errors that end a run regardless of ErrorPolicy.
func isFatal(err error) bool {
	return errors.Is(err, model.ErrStorageWrite) ||
		errors.Is(err, model.ErrChainDiscontinuity) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
