package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"go.uber.org/zap"
)

type fetchResult struct {
	block *model.Block
	err   error
}

// fetch loads the block at height. An empty hash is resolved by height first.
func (p *Pipeline) fetch(ctx context.Context, height uint64, hash string) fetchResult {
	started := time.Now()
	block, err := p.fetchBlock(ctx, height, hash)
	p.metrics.ObserveFetch(err, height, started)
	return fetchResult{block: block, err: err}
}

func (p *Pipeline) fetchBlock(ctx context.Context, height uint64, hash string) (*model.Block, error) {
	var lastErr error
	for attempt := 1; attempt <= p.fetchAttempts; attempt++ {
		if attempt > 1 {
			if err := p.sleep(ctx, clock.Backoff(p.retryDelay, attempt-2, maxRetryDelay)); err != nil {
				return nil, err
			}
		}

		block, err := p.tryFetch(ctx, height, hash)
		if err == nil {
			if block.Height != height {
				return nil, fmt.Errorf("%w: expected height %d, source returned %d for %s",
					model.ErrChainDiscontinuity, height, block.Height, block.Hash)
			}
			return block, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		lastErr = err
		p.logger.Warn("fetch block attempt failed",
			zap.Uint64("height", height),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return nil, fmt.Errorf("%w: block %d: %w", model.ErrSourceUnavailable, height, lastErr)
}

func (p *Pipeline) tryFetch(ctx context.Context, height uint64, hash string) (*model.Block, error) {
	if hash == "" {
		h, err := p.source.BlockHashAtHeight(ctx, height)
		if err != nil {
			return nil, fmt.Errorf("hash at height %d: %w", height, err)
		}
		hash = h
	}
	block, err := p.source.Block(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("block %s: %w", hash, err)
	}
	if block == nil {
		return nil, errors.New("source returned no block for " + hash)
	}
	return block, nil
}
