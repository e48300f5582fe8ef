package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/index"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"go.uber.org/zap"
)

// Recover reconciles the edge log and the index with the transaction log after an
// unclean stop. Edges past the last commit are cut; transaction records past it get
// their edges regenerated and are indexed. The checkpoint height is left as is, so
// a partially written block is re-ingested with SkipDuplicates.
func (p *Pipeline) Recover(ctx context.Context) (recovered int, err error) {
	started := time.Now()
	defer func() {
		p.metrics.ObserveRecover(err, recovered, started)
	}()

	cp, err := p.index.Checkpoint()
	if err != nil {
		return 0, err
	}
	cur := p.store.Cursor()

	if cur.TransactionOffset < cp.TransactionOffset || cur.EdgeOffset < cp.EdgeOffset {
		return 0, fmt.Errorf("logs end before the committed checkpoint (transactions %d < %d or edges %d < %d); rebuild the index",
			cur.TransactionOffset, cp.TransactionOffset, cur.EdgeOffset, cp.EdgeOffset)
	}
	if cur.EdgeOffset > cp.EdgeOffset {
		p.logger.Warn("discarding uncommitted edges",
			zap.Int64("committed", cp.EdgeOffset),
			zap.Int64("size", cur.EdgeOffset),
		)
		if err := p.store.TruncateEdges(cp.EdgeOffset); err != nil {
			return 0, err
		}
	}
	if cur.TransactionOffset == cp.TransactionOffset {
		return 0, nil
	}

	var (
		batch index.Batch
		edges []model.EdgeRecord
	)
	err = p.store.ScanTransactions(cp.TransactionOffset, func(loc model.Location, rec model.TransactionRecord) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, addr := range rec.Addresses() {
			batch.Entries = append(batch.Entries, index.Entry{Address: addr, Location: loc})
		}
		batch.Transactions = append(batch.Transactions, index.Located{TxID: rec.TxID, Location: loc})
		edges = append(edges, rec.Edges()...)
		recovered++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan uncommitted transactions: %w", err)
	}
	if err := p.store.AppendEdges(edges); err != nil {
		return 0, err
	}

	next := cp
	next.Cursor = p.store.Cursor()
	batch.Checkpoint = &next
	if err := p.index.Commit(batch); err != nil {
		return 0, fmt.Errorf("%w: commit recovered entries: %w", model.ErrStorageWrite, err)
	}

	p.logger.Info("recovered uncommitted transactions",
		zap.Int("transactions", recovered),
		zap.Int("edges", len(edges)),
	)
	return recovered, nil
}

// RebuildIndex discards the index and regenerates it from a full scan of the
// transaction log.
func (p *Pipeline) RebuildIndex(ctx context.Context) (indexed int, err error) {
	if _, err := p.Recover(ctx); err != nil {
		p.logger.Warn("recovery before rebuild failed, rebuilding from the logs as they are", zap.Error(err))
	}
	if err := p.index.Reset(); err != nil {
		return 0, err
	}

	var (
		batch index.Batch
		last  model.TransactionRecord
	)
	err = p.store.ScanTransactions(0, func(loc model.Location, rec model.TransactionRecord) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, addr := range rec.Addresses() {
			batch.Entries = append(batch.Entries, index.Entry{Address: addr, Location: loc})
		}
		batch.Transactions = append(batch.Transactions, index.Located{TxID: rec.TxID, Location: loc})
		last = rec
		indexed++

		if len(batch.Transactions) >= rebuildCommitSize {
			if err := p.index.Commit(batch); err != nil {
				return fmt.Errorf("%w: commit rebuilt entries: %w", model.ErrStorageWrite, err)
			}
			batch = index.Batch{}
		}
		return nil
	})
	if err != nil {
		return indexed, fmt.Errorf("rebuild index: %w", err)
	}

	cp := model.Checkpoint{Cursor: p.store.Cursor()}
	if indexed > 0 {
		cp.Height = last.BlockHeight
		cp.Hash = last.BlockHash
		cp.HasBlock = true
	}
	batch.Checkpoint = &cp
	if err := p.index.Commit(batch); err != nil {
		return indexed, fmt.Errorf("%w: commit rebuilt entries: %w", model.ErrStorageWrite, err)
	}

	p.logger.Info("index rebuilt", zap.Int("transactions", indexed), zap.Uint64("height", cp.Height))
	return indexed, nil
}
