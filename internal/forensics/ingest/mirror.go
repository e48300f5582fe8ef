package ingest

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"github.com/goodnatureofminers/blockinsight7000-forensics/pkg/batcher"
	"go.uber.org/zap"
)

type mirrorBlock struct {
	transactions []model.TransactionRecord
	edges        []model.EdgeRecord
}

// mirrorWriter copies committed blocks to the analytics mirror in batches.
// Failures are logged and counted; they never reach the ingestion run.
type mirrorWriter struct {
	repo    Mirror
	logger  *zap.Logger
	batcher *batcher.Batcher[mirrorBlock]
}

func newMirrorWriter(repo Mirror, metrics Metrics, logger *zap.Logger) *mirrorWriter {
	w := &mirrorWriter{
		repo:   repo,
		logger: logger,
	}
	w.batcher = batcher.New[mirrorBlock](
		logger.Named("batcher"),
		w.flush,
		batcher.Config{
			FlushSize:     mirrorBatcherCapacity,
			FlushInterval: mirrorBatcherFlushInterval,
			RPS:           mirrorBatcherRPS,
			OnFlush: func(size int, err error, started time.Time) {
				metrics.ObserveMirrorFlush(err, size, started)
			},
		},
	)
	return w
}

func (w *mirrorWriter) Start(ctx context.Context) {
	w.batcher.Start(ctx)
}

func (w *mirrorWriter) Stop() {
	w.batcher.Stop()
}

func (w *mirrorWriter) Write(ctx context.Context, txs []model.TransactionRecord, edges []model.EdgeRecord) {
	if len(txs) == 0 {
		return
	}
	if err := w.batcher.Add(ctx, mirrorBlock{transactions: txs, edges: edges}); err != nil {
		w.logger.Warn("mirror write dropped", zap.Int("transactions", len(txs)), zap.Error(err))
	}
}

func (w *mirrorWriter) flush(ctx context.Context, blocks []mirrorBlock) error {
	var (
		txs   []model.TransactionRecord
		edges []model.EdgeRecord
	)
	for _, b := range blocks {
		txs = append(txs, b.transactions...)
		edges = append(edges, b.edges...)
	}

	if err := w.repo.InsertTransactions(ctx, txs); err != nil {
		return err
	}
	w.logger.Debug("InsertTransactions", zap.Int("count", len(txs)))
	if len(edges) == 0 {
		return nil
	}
	if err := w.repo.InsertEdges(ctx, edges); err != nil {
		return err
	}
	w.logger.Debug("InsertEdges", zap.Int("count", len(edges)))
	return nil
}
