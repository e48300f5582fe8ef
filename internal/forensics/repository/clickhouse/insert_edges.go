package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
)

const insertEdgesQuery = `
INSERT INTO forensic_edges (
	coin,
	network,
	input,
	output,
	txid,
	block_hash
) VALUES`

// InsertEdges stores edge records in ClickHouse.
func (r *Repository) InsertEdges(ctx context.Context, edges []model.EdgeRecord) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_edges", r.coin, r.network, err, start)
	}()

	if len(edges) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertEdgesQuery)
	if err != nil {
		return fmt.Errorf("prepare edges batch: %w", err)
	}

	for _, e := range edges {
		if err = batch.Append(
			string(r.coin),
			string(r.network),
			e.Input,
			e.Output,
			e.TxID,
			e.BlockHash,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append edge: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert edges: %w", err)
	}
	return nil
}
