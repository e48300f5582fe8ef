package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
)

const insertTransactionsQuery = `
INSERT INTO forensic_transactions (
	coin,
	network,
	txid,
	block_hash,
	block_height,
	timestamp,
	inputs,
	output_addresses,
	output_values
) VALUES`

// InsertTransactions stores transaction records in ClickHouse.
func (r *Repository) InsertTransactions(ctx context.Context, txs []model.TransactionRecord) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_transactions", r.coin, r.network, err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertTransactionsQuery)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}

	for _, tx := range txs {
		addresses := make([]string, len(tx.Outputs))
		values := make([]uint64, len(tx.Outputs))
		for i, out := range tx.Outputs {
			addresses[i] = out.Address
			values[i] = out.Value
		}
		if err = batch.Append(
			string(r.coin),
			string(r.network),
			tx.TxID,
			tx.BlockHash,
			tx.BlockHeight,
			time.Unix(tx.Timestamp, 0).UTC(),
			tx.Inputs,
			addresses,
			values,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append transaction %s: %w", tx.TxID, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}
