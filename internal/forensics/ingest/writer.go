package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/index"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"go.uber.org/zap"
)

// writeBlock appends the block's records and commits its index entries.
// Nothing is appended when the duplicate check rejects the block.
func (p *Pipeline) writeBlock(
	ctx context.Context,
	block *model.Block,
	policy DuplicatePolicy,
	report *Report,
	mirror *mirrorWriter,
) (err error) {
	started := time.Now()
	written := 0
	defer func() {
		p.metrics.ObserveBlock(err, block.Height, written, started)
	}()

	accepted, duplicates, err := p.admit(block, policy)
	if err != nil {
		return err
	}

	prevouts := make(map[string][]model.Output)
	resolved := 0
	for i, tx := range accepted {
		tx, n, err := p.resolvePrevouts(tx, prevouts)
		if err != nil {
			return fmt.Errorf("block %d: resolve inputs of %s: %w", block.Height, tx.TxID, err)
		}
		accepted[i] = normalize(tx)
		resolved += n
	}

	batch := index.Batch{Transactions: make([]index.Located, 0, len(accepted))}
	recs := make([]model.TransactionRecord, 0, len(accepted))
	var edges []model.EdgeRecord
	for _, tx := range accepted {
		rec := model.NewTransactionRecord(block, tx)
		loc, err := p.store.AppendTransaction(rec)
		if err != nil {
			return fmt.Errorf("block %d: %w", block.Height, err)
		}
		for _, addr := range rec.Addresses() {
			batch.Entries = append(batch.Entries, index.Entry{Address: addr, Location: loc})
		}
		batch.Transactions = append(batch.Transactions, index.Located{TxID: rec.TxID, Location: loc})
		edges = append(edges, rec.Edges()...)
		recs = append(recs, rec)
	}
	if err := p.store.AppendEdges(edges); err != nil {
		return fmt.Errorf("block %d: %w", block.Height, err)
	}

	batch.Checkpoint = &model.Checkpoint{
		Cursor:   p.store.Cursor(),
		Height:   block.Height,
		Hash:     block.Hash,
		HasBlock: true,
	}
	if err := p.index.Commit(batch); err != nil {
		return fmt.Errorf("%w: commit index for block %d: %w", model.ErrStorageWrite, block.Height, err)
	}
	written = len(recs)

	report.Blocks++
	report.Transactions += len(recs)
	report.Edges += len(edges)
	report.Duplicates += duplicates
	report.ResolvedInputs += resolved
	report.LastHeight = block.Height
	report.LastHash = block.Hash

	p.logger.Debug("block committed",
		zap.Uint64("height", block.Height),
		zap.String("hash", block.Hash),
		zap.Int("transactions", len(recs)),
		zap.Int("edges", len(edges)),
	)

	if mirror != nil {
		mirror.Write(ctx, recs, edges)
	}
	return nil
}

// admit runs the duplicate check for every transaction before anything is appended.
func (p *Pipeline) admit(block *model.Block, policy DuplicatePolicy) ([]model.Transaction, int, error) {
	seen := make(map[string]struct{}, len(block.Transactions))
	accepted := make([]model.Transaction, 0, len(block.Transactions))
	duplicates := 0

	for _, tx := range block.Transactions {
		_, dup := seen[tx.TxID]
		if !dup {
			stored, err := p.index.Contains(tx.TxID)
			if err != nil {
				return nil, 0, fmt.Errorf("check transaction %s: %w", tx.TxID, err)
			}
			dup = stored
		}
		if dup {
			if policy == RejectDuplicates {
				return nil, 0, fmt.Errorf("%w: %s in block %d", model.ErrDuplicateTransaction, tx.TxID, block.Height)
			}
			duplicates++
			p.logger.Warn("duplicate transaction skipped",
				zap.Uint64("height", block.Height),
				zap.String("txid", tx.TxID),
			)
			continue
		}
		seen[tx.TxID] = struct{}{}
		accepted = append(accepted, tx)
	}
	return accepted, duplicates, nil
}

// resolvePrevouts names the inputs the source left unresolved from the outputs of
// committed transactions. cache holds outputs already read for this block. An input
// whose previous output is not stored becomes model.UnknownAddress.
func (p *Pipeline) resolvePrevouts(tx model.Transaction, cache map[string][]model.Output) (model.Transaction, int, error) {
	var (
		inputs   []string
		resolved int
	)
	for i, in := range tx.Inputs {
		if in != "" && in != model.UnknownAddress {
			continue
		}
		op, ok := tx.Prevout(i)
		if !ok {
			continue
		}
		outputs, cached := cache[op.TxID]
		if !cached {
			var err error
			outputs, _, err = p.outputs.Outputs(op.TxID)
			if err != nil {
				return tx, 0, err
			}
			cache[op.TxID] = outputs
		}

		addr := model.UnknownAddress
		if int(op.Vout) < len(outputs) && outputs[op.Vout].Address != "" {
			addr = outputs[op.Vout].Address
			if addr != model.UnknownAddress {
				resolved++
			}
		}
		if inputs == nil {
			inputs = append([]string(nil), tx.Inputs...)
		}
		inputs[i] = addr
	}
	if inputs != nil {
		tx.Inputs = inputs
	}
	return tx, resolved, nil
}

// normalize substitutes sentinels so every record has at least one input
// and no empty address.
func normalize(tx model.Transaction) model.Transaction {
	out := model.Transaction{TxID: tx.TxID}
	if len(tx.Inputs) == 0 {
		out.Inputs = []string{model.CoinbaseAddress}
	} else {
		out.Inputs = make([]string, len(tx.Inputs))
		for i, in := range tx.Inputs {
			if in == "" {
				in = model.CoinbaseAddress
			}
			out.Inputs[i] = in
		}
	}
	out.Outputs = make([]model.Output, len(tx.Outputs))
	for i, o := range tx.Outputs {
		if o.Address == "" {
			o.Address = model.UnknownAddress
		}
		out.Outputs[i] = o
	}
	return out
}
