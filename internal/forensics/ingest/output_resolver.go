package ingest

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
)

// OutputResolver reads the outputs of committed transactions back from the record store.
// It holds no state and is safe for concurrent use.
type OutputResolver struct {
	store RecordStore
	index AddressIndex
}

// NewOutputResolver constructs an OutputResolver over committed records.
func NewOutputResolver(store RecordStore, idx AddressIndex) *OutputResolver {
	return &OutputResolver{store: store, index: idx}
}

// Outputs returns the ordered outputs of txid. found is false when txid has not been committed.
func (r *OutputResolver) Outputs(txid string) (outputs []model.Output, found bool, err error) {
	loc, found, err := r.index.Locate(txid)
	if err != nil {
		return nil, false, fmt.Errorf("locate transaction %s: %w", txid, err)
	}
	if !found {
		return nil, false, nil
	}
	rec, err := r.store.ReadTransaction(loc)
	if err != nil {
		return nil, false, fmt.Errorf("read transaction %s at %s: %w", txid, loc, err)
	}
	if rec.TxID != txid {
		return nil, false, fmt.Errorf("%w: %s holds %s, not %s", model.ErrNotFound, loc, rec.TxID, txid)
	}
	return rec.Outputs, true, nil
}

// OutputAddress returns the address of output vout of txid. found is false when txid
// has not been committed or has no such output.
func (r *OutputResolver) OutputAddress(txid string, vout uint32) (string, bool, error) {
	outputs, found, err := r.Outputs(txid)
	if err != nil || !found {
		return "", false, err
	}
	if int(vout) >= len(outputs) {
		return "", false, nil
	}
	return outputs[vout].Address, true, nil
}
