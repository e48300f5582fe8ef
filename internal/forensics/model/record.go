package model

import "fmt"

// Location identifies a record inside a named append-only log.
type Location struct {
	Log    string `json:"log"`
	Offset int64  `json:"offset"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s@%d", l.Log, l.Offset)
}

// TransactionRecord is the persisted, immutable form of a transaction.
type TransactionRecord struct {
	BlockHash   string   `json:"block_hash"`
	TxID        string   `json:"txid"`
	BlockHeight uint64   `json:"block_height"`
	Timestamp   int64    `json:"timestamp"`
	Inputs      []string `json:"inputs"`
	Outputs     []Output `json:"outputs"`
}

// EdgeRecord is one (input, output) pair of a transaction.
type EdgeRecord struct {
	Input     string `json:"input"`
	Output    string `json:"output"`
	TxID      string `json:"txid"`
	BlockHash string `json:"block_hash"`
}

// NewTransactionRecord builds the record stored for tx included in block.
func NewTransactionRecord(block *Block, tx Transaction) TransactionRecord {
	return TransactionRecord{
		BlockHash:   block.Hash,
		TxID:        tx.TxID,
		BlockHeight: block.Height,
		Timestamp:   block.Time,
		Inputs:      append([]string(nil), tx.Inputs...),
		Outputs:     append([]Output(nil), tx.Outputs...),
	}
}

// Edges returns the full cross product of inputs and outputs.
func (r TransactionRecord) Edges() []EdgeRecord {
	edges := make([]EdgeRecord, 0, len(r.Inputs)*len(r.Outputs))
	for _, in := range r.Inputs {
		for _, out := range r.Outputs {
			edges = append(edges, EdgeRecord{
				Input:     in,
				Output:    out.Address,
				TxID:      r.TxID,
				BlockHash: r.BlockHash,
			})
		}
	}
	return edges
}

// Addresses returns every distinct address of the record, inputs first, in order of appearance.
func (r TransactionRecord) Addresses() []string {
	seen := make(map[string]struct{}, len(r.Inputs)+len(r.Outputs))
	addrs := make([]string, 0, len(r.Inputs)+len(r.Outputs))
	add := func(a string) {
		if _, ok := seen[a]; ok {
			return
		}
		seen[a] = struct{}{}
		addrs = append(addrs, a)
	}
	for _, in := range r.Inputs {
		add(in)
	}
	for _, out := range r.Outputs {
		add(out.Address)
	}
	return addrs
}

// HasAddress reports whether address is an input or output party of the record.
func (r TransactionRecord) HasAddress(address string) bool {
	for _, in := range r.Inputs {
		if in == address {
			return true
		}
	}
	for _, out := range r.Outputs {
		if out.Address == address {
			return true
		}
	}
	return false
}

// Cursor holds the end offsets of the transaction and edge logs.
type Cursor struct {
	TransactionOffset int64 `json:"transaction_offset"`
	EdgeOffset        int64 `json:"edge_offset"`
}

// Checkpoint is the last state committed to the index.
type Checkpoint struct {
	Cursor
	Height uint64 `json:"height"`
	Hash   string `json:"hash"`
	// HasBlock is set once Height and Hash describe an ingested block.
	HasBlock bool `json:"has_block"`
}
