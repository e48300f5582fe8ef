// Package model defines domain models for address forensics.
package model

// Block is a block as delivered by a chain source. It is consumed once per
// ingestion step and never persisted as its own entity.
type Block struct {
	Hash         string
	Height       uint64
	Time         int64
	NextHash     string
	Transactions []Transaction
}

// Transaction carries the resolved parties of a transaction.
// Inputs and output addresses are already resolved; unresolvable ones hold a sentinel.
type Transaction struct {
	TxID    string
	Inputs  []string
	Outputs []Output
	// Prevouts, when set, runs parallel to Inputs and names the output each input
	// spends. Inputs the source could not name are resolved against stored records.
	Prevouts []Outpoint
}

// Outpoint references output Vout of transaction TxID. The zero value references nothing.
type Outpoint struct {
	TxID string
	Vout uint32
}

// Prevout returns the outpoint spent by input i, if known.
func (t Transaction) Prevout(i int) (Outpoint, bool) {
	if i < 0 || i >= len(t.Prevouts) || t.Prevouts[i].TxID == "" {
		return Outpoint{}, false
	}
	return t.Prevouts[i], true
}

// Output is a resolved (address, value) pair. Value is in satoshis.
type Output struct {
	Address string `json:"address"`
	Value   uint64 `json:"value"`
}

const (
	// CoinbaseAddress stands in for an input that has no resolvable address.
	CoinbaseAddress = "coinbase"
	// UnknownAddress stands in for a script that does not resolve to a standard address.
	UnknownAddress = "unknown"
)
