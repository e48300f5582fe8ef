// Package bitcoin is the chain-source collaborator for Bitcoin nodes. It turns
// verbose RPC blocks into model blocks whose addresses are already resolved.
package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"github.com/goodnatureofminers/blockinsight7000-forensics/pkg/safe"
)

// BtcToSatoshis converts BTC amount to satoshis with overflow checks.
func BtcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}

// convertOutputs maps every vout, in order, to an (address, satoshis) pair.
func convertOutputs(vouts []btcjson.Vout, decoder *addressDecoder) ([]model.Output, error) {
	outputs := make([]model.Output, 0, len(vouts))
	for _, vout := range vouts {
		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			return nil, fmt.Errorf("vout %d value: %w", vout.N, err)
		}
		outputs = append(outputs, model.Output{
			Address: decoder.decode(vout),
			Value:   value,
		})
	}
	return outputs, nil
}
