package bitcoin

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
)

// addressDecoder turns an output script into one address.
type addressDecoder struct {
	params *chaincfg.Params
}

func newAddressDecoder(network model.Network) (*addressDecoder, error) {
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return nil, err
	}
	return &addressDecoder{params: params}, nil
}

// decode returns the first address the script pays to, or model.UnknownAddress for
// scripts without a standard address (OP_RETURN, non-standard, malformed).
func (d *addressDecoder) decode(vout btcjson.Vout) string {
	if vout.ScriptPubKey.Address != "" {
		return vout.ScriptPubKey.Address
	}
	if len(vout.ScriptPubKey.Addresses) > 0 && vout.ScriptPubKey.Addresses[0] != "" {
		return vout.ScriptPubKey.Addresses[0]
	}
	if vout.ScriptPubKey.Hex == "" {
		return model.UnknownAddress
	}

	script, err := hex.DecodeString(vout.ScriptPubKey.Hex)
	if err != nil {
		return model.UnknownAddress
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(script, d.params)
	if err != nil || len(addrs) == 0 {
		return model.UnknownAddress
	}
	return addrs[0].EncodeAddress()
}

func chainParamsForNetwork(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", string(model.Mainnet), "bitcoin":
		return &chaincfg.MainNetParams, nil
	case string(model.Testnet), "testnet3":
		return &chaincfg.TestNet3Params, nil
	case string(model.Regtest):
		return &chaincfg.RegressionNetParams, nil
	case string(model.Signet):
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
