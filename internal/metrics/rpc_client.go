package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"github.com/prometheus/client_golang/prometheus"
)

var rpcClientOperations = newOperationVecs("rpc_client", "node RPC", prometheus.DefBuckets, "operation", "coin", "network")

// RPCClient tracks metrics for RPC calls to blockchain nodes.
type RPCClient struct {
	coin    string
	network string
}

// NewRPCClient constructs a metrics collector for RPC calls.
func NewRPCClient(coin model.Coin, network model.Network) *RPCClient {
	return &RPCClient{coin: orUnknown(string(coin)), network: orUnknown(string(network))}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	rpcClientOperations.observe(err, started, operation, m.coin, m.network)
}
