package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
)

var clickhouseRepositoryOperations = newOperationVecs(
	"clickhouse_repository",
	"mirror repository",
	[]float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	"operation", "coin", "network",
)

// ClickhouseRepository tracks metrics for the ClickHouse mirror.
type ClickhouseRepository struct{}

func NewClickhouseRepository() *ClickhouseRepository {
	return &ClickhouseRepository{}
}

// Observe records duration and status of a repository operation.
func (m ClickhouseRepository) Observe(operation string, coin model.Coin, network model.Network, err error, started time.Time) {
	clickhouseRepositoryOperations.observe(err, started, operation, orUnknown(string(coin)), orUnknown(string(network)))
}
