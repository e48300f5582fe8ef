package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	storeOperations = newOperationVecs("record_store", "record store", prometheus.ExponentialBuckets(0.0001, 4, 10), "operation")
	indexOperations = newOperationVecs("address_index", "address index", prometheus.ExponentialBuckets(0.0001, 4, 10), "operation")
)

// Store tracks appends and reads of the record store.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (Store) Observe(operation string, err error, started time.Time) {
	storeOperations.observe(err, started, operation)
}

// Index tracks commits and lookups of the address index.
type Index struct{}

func NewIndex() *Index {
	return &Index{}
}

func (Index) Observe(operation string, err error, started time.Time) {
	indexOperations.observe(err, started, operation)
}
