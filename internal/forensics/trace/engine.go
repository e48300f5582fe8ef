// Package trace implements the Traversal Engine: a bounded breadth-first walk over
// "input sent funds to output in tx" relations resolved through the Address Index.
package trace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"github.com/goodnatureofminers/blockinsight7000-forensics/pkg/workerpool"
	"go.uber.org/zap"
)

const defaultReadWorkers = 8

// Engine is read-only and safe for concurrent Trace calls, including while
// ingestion appends.
type Engine struct {
	index       AddressIndex
	records     RecordReader
	metrics     Metrics
	readWorkers int
	logger      *zap.Logger
}

func NewEngine(idx AddressIndex, records RecordReader, metrics Metrics, readWorkers int, logger *zap.Logger) *Engine {
	if readWorkers <= 0 {
		readWorkers = defaultReadWorkers
	}
	return &Engine{
		index:       idx,
		records:     records,
		metrics:     metrics,
		readWorkers: readWorkers,
		logger:      logger,
	}
}

type frontierItem struct {
	address string
	depth   int
}

// Trace returns every transfer reachable from seed. An address is expanded at most
// once, at the depth it was first dequeued, and only when that depth is within
// maxDepth; expanding it adds the edges of transactions where it is an input.
// Edges leaving the other inputs of such a transaction are added only when those
// inputs are expanded themselves.
// Lookup and read failures are logged and skipped, so only invalid arguments and
// context errors are returned.
func (e *Engine) Trace(ctx context.Context, seed string, maxDepth int) (g *model.TraceGraph, err error) {
	started := time.Now()
	defer func() {
		nodes, edges := 0, 0
		if g != nil {
			nodes, edges = len(g.Nodes()), len(g.Edges())
		}
		e.observeTrace(err, maxDepth, nodes, edges, started)
	}()

	if seed == "" {
		return nil, fmt.Errorf("%w: empty seed address", model.ErrInvalidArgument)
	}
	if maxDepth < 0 {
		return nil, fmt.Errorf("%w: negative depth %d", model.ErrInvalidArgument, maxDepth)
	}

	graph := model.NewTraceGraph()
	graph.AddNode(seed)

	visited := make(map[string]struct{})
	queue := []frontierItem{{address: seed, depth: 0}}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item := queue[0]
		queue = queue[1:]
		if _, ok := visited[item.address]; ok || item.depth > maxDepth {
			continue
		}
		visited[item.address] = struct{}{}

		recs, err := e.transactions(ctx, item.address)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			if !spends(rec, item.address) {
				continue
			}
			for _, out := range rec.Outputs {
				graph.AddEdge(item.address, out.Address, rec.TxID)
				if item.depth < maxDepth {
					if _, ok := visited[out.Address]; !ok {
						queue = append(queue, frontierItem{address: out.Address, depth: item.depth + 1})
					}
				}
			}
		}
	}

	e.logger.Debug("trace finished",
		zap.String("seed", seed),
		zap.Int("max_depth", maxDepth),
		zap.Int("visited", len(visited)),
	)
	return graph, nil
}

// transactions resolves the records an address is party to, in index order.
func (e *Engine) transactions(ctx context.Context, address string) ([]model.TransactionRecord, error) {
	locs, err := e.index.Lookup(address)
	if err != nil {
		e.logger.Warn("lookup failed, address left unexpanded", zap.String("address", address), zap.Error(err))
		e.observeSkip(err)
		return nil, nil
	}

	type readResult struct {
		rec model.TransactionRecord
		ok  bool
	}
	results, err := workerpool.Map(ctx, e.readWorkers, locs, func(_ context.Context, loc model.Location) (readResult, error) {
		rec, err := e.records.ReadTransaction(loc)
		if err != nil {
			lvl := e.logger.Error
			if errors.Is(err, model.ErrNotFound) {
				lvl = e.logger.Warn
			}
			lvl("index entry skipped",
				zap.String("address", address),
				zap.Stringer("location", loc),
				zap.Error(err),
			)
			e.observeSkip(err)
			return readResult{}, nil
		}
		return readResult{rec: rec, ok: true}, nil
	})
	if err != nil {
		return nil, err
	}

	recs := make([]model.TransactionRecord, 0, len(results))
	for _, r := range results {
		if r.ok {
			recs = append(recs, r.rec)
		}
	}
	return recs, nil
}

func spends(rec model.TransactionRecord, address string) bool {
	for _, in := range rec.Inputs {
		if in == address {
			return true
		}
	}
	return false
}

func (e *Engine) observeTrace(err error, maxDepth, nodes, edges int, started time.Time) {
	if e.metrics == nil {
		return
	}
	e.metrics.ObserveTrace(err, maxDepth, nodes, edges, started)
}

func (e *Engine) observeSkip(err error) {
	if e.metrics == nil {
		return
	}
	e.metrics.ObserveSkippedRead(err)
}
