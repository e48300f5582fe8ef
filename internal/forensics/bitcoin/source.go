package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"github.com/goodnatureofminers/blockinsight7000-forensics/pkg/safe"
	"go.uber.org/zap"
)

// Config selects the network and how input addresses are resolved. An input is
// named from the outputs of its own block, then from Stored, then from the node
// when ResolveInputs is set. Inputs left over are model.UnknownAddress and keep
// their outpoint in model.Transaction.Prevouts.
type Config struct {
	Network model.Network
	// ResolveInputs fetches previous outputs from the node. It needs txindex.
	ResolveInputs bool
	// Stored, when set, serves outputs of transactions already ingested.
	Stored StoredOutputs
}

// Source serves blocks from a Bitcoin node.
type Source struct {
	rpc           RPCClient
	decoder       *addressDecoder
	stored        StoredOutputs
	resolveInputs bool
	logger        *zap.Logger
}

func NewSource(rpc RPCClient, cfg Config, logger *zap.Logger) (*Source, error) {
	decoder, err := newAddressDecoder(cfg.Network)
	if err != nil {
		return nil, err
	}
	return &Source{
		rpc:           rpc,
		decoder:       decoder,
		stored:        cfg.Stored,
		resolveInputs: cfg.ResolveInputs,
		logger:        logger,
	}, nil
}

// ChainHeight returns the height of the node's best block.
func (s *Source) ChainHeight(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// BlockHashAtHeight returns the hash of the main-chain block at height.
func (s *Source) BlockHashAtHeight(ctx context.Context, height uint64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h, err := safe.Int64(height)
	if err != nil {
		return "", fmt.Errorf("block height %d exceeds rpc limit: %w", height, err)
	}
	hash, err := s.rpc.GetBlockHash(h)
	if err != nil {
		return "", fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	return hash.String(), nil
}

// Block fetches a block with its transactions and resolves every address.
func (s *Source) Block(ctx context.Context, hash string) (*model.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, err := chainhash.NewHashFromStr(hash)
	if err != nil {
		return nil, fmt.Errorf("parse block hash %q: %w", hash, err)
	}
	src, err := s.rpc.GetBlockVerboseTx(h)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return nil, fmt.Errorf("block %s height: %w", hash, err)
	}

	block := &model.Block{
		Hash:         src.Hash,
		Height:       height,
		Time:         src.Time,
		NextHash:     src.NextHash,
		Transactions: make([]model.Transaction, 0, len(src.Tx)),
	}
	prevouts := newPrevoutResolver(s.rpc, s.stored, s.decoder, s.logger)
	for _, tx := range src.Tx {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outputs, err := convertOutputs(tx.Vout, s.decoder)
		if err != nil {
			return nil, fmt.Errorf("tx %s: %w", tx.Txid, err)
		}
		inputs, spent, err := s.inputs(prevouts, tx)
		if err != nil {
			return nil, fmt.Errorf("tx %s: %w", tx.Txid, err)
		}
		block.Transactions = append(block.Transactions, model.Transaction{
			TxID:     tx.Txid,
			Inputs:   inputs,
			Outputs:  outputs,
			Prevouts: spent,
		})
		prevouts.add(tx.Txid, outputs)
	}
	return block, nil
}

// inputs names every input of tx. spent is nil for a coinbase transaction.
func (s *Source) inputs(prevouts *prevoutResolver, tx btcjson.TxRawResult) ([]string, []model.Outpoint, error) {
	inputs := make([]string, 0, len(tx.Vin))
	var spent []model.Outpoint
	for i, vin := range tx.Vin {
		if vin.Coinbase != "" {
			inputs = append(inputs, model.CoinbaseAddress)
			continue
		}
		addr, err := prevouts.resolve(vin.Txid, vin.Vout, s.resolveInputs)
		if err != nil {
			return nil, nil, err
		}
		inputs = append(inputs, addr)
		if spent == nil {
			spent = make([]model.Outpoint, len(tx.Vin))
		}
		spent[i] = model.Outpoint{TxID: vin.Txid, Vout: vin.Vout}
	}
	return inputs, spent, nil
}

// prevoutResolver names the address behind a previous output. Outputs of the block
// being converted are registered as it goes; others are looked up once per block.
type prevoutResolver struct {
	rpc     RPCClient
	stored  StoredOutputs
	decoder *addressDecoder
	logger  *zap.Logger
	outputs map[string][]string
}

func newPrevoutResolver(rpc RPCClient, stored StoredOutputs, decoder *addressDecoder, logger *zap.Logger) *prevoutResolver {
	return &prevoutResolver{
		rpc:     rpc,
		stored:  stored,
		decoder: decoder,
		logger:  logger,
		outputs: make(map[string][]string),
	}
}

func (r *prevoutResolver) add(txid string, outputs []model.Output) {
	r.outputs[txid] = addresses(outputs)
}

// resolve looks in the block, then in stored outputs; node lookups happen only when fetch is set.
func (r *prevoutResolver) resolve(txid string, vout uint32, fetch bool) (string, error) {
	addrs, ok := r.outputs[txid]
	if !ok {
		var err error
		addrs, err = r.lookup(txid, fetch)
		if err != nil {
			return "", err
		}
		r.outputs[txid] = addrs
	}
	if int(vout) >= len(addrs) {
		return model.UnknownAddress, nil
	}
	return addrs[vout], nil
}

func (r *prevoutResolver) lookup(txid string, fetch bool) ([]string, error) {
	if r.stored != nil {
		outputs, found, err := r.stored.Outputs(txid)
		switch {
		case err != nil:
			r.logger.Warn("stored prevout lookup failed", zap.String("txid", txid), zap.Error(err))
		case found:
			return addresses(outputs), nil
		}
	}
	if !fetch {
		return nil, nil
	}
	return r.fetch(txid)
}

func addresses(outputs []model.Output) []string {
	addrs := make([]string, len(outputs))
	for i, o := range outputs {
		addrs[i] = o.Address
	}
	return addrs
}

func (r *prevoutResolver) fetch(txid string) ([]string, error) {
	h, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		r.logger.Debug("unparseable prevout txid", zap.String("txid", txid), zap.Error(err))
		return nil, nil
	}
	raw, err := r.rpc.GetRawTransactionVerbose(h)
	if err != nil {
		var rpcErr *btcjson.RPCError
		if errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCNoTxInfo {
			// pruned or no txindex: the address stays unknown
			r.logger.Debug("prevout not available", zap.String("txid", txid))
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction %s: %w", txid, err)
	}

	addrs := make([]string, len(raw.Vout))
	for i, vout := range raw.Vout {
		addrs[i] = r.decoder.decode(vout)
	}
	return addrs, nil
}
