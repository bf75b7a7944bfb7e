package tokenmeta

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"eventScope/internal/chain"
	"eventScope/internal/model"
)

// Resolver builds the synchronous metadata lookup the engine is handed.
// All network work happens here, before classification: a static table is
// consulted first, then the cache, then ERC20 calls. The returned lookup
// itself never blocks on anything but the RPC it wraps; callers who want a
// fully offline engine pass only a static table.
type Resolver struct {
	client *chain.Client
	cache  *Cache
	static map[common.Address]model.TokenMeta
	logger *zap.Logger
}

func NewResolver(client *chain.Client, static map[common.Address]model.TokenMeta, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		client: client,
		cache:  NewCache(),
		static: static,
		logger: logger,
	}
}

// Lookup returns a metadata function bound to the given context. A failed
// fetch is a miss, never an error; the engine renders raw integers.
func (r *Resolver) Lookup(ctx context.Context) model.MetadataFunc {
	return func(token common.Address) (model.TokenMeta, bool) {
		if meta, ok := r.static[token]; ok {
			return meta, true
		}
		if meta, ok := r.cache.Get(token); ok {
			return meta, true
		}
		if r.client == nil {
			return model.TokenMeta{}, false
		}
		meta, err := fetchTokenMeta(ctx, r.client, token)
		if err != nil {
			r.logger.Debug("token metadata fetch failed",
				zap.String("token", token.Hex()),
				zap.Error(err),
			)
			return model.TokenMeta{}, false
		}
		r.cache.Set(token, meta)
		return meta, true
	}
}

// fetchTokenMeta loads decimals and symbol via ERC20 calls, trying the
// bytes32 symbol variant when the string one fails.
func fetchTokenMeta(ctx context.Context, client *chain.Client, token common.Address) (model.TokenMeta, error) {
	stringABI, err := erc20ABIStringInstance()
	if err != nil {
		return model.TokenMeta{}, fmt.Errorf("parse erc20 string abi: %w", err)
	}
	bytes32ABI, err := erc20ABIBytes32Instance()
	if err != nil {
		return model.TokenMeta{}, fmt.Errorf("parse erc20 bytes32 abi: %w", err)
	}

	call := func(method string, parsed abi.ABI) ([]interface{}, error) {
		data, err := parsed.Pack(method)
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", method, err)
		}
		msg := ethereum.CallMsg{To: &token, Data: data}
		resp, err := client.CallContract(ctx, msg, nil)
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", method, err)
		}
		values, err := parsed.Unpack(method, resp)
		if err != nil {
			return nil, fmt.Errorf("unpack %s: %w", method, err)
		}
		return values, nil
	}

	var meta model.TokenMeta
	values, err := call("decimals", stringABI)
	if err != nil {
		return model.TokenMeta{}, err
	}
	decimals, ok := values[0].(uint8)
	if !ok {
		return model.TokenMeta{}, fmt.Errorf("unexpected decimals type %T", values[0])
	}
	meta.Decimals = decimals

	if values, err := call("symbol", stringABI); err == nil {
		if symbol, ok := values[0].(string); ok {
			meta.Symbol = symbol
		}
	} else if values, err := call("symbol", bytes32ABI); err == nil {
		if symbol, ok := bytes32ToString(values[0]); ok {
			meta.Symbol = symbol
		}
	}
	meta.Currency = meta.Symbol

	return meta, nil
}

func bytes32ToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case [32]byte:
		return string(bytes.TrimRight(v[:], "\x00")), true
	case []byte:
		return string(bytes.TrimRight(v, "\x00")), true
	default:
		return "", false
	}
}
