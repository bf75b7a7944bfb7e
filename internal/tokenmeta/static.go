package tokenmeta

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"

	"eventScope/internal/model"
)

// LoadStatic reads a token metadata table from a JSON file mapping token
// addresses to metadata. Invalid addresses fail loudly; a wrong table
// would price the receipt in the wrong currency.
func LoadStatic(path string) (map[common.Address]model.TokenMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read token metadata: %w", err)
	}

	var raw map[string]model.TokenMeta
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse token metadata: %w", err)
	}

	table := make(map[common.Address]model.TokenMeta, len(raw))
	for key, meta := range raw {
		if !common.IsHexAddress(key) {
			return nil, fmt.Errorf("invalid token address: %s", key)
		}
		table[common.HexToAddress(key)] = meta
	}
	return table, nil
}

// TableFunc wraps a static table as a metadata lookup.
func TableFunc(table map[common.Address]model.TokenMeta) model.MetadataFunc {
	return func(token common.Address) (model.TokenMeta, bool) {
		meta, ok := table[token]
		return meta, ok
	}
}
