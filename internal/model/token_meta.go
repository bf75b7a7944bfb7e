package model

import "github.com/ethereum/go-ethereum/common"

// TokenMeta describes a token for display purposes.
type TokenMeta struct {
	Decimals uint8  `json:"decimals"`
	Symbol   string `json:"symbol,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// MetadataFunc is a pre-resolved, synchronous token metadata lookup.
// A miss is a valid answer; the engine degrades to raw-integer rendering.
type MetadataFunc func(token common.Address) (TokenMeta, bool)
