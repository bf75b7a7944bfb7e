package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Amount is N units of token T, optionally enriched with decimals and a
// symbol. Missing enrichment is a renderable state, not an error.
type Amount struct {
	Value    *big.Int       `json:"value"`
	Token    common.Address `json:"token"`
	Decimals *uint8         `json:"decimals,omitempty"`
	Symbol   string         `json:"symbol,omitempty"`
}

// MakeAmount builds an Amount, enriching it via the lookup when one is
// provided and it knows the token.
func MakeAmount(token common.Address, value *big.Int, lookup MetadataFunc) Amount {
	amount := Amount{Value: value, Token: token}
	if lookup == nil {
		return amount
	}
	meta, ok := lookup(token)
	if !ok {
		return amount
	}
	decimals := meta.Decimals
	amount.Decimals = &decimals
	amount.Symbol = meta.Symbol
	return amount
}
