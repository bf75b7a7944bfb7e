package model

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Call is one call frame of a transaction: the top-level call plus any
// nested batched sub-calls. Only the target and raw input matter here;
// execution results are not part of the model.
type Call struct {
	To    *common.Address `json:"to,omitempty"`
	Input hexutil.Bytes   `json:"input,omitempty"`
	Calls []Call          `json:"calls,omitempty"`
}
