package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Price is the signed monetary value of a line item. Negative means value
// left the receipt's sender.
type Price struct {
	Amount   *big.Int        `json:"amount"`
	Currency string          `json:"currency"`
	Decimals uint8           `json:"decimals"`
	Symbol   string          `json:"symbol,omitempty"`
	Token    *common.Address `json:"token,omitempty"`
}

// DetailRow is one supplementary line under a line item (memo text, order
// ids and the like).
type DetailRow struct {
	Left  string `json:"left"`
	Right string `json:"right,omitempty"`
}

// LineItemUI holds the rendered columns of a line item.
type LineItemUI struct {
	Left   string      `json:"left"`
	Right  string      `json:"right"`
	Bottom []DetailRow `json:"bottom,omitempty"`
}

// LineItem is one row of a monetary receipt.
type LineItem struct {
	SourceEvent *DecodedLog `json:"source_event,omitempty"`
	IsFee       bool        `json:"is_fee,omitempty"`
	Price       *Price      `json:"price,omitempty"`
	UI          LineItemUI  `json:"ui"`
}

// FeeBreakdownItem is one non-zero fee transfer, kept independent of the
// grouped fee totals.
type FeeBreakdownItem struct {
	Amount   *big.Int        `json:"amount"`
	Currency string          `json:"currency"`
	Decimals *uint8          `json:"decimals,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Token    common.Address  `json:"token"`
	Payer    *common.Address `json:"payer,omitempty"`
}

// ReceiptLineItems is the full monetary view of one transaction.
type ReceiptLineItems struct {
	Main         []LineItem         `json:"main"`
	FeeBreakdown []FeeBreakdownItem `json:"fee_breakdown"`
	FeeTotals    []LineItem         `json:"fee_totals"`
	Totals       []LineItem         `json:"totals"`
}
