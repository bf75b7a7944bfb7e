package model

import "github.com/ethereum/go-ethereum/common"

// TransactionRecord is one transaction as read from the input stream: the
// receipt's decoded logs plus the call tree and sender used for
// classification.
type TransactionRecord struct {
	TxHash string         `json:"tx_hash"`
	Sender common.Address `json:"sender"`
	Call   *Call          `json:"call,omitempty"`
	Logs   []DecodedLog   `json:"logs"`
}

// ClassifiedTransaction is the engine output for one transaction.
type ClassifiedTransaction struct {
	TxHash  string            `json:"tx_hash"`
	Sender  common.Address    `json:"sender"`
	Events  []KnownEvent      `json:"events"`
	Receipt *ReceiptLineItems `json:"receipt,omitempty"`
}
