package model

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// Known event type tags.
const (
	KnownSend            = "send"
	KnownMint            = "mint"
	KnownBurn            = "burn"
	KnownSwap            = "swap"
	KnownFee             = "fee"
	KnownApprove         = "approve"
	KnownRoleUpdate      = "role update"
	KnownPause           = "pause"
	KnownSupplyCap       = "supply cap"
	KnownReward          = "reward"
	KnownBurnBlocked     = "burn blocked"
	KnownTransferPolicy  = "transfer policy"
	KnownQuoteToken      = "quote token"
	KnownRoleAdmin       = "role admin"
	KnownTokenCreated    = "token created"
	KnownOrder           = "order"
	KnownOrderFill       = "order fill"
	KnownOrderCancel     = "order cancel"
	KnownPairCreated     = "pair created"
	KnownPolicy          = "policy"
	KnownFeeToken        = "fee token"
	KnownNonce           = "nonce"
	KnownAddLiquidity    = "add liquidity"
	KnownRemoveLiquidity = "remove liquidity"
	KnownPoolSwap        = "pool swap"
)

// NoteField is one labeled fragment of a structured note.
type NoteField struct {
	Label string    `json:"label"`
	Part  EventPart `json:"part"`
}

// Note annotates a known event with free text or labeled fragments.
type Note struct {
	Text   string      `json:"text,omitempty"`
	Fields []NoteField `json:"fields,omitempty"`
}

// EventMeta records the transfer endpoints for events whose perspective can
// be re-derived by a downstream viewer (send vs. receive).
type EventMeta struct {
	From *common.Address `json:"from,omitempty"`
	To   *common.Address `json:"to,omitempty"`
}

// KnownEvent is a classified, human-narratable representation of one or
// more raw logs. Immutable once produced.
type KnownEvent struct {
	Type  string      `json:"type"`
	Parts []EventPart `json:"parts"`
	Note  *Note       `json:"note,omitempty"`
	Meta  *EventMeta  `json:"meta,omitempty"`
}

// MarshalJSON tags each part with its kind so the union survives encoding.
func (e KnownEvent) MarshalJSON() ([]byte, error) {
	type alias struct {
		Type  string     `json:"type"`
		Parts partList   `json:"parts"`
		Note  *Note      `json:"note,omitempty"`
		Meta  *EventMeta `json:"meta,omitempty"`
	}
	return json.Marshal(alias{Type: e.Type, Parts: partList(e.Parts), Note: e.Note, Meta: e.Meta})
}

// FeeTransfer is a detected fee payment that did not map to a richer
// semantic event. Collected internally; never surfaced directly.
type FeeTransfer struct {
	Amount Amount
	Payer  common.Address
}
