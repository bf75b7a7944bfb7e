package model

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// EventPart is one renderable fragment of a known event. The union is
// closed: every part carries a kind tag so downstream renderers can switch
// exhaustively. Order within KnownEvent.Parts defines left-to-right
// narrative rendering.
type EventPart interface {
	Kind() string
}

// AccountPart renders an account address.
type AccountPart struct {
	Address common.Address `json:"address"`
}

// ActionPart renders the verb of an event.
type ActionPart struct {
	Label string `json:"label"`
}

// AmountPart renders a token amount.
type AmountPart struct {
	Amount Amount `json:"amount"`
}

// DurationPart renders a span of seconds.
type DurationPart struct {
	Seconds uint64 `json:"seconds"`
}

// HexPart renders opaque bytes.
type HexPart struct {
	Bytes hexutil.Bytes `json:"bytes"`
}

// NumberPart renders a plain number, optionally scaled by decimals.
type NumberPart struct {
	Value    *big.Int `json:"value"`
	Decimals *uint8   `json:"decimals,omitempty"`
}

// TextPart renders literal connective text.
type TextPart struct {
	Text string `json:"text"`
}

// TickPart renders an order-book price tick.
type TickPart struct {
	Tick int16 `json:"tick"`
}

// TokenPart renders a token reference.
type TokenPart struct {
	Token  common.Address `json:"token"`
	Symbol string         `json:"symbol,omitempty"`
}

func (AccountPart) Kind() string  { return "account" }
func (ActionPart) Kind() string   { return "action" }
func (AmountPart) Kind() string   { return "amount" }
func (DurationPart) Kind() string { return "duration" }
func (HexPart) Kind() string      { return "hex" }
func (NumberPart) Kind() string   { return "number" }
func (TextPart) Kind() string     { return "text" }
func (TickPart) Kind() string     { return "tick" }
func (TokenPart) Kind() string    { return "token" }

// Account builds an AccountPart.
func Account(address common.Address) EventPart { return AccountPart{Address: address} }

// Action builds an ActionPart.
func Action(label string) EventPart { return ActionPart{Label: label} }

// AmountOf builds an AmountPart.
func AmountOf(amount Amount) EventPart { return AmountPart{Amount: amount} }

// Duration builds a DurationPart.
func Duration(seconds uint64) EventPart { return DurationPart{Seconds: seconds} }

// Hex builds a HexPart.
func Hex(data []byte) EventPart { return HexPart{Bytes: data} }

// Number builds a NumberPart without decimals.
func Number(value *big.Int) EventPart { return NumberPart{Value: value} }

// Text builds a TextPart.
func Text(text string) EventPart { return TextPart{Text: text} }

// Tick builds a TickPart.
func Tick(tick int16) EventPart { return TickPart{Tick: tick} }

// Token builds a TokenPart.
func Token(token common.Address, symbol string) EventPart {
	return TokenPart{Token: token, Symbol: symbol}
}

// MarshalPart encodes a part with its kind discriminator.
func MarshalPart(part EventPart) ([]byte, error) {
	type tagged struct {
		Kind string    `json:"kind"`
		Part EventPart `json:"part"`
	}
	return json.Marshal(tagged{Kind: part.Kind(), Part: part})
}

// partList exists so KnownEvent can marshal its parts with kind tags.
type partList []EventPart

func (p partList) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(p))
	for _, part := range p {
		encoded, err := MarshalPart(part)
		if err != nil {
			return nil, err
		}
		out = append(out, encoded)
	}
	return json.Marshal(out)
}
