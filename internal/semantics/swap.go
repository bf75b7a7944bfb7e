package semantics

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"eventScope/internal/model"
)

// A swap never appears as one log: it is an entry transfer into the
// exchange followed by an exit transfer out of it. matchSwaps fuses such
// pairs greedily, first match wins, and marks both legs consumed so the
// per-family detectors skip them.
//
// The pairing is deliberately not globally optimal: with more than one
// counter-leg per entry transfer the first exit wins. Callers rely on that
// documented behavior.

type transferLeg struct {
	index  int
	from   common.Address
	to     common.Address
	amount *big.Int
	token  common.Address
}

func (e *Engine) matchSwaps(logs []model.DecodedLog, lookup model.MetadataFunc) ([]model.KnownEvent, map[int]bool) {
	legs := make([]transferLeg, 0, len(logs))
	for i, log := range logs {
		if log.Name != model.EventTransfer && log.Name != model.EventTransferWithMemo {
			continue
		}
		from, okFrom := log.AddressArg("from")
		to, okTo := log.AddressArg("to")
		amount, okAmount := log.BigIntArg("amount")
		if !okFrom || !okTo || !okAmount {
			continue
		}
		legs = append(legs, transferLeg{index: i, from: from, to: to, amount: amount, token: log.Address})
	}

	consumed := make(map[int]bool)
	var events []model.KnownEvent
	for i, entry := range legs {
		if consumed[entry.index] || entry.to != e.cfg.Exchange {
			continue
		}
		for _, exit := range legs[i+1:] {
			if consumed[exit.index] || exit.from != e.cfg.Exchange {
				continue
			}
			events = append(events, model.KnownEvent{
				Type: model.KnownSwap,
				Parts: []model.EventPart{
					model.Action("Swap"),
					model.AmountOf(model.MakeAmount(entry.token, entry.amount, lookup)),
					model.Text("for"),
					model.AmountOf(model.MakeAmount(exit.token, exit.amount, lookup)),
				},
			})
			consumed[entry.index] = true
			consumed[exit.index] = true
			break
		}
	}
	return events, consumed
}
