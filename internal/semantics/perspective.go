package semantics

import (
	"github.com/ethereum/go-ethereum/common"

	"eventScope/internal/model"
)

// ViewFrom re-describes a send event from the viewpoint of the given
// account: viewed by the recipient, "Send X to B" becomes "Receive X from
// A". The rewrite is pure and idempotent; the original event is never
// mutated. Events without an adjustable perspective pass through unchanged.
func ViewFrom(event model.KnownEvent, account common.Address) model.KnownEvent {
	if event.Type != model.KnownSend || event.Meta == nil {
		return event
	}
	if event.Meta.To == nil || event.Meta.From == nil || *event.Meta.To != account {
		return event
	}

	amount, ok := findAmountPart(event.Parts)
	if !ok {
		return event
	}
	rewritten := event
	rewritten.Parts = []model.EventPart{
		model.Action("Receive"),
		amount,
		model.Text("from"),
		model.Account(*event.Meta.From),
	}
	return rewritten
}

func findAmountPart(parts []model.EventPart) (model.EventPart, bool) {
	for _, part := range parts {
		if _, ok := part.(model.AmountPart); ok {
			return part, true
		}
	}
	return nil, false
}
