package semantics

import "eventScope/internal/model"

// detectNonce classifies account-key bookkeeping events.
func (e *Engine) detectNonce(log model.DecodedLog, _ Input, _ map[string]string) *outcome {
	switch log.Name {
	case model.EventNonceIncremented:
		nonce, ok := log.BigIntArg("nonce")
		if !ok {
			return nil
		}
		return eventOutcome(model.KnownNonce,
			model.Action("Increment Nonce"),
			model.Number(nonce),
		)

	case model.EventActiveKeyCountChanged:
		count, ok := log.BigIntArg("count")
		if !ok {
			return nil
		}
		return eventOutcome(model.KnownNonce,
			model.Action("Update Active Keys"),
			model.Number(count),
		)
	}
	return nil
}
