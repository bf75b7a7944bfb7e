package semantics

import "eventScope/internal/model"

// detectFactory classifies token factory events.
func (e *Engine) detectFactory(log model.DecodedLog, in Input, _ map[string]string) *outcome {
	if log.Name != model.EventTokenCreated {
		return nil
	}
	token, ok := log.AddressArg("token")
	if !ok {
		return nil
	}
	symbol, _ := log.StringArg("symbol")
	if symbol == "" {
		symbol = symbolOf(token, in.Metadata)
	}
	return eventOutcome(model.KnownTokenCreated,
		model.Action("Create Token"),
		model.Token(token, symbol),
	)
}
