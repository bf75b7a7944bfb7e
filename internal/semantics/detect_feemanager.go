package semantics

import "eventScope/internal/model"

// detectFeeManager classifies fee token selection events.
func (e *Engine) detectFeeManager(log model.DecodedLog, in Input, _ map[string]string) *outcome {
	switch log.Name {
	case model.EventUserTokenSet:
		user, okUser := log.AddressArg("user")
		token, okToken := log.AddressArg("token")
		if !okUser || !okToken {
			return nil
		}
		return eventOutcome(model.KnownFeeToken,
			model.Action("Set Fee Token"),
			model.Token(token, symbolOf(token, in.Metadata)),
			model.Text("for"),
			model.Account(user),
		)

	case model.EventValidatorTokenSet:
		token, ok := log.AddressArg("token")
		if !ok {
			return nil
		}
		return eventOutcome(model.KnownFeeToken,
			model.Action("Set Validator Token"),
			model.Token(token, symbolOf(token, in.Metadata)),
		)
	}
	return nil
}
