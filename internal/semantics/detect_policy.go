package semantics

import "eventScope/internal/model"

// detectPolicyRegistry classifies transfer-policy registry events.
func (e *Engine) detectPolicyRegistry(log model.DecodedLog, _ Input, _ map[string]string) *outcome {
	switch log.Name {
	case model.EventWhitelistUpdated:
		return listUpdate(log, "Whitelist Add", "Whitelist Remove")

	case model.EventBlacklistUpdated:
		return listUpdate(log, "Blacklist Add", "Blacklist Remove")

	case model.EventPolicyAdminUpdated:
		admin, ok := log.AddressArg("admin")
		if !ok {
			return nil
		}
		return eventOutcome(model.KnownPolicy,
			model.Action("Set Policy Admin"),
			model.Account(admin),
		)

	case model.EventPolicyCreated:
		policyID, ok := log.BigIntArg("policyId")
		if !ok {
			return nil
		}
		return eventOutcome(model.KnownPolicy,
			model.Action("Create Policy"),
			model.Number(policyID),
		)
	}
	return nil
}

func listUpdate(log model.DecodedLog, add, remove string) *outcome {
	account, okAccount := log.AddressArg("account")
	added, okAdded := log.BoolArg("added")
	if !okAccount || !okAdded {
		return nil
	}
	action := remove
	if added {
		action = add
	}
	return eventOutcome(model.KnownPolicy, model.Action(action), model.Account(account))
}
