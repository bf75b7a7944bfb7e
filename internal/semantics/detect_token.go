package semantics

import (
	"github.com/ethereum/go-ethereum/common"

	"eventScope/internal/model"
)

// detectToken classifies events emitted by fungible token contracts. Tokens
// are an open set, so this detector is keyed purely on event shape; it runs
// first in the family order.
func (e *Engine) detectToken(log model.DecodedLog, in Input, memos map[string]string) *outcome {
	switch log.Name {
	case model.EventTransfer, model.EventTransferWithMemo:
		return e.detectTransfer(log, in)

	case model.EventMint:
		to, okTo := log.AddressArg("to")
		value, okValue := log.BigIntArg("amount")
		if !okTo || !okValue || log.Address == e.cfg.FeeManager {
			return nil
		}
		amount := model.MakeAmount(log.Address, value, in.Metadata)
		event := model.KnownEvent{
			Type: model.KnownMint,
			Parts: []model.EventPart{
				model.Action("Mint"),
				model.AmountOf(amount),
				model.Text("to"),
				model.Account(to),
			},
		}
		if memo, ok := memos[mintPairKey(log.Address, value.String(), to)]; ok {
			event.Note = &model.Note{Text: memo}
		}
		return &outcome{event: &event}

	case model.EventBurn:
		from, okFrom := log.AddressArg("from")
		value, okValue := log.BigIntArg("amount")
		if !okFrom || !okValue || log.Address == e.cfg.FeeManager {
			return nil
		}
		amount := model.MakeAmount(log.Address, value, in.Metadata)
		event := model.KnownEvent{
			Type: model.KnownBurn,
			Parts: []model.EventPart{
				model.Action("Burn"),
				model.AmountOf(amount),
				model.Text("from"),
				model.Account(from),
			},
		}
		if memo, ok := memos[burnPairKey(log.Address, value.String(), from)]; ok {
			event.Note = &model.Note{Text: memo}
		}
		return &outcome{event: &event}

	case model.EventApproval:
		spender, okSpender := log.AddressArg("spender")
		value, okValue := log.BigIntArg("amount")
		if !okSpender || !okValue {
			return nil
		}
		return eventOutcome(model.KnownApprove,
			model.Action("Approve"),
			model.Account(spender),
			model.Text("for"),
			model.AmountOf(model.MakeAmount(log.Address, value, in.Metadata)),
		)

	case model.EventRoleMembershipUpdated:
		role, okRole := log.HashArg("role")
		account, okAccount := log.AddressArg("account")
		granted, okGranted := log.BoolArg("granted")
		if !okRole || !okAccount || !okGranted {
			return nil
		}
		action, joiner := "Grant Role", "to"
		if !granted {
			action, joiner = "Revoke Role", "from"
		}
		return eventOutcome(model.KnownRoleUpdate,
			model.Action(action),
			model.Text(e.cfg.roleName(role)),
			model.Text(joiner),
			model.Account(account),
		)

	case model.EventPauseStateUpdate:
		paused, ok := log.BoolArg("paused")
		if !ok {
			return nil
		}
		action := "Pause Token"
		if !paused {
			action = "Unpause Token"
		}
		return eventOutcome(model.KnownPause, model.Action(action))

	case model.EventSupplyCapUpdate:
		newCap, ok := log.BigIntArg("newCap")
		if !ok {
			return nil
		}
		return eventOutcome(model.KnownSupplyCap,
			model.Action("Set Supply Cap"),
			model.AmountOf(model.MakeAmount(log.Address, newCap, in.Metadata)),
		)

	case model.EventRewardScheduled:
		value, okValue := log.BigIntArg("amount")
		duration, okDuration := log.Int64Arg("duration")
		if !okValue || !okDuration || duration < 0 {
			return nil
		}
		return eventOutcome(model.KnownReward,
			model.Action("Schedule Reward"),
			model.AmountOf(model.MakeAmount(log.Address, value, in.Metadata)),
			model.Text("over"),
			model.Duration(uint64(duration)),
		)

	case model.EventRewardCanceled:
		id, ok := log.HashArg("id")
		if !ok {
			return nil
		}
		return eventOutcome(model.KnownReward,
			model.Action("Cancel Reward"),
			model.Hex(id.Bytes()),
		)

	case model.EventRewardRecipientSet:
		recipient, ok := log.AddressArg("recipient")
		if !ok {
			return nil
		}
		return eventOutcome(model.KnownReward,
			model.Action("Set Reward Recipient"),
			model.Account(recipient),
		)

	case model.EventBurnBlocked:
		from, okFrom := log.AddressArg("from")
		value, okValue := log.BigIntArg("amount")
		if !okFrom || !okValue {
			return nil
		}
		return eventOutcome(model.KnownBurnBlocked,
			model.Action("Burn Blocked Funds"),
			model.AmountOf(model.MakeAmount(log.Address, value, in.Metadata)),
			model.Text("from"),
			model.Account(from),
		)

	case model.EventTransferPolicyUpdate:
		policyID, ok := log.BigIntArg("policyId")
		if !ok {
			return nil
		}
		return eventOutcome(model.KnownTransferPolicy,
			model.Action("Update Transfer Policy"),
			model.Number(policyID),
		)

	case model.EventNextQuoteTokenSet:
		token, ok := log.AddressArg("token")
		if !ok {
			return nil
		}
		return eventOutcome(model.KnownQuoteToken,
			model.Action("Set Next Quote Token"),
			model.Token(token, symbolOf(token, in.Metadata)),
		)

	case model.EventQuoteTokenUpdate:
		token, ok := log.AddressArg("token")
		if !ok {
			return nil
		}
		return eventOutcome(model.KnownQuoteToken,
			model.Action("Update Quote Token"),
			model.Token(token, symbolOf(token, in.Metadata)),
		)

	case model.EventRoleAdminUpdated:
		role, okRole := log.HashArg("role")
		admin, okAdmin := log.HashArg("adminRole")
		if !okRole || !okAdmin {
			return nil
		}
		return eventOutcome(model.KnownRoleAdmin,
			model.Action("Set Role Admin"),
			model.Text(e.cfg.roleName(role)),
			model.Text("to"),
			model.Text(e.cfg.roleName(admin)),
		)
	}
	return nil
}

// detectTransfer handles the shared Transfer/TransferWithMemo shape.
// Transfers into the fee manager from a real account are fee payments, not
// narrative sends.
func (e *Engine) detectTransfer(log model.DecodedLog, in Input) *outcome {
	from, okFrom := log.AddressArg("from")
	to, okTo := log.AddressArg("to")
	value, okValue := log.BigIntArg("amount")
	if !okFrom || !okTo || !okValue {
		return nil
	}

	amount := model.MakeAmount(log.Address, value, in.Metadata)
	if to == e.cfg.FeeManager && from != (common.Address{}) {
		// Zero-value fee transfers vanish entirely, same as on the
		// receipt side.
		if value.Sign() == 0 {
			return &outcome{}
		}
		return &outcome{fee: &model.FeeTransfer{Amount: amount, Payer: from}}
	}

	fromCopy, toCopy := from, to
	event := model.KnownEvent{
		Type: model.KnownSend,
		Parts: []model.EventPart{
			model.Action("Send"),
			model.AmountOf(amount),
			model.Text("to"),
			model.Account(to),
		},
		Meta: &model.EventMeta{From: &fromCopy, To: &toCopy},
	}
	if memo, ok := log.StringArg("memo"); ok && memo != "" {
		event.Note = &model.Note{Text: memo}
	}
	return &outcome{event: &event}
}

func symbolOf(token common.Address, lookup model.MetadataFunc) string {
	if lookup == nil {
		return ""
	}
	meta, ok := lookup(token)
	if !ok {
		return ""
	}
	return meta.Symbol
}

func eventOutcome(eventType string, parts ...model.EventPart) *outcome {
	return &outcome{event: &model.KnownEvent{Type: eventType, Parts: parts}}
}
