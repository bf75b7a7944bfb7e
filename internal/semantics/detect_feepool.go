package semantics

import "eventScope/internal/model"

// detectFeePool classifies liquidity events of the fee manager's own pool.
// These reuse the Mint/Burn names of token contracts, so the family runs
// last and is scoped to the pool address.
func (e *Engine) detectFeePool(log model.DecodedLog, in Input, _ map[string]string) *outcome {
	if log.Address != e.cfg.feePool() {
		return nil
	}

	switch log.Name {
	case model.EventMint:
		return e.poolLiquidity(log, in, model.KnownAddLiquidity, "Add Liquidity")

	case model.EventBurn:
		return e.poolLiquidity(log, in, model.KnownRemoveLiquidity, "Remove Liquidity")

	case model.EventRebalanceSwap:
		return e.poolSwap(log, in, "Rebalance Swap")

	case model.EventFeeSwap:
		return e.poolSwap(log, in, "Fee Swap")
	}
	return nil
}

func (e *Engine) poolLiquidity(log model.DecodedLog, in Input, eventType, action string) *outcome {
	userAmount, okUser := log.BigIntArg("amountUserToken")
	validatorAmount, okValidator := log.BigIntArg("amountValidatorToken")
	if !okUser || !okValidator {
		return nil
	}
	return eventOutcome(eventType,
		model.Action(action),
		model.AmountOf(model.MakeAmount(pairTokenArg(log, "userToken"), userAmount, in.Metadata)),
		model.Text("and"),
		model.AmountOf(model.MakeAmount(pairTokenArg(log, "validatorToken"), validatorAmount, in.Metadata)),
	)
}

func (e *Engine) poolSwap(log model.DecodedLog, in Input, action string) *outcome {
	tokenIn, okTokenIn := log.AddressArg("tokenIn")
	tokenOut, okTokenOut := log.AddressArg("tokenOut")
	amountIn, okAmountIn := log.BigIntArg("amountIn")
	amountOut, okAmountOut := log.BigIntArg("amountOut")
	if !okTokenIn || !okTokenOut || !okAmountIn || !okAmountOut {
		return nil
	}
	return eventOutcome(model.KnownPoolSwap,
		model.Action(action),
		model.AmountOf(model.MakeAmount(tokenIn, amountIn, in.Metadata)),
		model.Text("for"),
		model.AmountOf(model.MakeAmount(tokenOut, amountOut, in.Metadata)),
	)
}
