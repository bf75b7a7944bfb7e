package semantics

import (
	"math"

	"github.com/ethereum/go-ethereum/common"

	"eventScope/internal/model"
)

// detectExchange classifies order-book and exchange pool events.
func (e *Engine) detectExchange(log model.DecodedLog, in Input, _ map[string]string) *outcome {
	switch log.Name {
	case model.EventOrderPlaced:
		return e.detectOrder(log, in, "Limit Buy", "Limit Sell")

	case model.EventFlipOrderPlaced:
		return e.detectOrder(log, in, "Flip Buy", "Flip Sell")

	case model.EventOrderFilled:
		value, okValue := log.BigIntArg("amount")
		if !okValue {
			return nil
		}
		action := "Partial Fill"
		if remaining, ok := log.BigIntArg("remaining"); ok && remaining.Sign() == 0 {
			action = "Complete Fill"
		}
		event := eventOutcome(model.KnownOrderFill,
			model.Action(action),
			model.AmountOf(model.MakeAmount(orderToken(log), value, in.Metadata)),
		)
		attachOrderID(event.event, log)
		return event

	case model.EventOrderCancelled:
		orderID, ok := log.BigIntArg("orderId")
		if !ok {
			return nil
		}
		return eventOutcome(model.KnownOrderCancel,
			model.Action("Cancel Order"),
			model.Number(orderID),
		)

	case model.EventPairCreated:
		base, okBase := log.AddressArg("base")
		quote, okQuote := log.AddressArg("quote")
		if !okBase || !okQuote {
			return nil
		}
		return eventOutcome(model.KnownPairCreated,
			model.Action("Create Pair"),
			model.Token(base, symbolOf(base, in.Metadata)),
			model.Text("/"),
			model.Token(quote, symbolOf(quote, in.Metadata)),
		)

	case model.EventMint:
		// Exchange pool liquidity mint. The fee manager's own pool mints
		// are a separate family and must not be swallowed here.
		if log.Address == e.cfg.FeeManager || log.Address == e.cfg.feePool() {
			return nil
		}
		userAmount, okUser := log.BigIntArg("amountUserToken")
		validatorAmount, okValidator := log.BigIntArg("amountValidatorToken")
		if !okUser || !okValidator || userAmount.Sign() <= 0 || validatorAmount.Sign() <= 0 {
			return nil
		}
		return eventOutcome(model.KnownAddLiquidity,
			model.Action("Add Liquidity"),
			model.AmountOf(model.MakeAmount(pairTokenArg(log, "userToken"), userAmount, in.Metadata)),
			model.Text("and"),
			model.AmountOf(model.MakeAmount(pairTokenArg(log, "validatorToken"), validatorAmount, in.Metadata)),
		)
	}
	return nil
}

func (e *Engine) detectOrder(log model.DecodedLog, in Input, buy, sell string) *outcome {
	isBuy, okSide := log.BoolArg("isBuy")
	value, okValue := log.BigIntArg("amount")
	tick, okTick := log.Int64Arg("tick")
	if !okSide || !okValue || !okTick {
		return nil
	}
	if tick < math.MinInt16 || tick > math.MaxInt16 {
		return nil
	}
	action := sell
	if isBuy {
		action = buy
	}
	event := eventOutcome(model.KnownOrder,
		model.Action(action),
		model.AmountOf(model.MakeAmount(orderToken(log), value, in.Metadata)),
		model.Text("at tick"),
		model.Tick(int16(tick)),
	)
	attachOrderID(event.event, log)
	return event
}

// orderToken picks the token an order amount is denominated in; orders that
// do not name one fall back to the emitting contract.
func orderToken(log model.DecodedLog) common.Address {
	if token, ok := log.AddressArg("token"); ok {
		return token
	}
	return log.Address
}

func pairTokenArg(log model.DecodedLog, name string) common.Address {
	if token, ok := log.AddressArg(name); ok {
		return token
	}
	return log.Address
}

func attachOrderID(event *model.KnownEvent, log model.DecodedLog) {
	orderID, ok := log.BigIntArg("orderId")
	if !ok {
		return
	}
	event.Note = &model.Note{Fields: []model.NoteField{
		{Label: "Order", Part: model.Number(orderID)},
	}}
}
