package receipt

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"eventScope/internal/model"
	"eventScope/internal/semantics"
)

// The aggregator consumes the same log stream as the narrative engine but
// produces the monetary view: main line items, a per-transfer fee
// breakdown, fee totals by currency, and grand totals by currency.
//
// Sign convention, applied uniformly: negative means value left the
// receipt's sender. Transfers into the sender are credits (positive);
// movements not touching the sender at all are recorded as debits.

// Build produces the receipt line items for one transaction.
func Build(cfg semantics.Addresses, in semantics.Input) model.ReceiptLineItems {
	items := model.ReceiptLineItems{
		Main:         []model.LineItem{},
		FeeBreakdown: []model.FeeBreakdownItem{},
		FeeTotals:    []model.LineItem{},
		Totals:       []model.LineItem{},
	}

	for _, log := range dropRestated(in.Logs) {
		if fee, ok := feeBreakdownFor(cfg, log, in.Metadata); ok {
			if fee != nil {
				items.FeeBreakdown = append(items.FeeBreakdown, *fee)
			}
			continue
		}
		items.Main = append(items.Main, lineItemFor(log, in))
	}

	items.FeeTotals = feeTotals(items.FeeBreakdown)
	items.Totals = grandTotals(items.Main, items.FeeTotals)
	return items
}

// dropRestated filters generic Transfer logs that restate a more specific
// TransferWithMemo, Mint or Burn, and the TransferWithMemo leg of a
// three-way mint/burn emission. Same pairing keys as the narrative engine,
// maintained separately because this pass cares about money, not memos.
func dropRestated(logs []model.DecodedLog) []model.DecodedLog {
	type pairing struct {
		memo, mint, burn string
	}
	prefs := make(map[string]string, len(logs))
	record := func(key, name string) {
		if key != "" {
			prefs[key] = name
		}
	}
	keysOf := func(log model.DecodedLog) pairing {
		var keys pairing
		from, okFrom := log.AddressArg("from")
		to, okTo := log.AddressArg("to")
		amount, okAmount := log.BigIntArg("amount")
		if okFrom && okTo {
			keys.memo = from.Hex() + "|" + to.Hex()
		}
		if okAmount {
			if okTo {
				keys.mint = "mint:" + log.Address.Hex() + "|" + amount.String() + "|" + to.Hex()
			}
			if okFrom {
				keys.burn = "burn:" + log.Address.Hex() + "|" + amount.String() + "|" + from.Hex()
			}
		}
		return keys
	}

	for _, log := range logs {
		keys := keysOf(log)
		switch log.Name {
		case model.EventTransferWithMemo:
			record(keys.memo, log.Name)
		case model.EventMint:
			record(keys.mint, log.Name)
		case model.EventBurn:
			record(keys.burn, log.Name)
		}
	}

	kept := make([]model.DecodedLog, 0, len(logs))
	for _, log := range logs {
		keys := keysOf(log)
		switch log.Name {
		case model.EventTransfer:
			if prefs[keys.memo] == model.EventTransferWithMemo ||
				prefs[keys.mint] == model.EventMint ||
				prefs[keys.burn] == model.EventBurn {
				continue
			}
		case model.EventTransferWithMemo:
			if prefs[keys.mint] == model.EventMint || prefs[keys.burn] == model.EventBurn {
				continue
			}
		}
		kept = append(kept, log)
	}
	return kept
}

// feeBreakdownFor reports whether the log is a fee transfer, and if so the
// breakdown entry for it. Zero-value fee transfers are swallowed whole:
// they produce neither a breakdown entry nor a main item.
func feeBreakdownFor(cfg semantics.Addresses, log model.DecodedLog, lookup model.MetadataFunc) (*model.FeeBreakdownItem, bool) {
	if log.Name != model.EventTransfer && log.Name != model.EventTransferWithMemo {
		return nil, false
	}
	from, okFrom := log.AddressArg("from")
	to, okTo := log.AddressArg("to")
	amount, okAmount := log.BigIntArg("amount")
	if !okFrom || !okTo || !okAmount {
		return nil, false
	}
	if to != cfg.FeeManager || from == (common.Address{}) {
		return nil, false
	}
	if amount.Sign() == 0 {
		return nil, true
	}

	item := model.FeeBreakdownItem{
		Amount:   new(big.Int).Set(amount),
		Currency: currencyKey(log.Address, lookup),
		Token:    log.Address,
		Payer:    &from,
	}
	if lookup != nil {
		if meta, ok := lookup(log.Address); ok {
			decimals := meta.Decimals
			item.Decimals = &decimals
			item.Symbol = meta.Symbol
		}
	}
	return &item, true
}

// lineItemFor maps one deduplicated log to its main line item. Anything
// outside the known vocabulary becomes a no-op row: raw event name on the
// left, "-" on the right.
func lineItemFor(log model.DecodedLog, in Input) model.LineItem {
	logCopy := log
	item := model.LineItem{
		SourceEvent: &logCopy,
		UI:          model.LineItemUI{Left: displayLabel(log.Name), Right: "-"},
	}

	switch log.Name {
	case model.EventTransfer, model.EventTransferWithMemo:
		from, okFrom := log.AddressArg("from")
		to, okTo := log.AddressArg("to")
		amount, okAmount := log.BigIntArg("amount")
		if !okFrom || !okTo || !okAmount {
			return item
		}
		switch {
		case from == in.Sender:
			item.UI.Left = "Send to " + shortAddress(to)
		case to == in.Sender:
			item.UI.Left = "Receive from " + shortAddress(from)
		default:
			item.UI.Left = "Transfer to " + shortAddress(to)
		}
		sign := -1
		if to == in.Sender {
			sign = 1
		}
		priceItem(&item, log.Address, amount, sign, in.Metadata)
		if memo, ok := log.StringArg("memo"); ok && memo != "" {
			item.UI.Bottom = append(item.UI.Bottom, model.DetailRow{Left: "Memo", Right: memo})
		}

	case model.EventMint:
		to, okTo := log.AddressArg("to")
		amount, okAmount := log.BigIntArg("amount")
		if !okTo || !okAmount {
			return item
		}
		sign := -1
		if to == in.Sender {
			sign = 1
		}
		priceItem(&item, log.Address, amount, sign, in.Metadata)

	case model.EventBurn:
		_, okFrom := log.AddressArg("from")
		amount, okAmount := log.BigIntArg("amount")
		if !okFrom || !okAmount {
			return item
		}
		priceItem(&item, log.Address, amount, -1, in.Metadata)

	case model.EventBurnBlocked:
		amount, okAmount := log.BigIntArg("amount")
		if !okAmount {
			return item
		}
		priceItem(&item, log.Address, amount, -1, in.Metadata)
	}
	return item
}

// Input aliases the engine input; the aggregator consumes the same shape.
type Input = semantics.Input

// priceItem attaches a signed price when metadata resolves, and always
// renders the amount column.
func priceItem(item *model.LineItem, token common.Address, amount *big.Int, sign int, lookup model.MetadataFunc) {
	signed := new(big.Int).Set(amount)
	if sign < 0 {
		signed.Neg(signed)
	}

	if lookup != nil {
		if meta, ok := lookup(token); ok {
			tokenCopy := token
			item.Price = &model.Price{
				Amount:   signed,
				Currency: metaCurrency(meta, token),
				Decimals: meta.Decimals,
				Symbol:   meta.Symbol,
				Token:    &tokenCopy,
			}
			item.UI.Right = formatUnits(signed, meta.Decimals, meta.Symbol)
			return
		}
	}
	item.UI.Right = signed.String()
}

// feeTotals groups the breakdown by currency in first-seen order and sums
// each group. Fees always leave the sender, so totals are negative. Two
// tokens sharing a currency string but scaled differently sum separately;
// raw units at mixed scales must never land in one sum.
func feeTotals(breakdown []model.FeeBreakdownItem) []model.LineItem {
	type group struct {
		sum      *big.Int
		currency string
		decimals *uint8
		symbol   string
		token    common.Address
	}
	order := make([]string, 0, len(breakdown))
	groups := make(map[string]*group)

	for _, item := range breakdown {
		key := scaledCurrencyKey(item.Currency, item.Decimals)
		g, ok := groups[key]
		if !ok {
			g = &group{sum: new(big.Int), currency: item.Currency, decimals: item.Decimals, symbol: item.Symbol, token: item.Token}
			groups[key] = g
			order = append(order, key)
		}
		g.sum.Add(g.sum, item.Amount)
	}

	totals := make([]model.LineItem, 0, len(order))
	for _, key := range order {
		g := groups[key]
		item := model.LineItem{
			IsFee: true,
			UI:    model.LineItemUI{Left: "Fee", Right: "-"},
		}
		if g.symbol != "" {
			item.UI.Left = "Fee (" + g.symbol + ")"
		}
		signed := new(big.Int).Neg(g.sum)
		tokenCopy := g.token
		price := &model.Price{Amount: signed, Currency: g.currency, Symbol: g.symbol, Token: &tokenCopy}
		if g.decimals != nil {
			price.Decimals = *g.decimals
			item.UI.Right = formatUnits(signed, *g.decimals, g.symbol)
		}
		item.Price = price
		totals = append(totals, item)
	}
	return totals
}

// grandTotals sums priced main items and fee totals per currency and scale,
// first-seen order.
func grandTotals(main []model.LineItem, fees []model.LineItem) []model.LineItem {
	type group struct {
		sum      *big.Int
		currency string
		decimals uint8
		hasMeta  bool
		symbol   string
		token    *common.Address
	}
	order := make([]string, 0, len(main)+len(fees))
	groups := make(map[string]*group)

	add := func(price *model.Price, hasMeta bool) {
		if price == nil {
			return
		}
		decimals := price.Decimals
		key := scaledCurrencyKey(price.Currency, &decimals)
		g, ok := groups[key]
		if !ok {
			g = &group{sum: new(big.Int), currency: price.Currency, decimals: price.Decimals, hasMeta: hasMeta, symbol: price.Symbol, token: price.Token}
			groups[key] = g
			order = append(order, key)
		}
		g.sum.Add(g.sum, price.Amount)
	}

	for _, item := range main {
		add(item.Price, true)
	}
	for _, item := range fees {
		add(item.Price, item.UI.Right != "-")
	}

	totals := make([]model.LineItem, 0, len(order))
	for _, key := range order {
		g := groups[key]
		item := model.LineItem{
			Price: &model.Price{Amount: g.sum, Currency: g.currency, Decimals: g.decimals, Symbol: g.symbol, Token: g.token},
			UI:    model.LineItemUI{Left: "Total", Right: "-"},
		}
		if g.symbol != "" {
			item.UI.Left = "Total (" + g.symbol + ")"
		}
		if g.hasMeta {
			item.UI.Right = formatUnits(g.sum, g.decimals, g.symbol)
		}
		totals = append(totals, item)
	}
	return totals
}

// scaledCurrencyKey is the grouping key for totals: currency plus decimal
// scale, so same-named currencies with different scales never share a sum.
func scaledCurrencyKey(currency string, decimals *uint8) string {
	if decimals == nil {
		return currency + "|-"
	}
	return currency + "|" + strconv.Itoa(int(*decimals))
}

func currencyKey(token common.Address, lookup model.MetadataFunc) string {
	if lookup != nil {
		if meta, ok := lookup(token); ok {
			return metaCurrency(meta, token)
		}
	}
	return token.Hex()
}

func metaCurrency(meta model.TokenMeta, token common.Address) string {
	if meta.Currency != "" {
		return meta.Currency
	}
	if meta.Symbol != "" {
		return meta.Symbol
	}
	return token.Hex()
}
