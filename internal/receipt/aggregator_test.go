package receipt

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"eventScope/internal/model"
	"eventScope/internal/semantics"
)

var (
	feeManagerAddr = common.HexToAddress("0x1000000000000000000000000000000000000001")
	exchangeAddr   = common.HexToAddress("0x2000000000000000000000000000000000000002")
	tokenAlpha     = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	tokenBeta      = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	tokenGamma     = common.HexToAddress("0xcccccccccccccccccccccccccccccccccccccc01")
	alice          = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob            = common.HexToAddress("0x00000000000000000000000000000000000000b2")
)

var testAddrs = semantics.Addresses{FeeManager: feeManagerAddr, Exchange: exchangeAddr}

func testMetadata(token common.Address) (model.TokenMeta, bool) {
	switch token {
	case tokenAlpha:
		return model.TokenMeta{Decimals: 6, Symbol: "ALPHA", Currency: "USD"}, true
	case tokenBeta:
		return model.TokenMeta{Decimals: 2, Symbol: "BETA", Currency: "BETA"}, true
	case tokenGamma:
		// Same currency as tokenAlpha, different scale.
		return model.TokenMeta{Decimals: 2, Symbol: "GAMMA", Currency: "USD"}, true
	default:
		return model.TokenMeta{}, false
	}
}

func transferLog(token, from, to common.Address, amount int64) model.DecodedLog {
	return model.DecodedLog{
		Address: token,
		Name:    model.EventTransfer,
		Args: map[string]any{
			"from":   from,
			"to":     to,
			"amount": big.NewInt(amount),
		},
	}
}

func TestBuildFeeReconciliation(t *testing.T) {
	items := Build(testAddrs, Input{
		Logs: []model.DecodedLog{
			transferLog(tokenAlpha, alice, bob, 1000),
			transferLog(tokenAlpha, alice, feeManagerAddr, 50),
			transferLog(tokenAlpha, alice, feeManagerAddr, 25),
		},
		Sender:   alice,
		Metadata: testMetadata,
	})

	if len(items.Main) != 1 {
		t.Fatalf("main items = %d, want 1 (fees must not appear as main rows)", len(items.Main))
	}
	if items.Main[0].Price == nil || items.Main[0].Price.Amount.Int64() != -1000 {
		t.Fatalf("main price mismatch: %+v", items.Main[0].Price)
	}

	if len(items.FeeBreakdown) != 2 {
		t.Fatalf("fee breakdown = %d, want 2", len(items.FeeBreakdown))
	}

	if len(items.FeeTotals) != 1 {
		t.Fatalf("fee totals = %d, want 1", len(items.FeeTotals))
	}
	feeTotal := items.FeeTotals[0]
	if !feeTotal.IsFee {
		t.Fatalf("fee total row not marked as fee")
	}
	if feeTotal.Price == nil || feeTotal.Price.Amount.Int64() != -75 {
		t.Fatalf("fee total = %v, want -75", feeTotal.Price)
	}

	// Sum of the breakdown equals the fee total, negated.
	sum := new(big.Int)
	for _, fee := range items.FeeBreakdown {
		sum.Add(sum, fee.Amount)
	}
	if sum.Int64() != 75 {
		t.Fatalf("breakdown sum = %v", sum)
	}

	if len(items.Totals) != 1 {
		t.Fatalf("totals = %d, want 1", len(items.Totals))
	}
	if items.Totals[0].Price.Amount.Int64() != -1075 {
		t.Fatalf("grand total = %v, want -1075 (main + fee total)", items.Totals[0].Price.Amount)
	}
	if items.Totals[0].UI.Left != "Total (ALPHA)" {
		t.Fatalf("total label = %q", items.Totals[0].UI.Left)
	}
}

func TestBuildCreditSign(t *testing.T) {
	items := Build(testAddrs, Input{
		Logs:     []model.DecodedLog{transferLog(tokenAlpha, bob, alice, 300)},
		Sender:   alice,
		Metadata: testMetadata,
	})

	if len(items.Main) != 1 {
		t.Fatalf("main items = %d", len(items.Main))
	}
	item := items.Main[0]
	if item.Price == nil || item.Price.Amount.Int64() != 300 {
		t.Fatalf("incoming transfer must be a credit: %+v", item.Price)
	}
	if !strings.HasPrefix(item.UI.Left, "Receive from ") {
		t.Fatalf("label = %q", item.UI.Left)
	}
}

func TestBuildThirdPartyMovementIsDebit(t *testing.T) {
	items := Build(testAddrs, Input{
		Logs:     []model.DecodedLog{transferLog(tokenAlpha, bob, exchangeAddr, 10)},
		Sender:   alice,
		Metadata: testMetadata,
	})

	item := items.Main[0]
	if item.Price == nil || item.Price.Amount.Sign() >= 0 {
		t.Fatalf("movement not touching the sender records as a debit: %+v", item.Price)
	}
	if !strings.HasPrefix(item.UI.Left, "Transfer to ") {
		t.Fatalf("label = %q", item.UI.Left)
	}
}

func TestBuildDropsRestatedTransfer(t *testing.T) {
	memoLog := transferLog(tokenAlpha, alice, bob, 100)
	memoLog.Name = model.EventTransferWithMemo
	memoLog.Args["memo"] = "rent"

	items := Build(testAddrs, Input{
		Logs: []model.DecodedLog{
			memoLog,
			transferLog(tokenAlpha, alice, bob, 100),
		},
		Sender:   alice,
		Metadata: testMetadata,
	})

	if len(items.Main) != 1 {
		t.Fatalf("restated transfer must collapse to one row, got %d", len(items.Main))
	}
	bottom := items.Main[0].UI.Bottom
	if len(bottom) != 1 || bottom[0].Left != "Memo" || bottom[0].Right != "rent" {
		t.Fatalf("memo row missing: %+v", bottom)
	}
}

func TestBuildMintCollapsesThreeWay(t *testing.T) {
	memoLog := transferLog(tokenAlpha, common.Address{}, bob, 500)
	memoLog.Name = model.EventTransferWithMemo

	items := Build(testAddrs, Input{
		Logs: []model.DecodedLog{
			{Address: tokenAlpha, Name: model.EventMint, Args: map[string]any{"to": bob, "amount": big.NewInt(500)}},
			memoLog,
			transferLog(tokenAlpha, common.Address{}, bob, 500),
		},
		Sender:   alice,
		Metadata: testMetadata,
	})

	if len(items.Main) != 1 {
		t.Fatalf("three-way mint must collapse to one row, got %d", len(items.Main))
	}
	if items.Main[0].UI.Left != "Mint" {
		t.Fatalf("label = %q", items.Main[0].UI.Left)
	}
	if items.Main[0].Price.Amount.Int64() != -500 {
		t.Fatalf("mint to a third party records as a debit: %v", items.Main[0].Price.Amount)
	}
}

func TestBuildZeroFeeSwallowed(t *testing.T) {
	items := Build(testAddrs, Input{
		Logs:     []model.DecodedLog{transferLog(tokenAlpha, alice, feeManagerAddr, 0)},
		Sender:   alice,
		Metadata: testMetadata,
	})

	if len(items.Main) != 0 || len(items.FeeBreakdown) != 0 {
		t.Fatalf("zero fee must vanish: main=%d breakdown=%d", len(items.Main), len(items.FeeBreakdown))
	}
	if len(items.FeeTotals) != 0 || len(items.Totals) != 0 {
		t.Fatalf("zero fee must not produce totals")
	}
}

func TestBuildMintToFeeManagerIsNotFee(t *testing.T) {
	// A mint crediting the fee manager comes from the zero address and must
	// stay a main row, not a fee.
	items := Build(testAddrs, Input{
		Logs:     []model.DecodedLog{transferLog(tokenAlpha, common.Address{}, feeManagerAddr, 100)},
		Sender:   alice,
		Metadata: testMetadata,
	})

	if len(items.FeeBreakdown) != 0 {
		t.Fatalf("zero-address transfer must not enter the fee breakdown")
	}
	if len(items.Main) != 1 {
		t.Fatalf("main items = %d", len(items.Main))
	}
}

func TestBuildMissingMetadataRows(t *testing.T) {
	unknown := common.HexToAddress("0xcccccccccccccccccccccccccccccccccccccccc")
	items := Build(testAddrs, Input{
		Logs: []model.DecodedLog{
			transferLog(unknown, alice, bob, 123),
			transferLog(unknown, alice, feeManagerAddr, 7),
		},
		Sender:   alice,
		Metadata: testMetadata,
	})

	// Unpriced main row renders the raw signed integer.
	if items.Main[0].Price != nil {
		t.Fatalf("no metadata, no price: %+v", items.Main[0].Price)
	}
	if items.Main[0].UI.Right != "-123" {
		t.Fatalf("raw amount = %q", items.Main[0].UI.Right)
	}

	if len(items.FeeTotals) != 1 {
		t.Fatalf("fee totals = %d", len(items.FeeTotals))
	}
	if items.FeeTotals[0].UI.Right != "-" {
		t.Fatalf("fee total without decimals renders a dash, got %q", items.FeeTotals[0].UI.Right)
	}
	if items.FeeTotals[0].Price.Amount.Int64() != -7 {
		t.Fatalf("fee total amount = %v", items.FeeTotals[0].Price.Amount)
	}
}

func TestBuildUnknownEventNoOpRow(t *testing.T) {
	items := Build(testAddrs, Input{
		Logs:   []model.DecodedLog{{Address: tokenAlpha, Name: "MysteryEvent"}},
		Sender: alice,
	})

	if len(items.Main) != 1 {
		t.Fatalf("main items = %d", len(items.Main))
	}
	item := items.Main[0]
	if item.UI.Left != "MysteryEvent" || item.UI.Right != "-" {
		t.Fatalf("no-op row mismatch: %+v", item.UI)
	}
	if item.Price != nil {
		t.Fatalf("no-op row must be unpriced")
	}
	if len(items.Totals) != 0 {
		t.Fatalf("unpriced rows must not produce totals")
	}
}

func TestBuildCurrencyGroupingFirstSeenOrder(t *testing.T) {
	items := Build(testAddrs, Input{
		Logs: []model.DecodedLog{
			transferLog(tokenBeta, alice, feeManagerAddr, 3),
			transferLog(tokenAlpha, alice, feeManagerAddr, 5),
			transferLog(tokenBeta, alice, feeManagerAddr, 4),
		},
		Sender:   alice,
		Metadata: testMetadata,
	})

	if len(items.FeeTotals) != 2 {
		t.Fatalf("fee totals = %d, want 2", len(items.FeeTotals))
	}
	if items.FeeTotals[0].Price.Currency != "BETA" || items.FeeTotals[0].Price.Amount.Int64() != -7 {
		t.Fatalf("first group mismatch: %+v", items.FeeTotals[0].Price)
	}
	if items.FeeTotals[1].Price.Currency != "USD" || items.FeeTotals[1].Price.Amount.Int64() != -5 {
		t.Fatalf("second group mismatch: %+v", items.FeeTotals[1].Price)
	}
	if items.Totals[0].Price.Currency != "BETA" || items.Totals[1].Price.Currency != "USD" {
		t.Fatalf("grand totals must keep first-seen order: %+v", items.Totals)
	}
}

func TestBuildTotalsMixCredit(t *testing.T) {
	items := Build(testAddrs, Input{
		Logs: []model.DecodedLog{
			transferLog(tokenAlpha, bob, alice, 1000),
			transferLog(tokenAlpha, alice, feeManagerAddr, 40),
		},
		Sender:   alice,
		Metadata: testMetadata,
	})

	if len(items.Totals) != 1 {
		t.Fatalf("totals = %d", len(items.Totals))
	}
	if items.Totals[0].Price.Amount.Int64() != 960 {
		t.Fatalf("total = %v, want 960", items.Totals[0].Price.Amount)
	}
}

func TestBuildMixedScaleCurrencyNotSummed(t *testing.T) {
	// ALPHA and GAMMA both price in USD but at different scales; their raw
	// units must never land in one sum.
	items := Build(testAddrs, Input{
		Logs: []model.DecodedLog{
			transferLog(tokenAlpha, alice, bob, 1000000),
			transferLog(tokenGamma, alice, bob, 150),
			transferLog(tokenAlpha, alice, feeManagerAddr, 50),
			transferLog(tokenGamma, alice, feeManagerAddr, 5),
		},
		Sender:   alice,
		Metadata: testMetadata,
	})

	if len(items.FeeTotals) != 2 {
		t.Fatalf("fee totals = %d, want one per scale", len(items.FeeTotals))
	}
	if items.FeeTotals[0].Price.Amount.Int64() != -50 || items.FeeTotals[1].Price.Amount.Int64() != -5 {
		t.Fatalf("fee totals mixed scales: %+v", items.FeeTotals)
	}

	if len(items.Totals) != 2 {
		t.Fatalf("totals = %d, want one per scale", len(items.Totals))
	}
	if items.Totals[0].Price.Amount.Int64() != -1000050 || items.Totals[0].Price.Decimals != 6 {
		t.Fatalf("six-decimal total mismatch: %+v", items.Totals[0].Price)
	}
	if items.Totals[1].Price.Amount.Int64() != -155 || items.Totals[1].Price.Decimals != 2 {
		t.Fatalf("two-decimal total mismatch: %+v", items.Totals[1].Price)
	}
	if items.Totals[0].UI.Right != "-1.00005 ALPHA" {
		t.Fatalf("rendered total = %q", items.Totals[0].UI.Right)
	}
}
