package semantics

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"eventScope/internal/model"
)

func packMintInput(t *testing.T, userToken, validatorToken common.Address, amountUser, amountValidator *big.Int, to common.Address) hexutil.Bytes {
	t.Helper()
	parsed, err := feeLiquidityABIInstance()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	method := parsed.Methods["mint"]
	packed, err := method.Inputs.Pack(userToken, validatorToken, amountUser, amountValidator, to)
	if err != nil {
		t.Fatalf("pack mint: %v", err)
	}
	return append(method.ID, packed...)
}

func packValidatorMintInput(t *testing.T, validatorToken common.Address, amount *big.Int, to common.Address) hexutil.Bytes {
	t.Helper()
	parsed, err := feeLiquidityABIInstance()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	method := parsed.Methods["mintWithValidatorToken"]
	packed, err := method.Inputs.Pack(validatorToken, amount, to)
	if err != nil {
		t.Fatalf("pack mintWithValidatorToken: %v", err)
	}
	return append(method.ID, packed...)
}

func TestCallDataLiquidityMint(t *testing.T) {
	engine := testEngine(t)
	fm := feeManagerAddr
	tx := &model.Call{
		To:    &fm,
		Input: packMintInput(t, tokenAlpha, tokenBeta, big.NewInt(1000), big.NewInt(2000), alice),
	}

	// The logs alone look like a plain fee payment.
	events := engine.KnownEvents(Input{
		Logs:     []model.DecodedLog{transferLog(tokenAlpha, alice, feeManagerAddr, 1000)},
		Tx:       tx,
		Sender:   alice,
		Metadata: testMetadata,
	})

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	event := events[0]
	if event.Type != model.KnownAddLiquidity {
		t.Fatalf("type = %s, want add liquidity", event.Type)
	}
	if amountAt(t, event, 1).Value.Int64() != 1000 || amountAt(t, event, 1).Token != tokenAlpha {
		t.Fatalf("user leg mismatch: %+v", event.Parts)
	}
	if amountAt(t, event, 3).Value.Int64() != 2000 || amountAt(t, event, 3).Token != tokenBeta {
		t.Fatalf("validator leg mismatch: %+v", event.Parts)
	}
}

func TestCallDataLiquidityNestedCall(t *testing.T) {
	engine := testEngine(t)
	router := common.HexToAddress("0x00000000000000000000000000000000000000c3")
	fm := feeManagerAddr
	tx := &model.Call{
		To: &router,
		Calls: []model.Call{{
			To:    &fm,
			Input: packValidatorMintInput(t, tokenBeta, big.NewInt(500), alice),
		}},
	}

	event := engine.liquidityFromCallData(tx, testMetadata)
	if event == nil {
		t.Fatalf("nested liquidity mint not found")
	}
	if event.Type != model.KnownAddLiquidity {
		t.Fatalf("type = %s", event.Type)
	}
	if len(event.Parts) != 2 {
		t.Fatalf("single-leg mint should have 2 parts, got %d", len(event.Parts))
	}
	if amountAt(t, *event, 1).Token != tokenBeta {
		t.Fatalf("validator token mismatch")
	}
}

func TestCallDataIgnoresOtherTargets(t *testing.T) {
	engine := testEngine(t)
	tx := &model.Call{
		To:    &tokenAlpha,
		Input: packMintInput(t, tokenAlpha, tokenBeta, big.NewInt(1), big.NewInt(2), alice),
	}
	if event := engine.liquidityFromCallData(tx, nil); event != nil {
		t.Fatalf("mint aimed at a non fee-manager target must be ignored")
	}
}

func TestCallDataDecodeFailureIsSilent(t *testing.T) {
	engine := testEngine(t)
	fm := feeManagerAddr
	for _, input := range []hexutil.Bytes{
		nil,
		{0x01, 0x02},
		{0xde, 0xad, 0xbe, 0xef},
		append(packMintInput(t, tokenAlpha, tokenBeta, big.NewInt(1), big.NewInt(2), alice)[:10], 0xff),
	} {
		tx := &model.Call{To: &fm, Input: input}
		if event := engine.liquidityFromCallData(tx, nil); event != nil {
			t.Fatalf("undecodable input %x must yield nil", input)
		}
	}
	if event := engine.liquidityFromCallData(nil, nil); event != nil {
		t.Fatalf("nil call tree must yield nil")
	}
}
