package semantics

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"eventScope/internal/model"
)

// At the log level an explicit liquidity provision and ordinary fee accrual
// look identical: both move tokens into the fee manager. The call data
// disambiguates, so the orchestrator walks the call tree looking for a
// liquidity mint aimed at the fee manager. Decode failures are swallowed;
// this is best-effort enrichment.

const feeLiquidityABIJSON = `[
  {"inputs": [
    {"name": "userToken", "type": "address"},
    {"name": "validatorToken", "type": "address"},
    {"name": "amountUserToken", "type": "uint256"},
    {"name": "amountValidatorToken", "type": "uint256"},
    {"name": "to", "type": "address"}
  ], "name": "mint", "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [
    {"name": "validatorToken", "type": "address"},
    {"name": "amountValidatorToken", "type": "uint256"},
    {"name": "to", "type": "address"}
  ], "name": "mintWithValidatorToken", "stateMutability": "nonpayable", "type": "function"}
]`

var (
	feeLiquidityABI     abi.ABI
	feeLiquidityABIOnce sync.Once
	feeLiquidityABIErr  error
)

func feeLiquidityABIInstance() (abi.ABI, error) {
	feeLiquidityABIOnce.Do(func() {
		feeLiquidityABI, feeLiquidityABIErr = abi.JSON(strings.NewReader(feeLiquidityABIJSON))
	})
	return feeLiquidityABI, feeLiquidityABIErr
}

// liquidityFromCallData walks the call tree breadth-first and returns an
// explicit add-liquidity event for the first fee-manager call whose input
// decodes as a liquidity mint, or nil.
func (e *Engine) liquidityFromCallData(tx *model.Call, lookup model.MetadataFunc) *model.KnownEvent {
	if tx == nil {
		return nil
	}
	parsed, err := feeLiquidityABIInstance()
	if err != nil {
		return nil
	}

	queue := []model.Call{*tx}
	for len(queue) > 0 {
		call := queue[0]
		queue = queue[1:]
		queue = append(queue, call.Calls...)

		if call.To == nil || *call.To != e.cfg.FeeManager || len(call.Input) < 4 {
			continue
		}
		method, err := parsed.MethodById(call.Input[:4])
		if err != nil {
			continue
		}
		values, err := method.Inputs.Unpack(call.Input[4:])
		if err != nil {
			continue
		}

		switch method.Name {
		case "mint":
			if len(values) != 5 {
				continue
			}
			userToken, errUser := asAddress(values[0])
			validatorToken, errValidator := asAddress(values[1])
			amountUser, errAmountUser := asBigInt(values[2])
			amountValidator, errAmountValidator := asBigInt(values[3])
			if errUser != nil || errValidator != nil || errAmountUser != nil || errAmountValidator != nil {
				continue
			}
			return &model.KnownEvent{
				Type: model.KnownAddLiquidity,
				Parts: []model.EventPart{
					model.Action("Add Liquidity"),
					model.AmountOf(model.MakeAmount(userToken, amountUser, lookup)),
					model.Text("and"),
					model.AmountOf(model.MakeAmount(validatorToken, amountValidator, lookup)),
				},
			}
		case "mintWithValidatorToken":
			if len(values) != 3 {
				continue
			}
			validatorToken, errValidator := asAddress(values[0])
			amountValidator, errAmount := asBigInt(values[1])
			if errValidator != nil || errAmount != nil {
				continue
			}
			return &model.KnownEvent{
				Type: model.KnownAddLiquidity,
				Parts: []model.EventPart{
					model.Action("Add Liquidity"),
					model.AmountOf(model.MakeAmount(validatorToken, amountValidator, lookup)),
				},
			}
		}
	}
	return nil
}

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		if v == nil {
			return common.Address{}, fmt.Errorf("nil address")
		}
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("nil big int")
		}
		return v, nil
	case big.Int:
		return &v, nil
	default:
		return nil, fmt.Errorf("unsupported integer type %T", value)
	}
}
