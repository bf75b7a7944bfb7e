package model

import (
	"encoding/json"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Event names emitted by the system contracts. Anything outside this
// vocabulary is preserved and falls through to a no-op line item.
const (
	EventTransfer              = "Transfer"
	EventTransferWithMemo      = "TransferWithMemo"
	EventMint                  = "Mint"
	EventBurn                  = "Burn"
	EventApproval              = "Approval"
	EventRoleMembershipUpdated = "RoleMembershipUpdated"
	EventPauseStateUpdate      = "PauseStateUpdate"
	EventSupplyCapUpdate       = "SupplyCapUpdate"
	EventRewardScheduled       = "RewardScheduled"
	EventRewardCanceled        = "RewardCanceled"
	EventRewardRecipientSet    = "RewardRecipientSet"
	EventBurnBlocked           = "BurnBlocked"
	EventTransferPolicyUpdate  = "TransferPolicyUpdate"
	EventNextQuoteTokenSet     = "NextQuoteTokenSet"
	EventQuoteTokenUpdate      = "QuoteTokenUpdate"
	EventRoleAdminUpdated      = "RoleAdminUpdated"
	EventTokenCreated          = "TokenCreated"
	EventOrderPlaced           = "OrderPlaced"
	EventFlipOrderPlaced       = "FlipOrderPlaced"
	EventOrderFilled           = "OrderFilled"
	EventOrderCancelled        = "OrderCancelled"
	EventPairCreated           = "PairCreated"
	EventWhitelistUpdated      = "WhitelistUpdated"
	EventBlacklistUpdated      = "BlacklistUpdated"
	EventPolicyAdminUpdated    = "PolicyAdminUpdated"
	EventPolicyCreated         = "PolicyCreated"
	EventUserTokenSet          = "UserTokenSet"
	EventValidatorTokenSet     = "ValidatorTokenSet"
	EventNonceIncremented      = "NonceIncremented"
	EventActiveKeyCountChanged = "ActiveKeyCountChanged"
	EventRebalanceSwap         = "RebalanceSwap"
	EventFeeSwap               = "FeeSwap"
)

// DecodedLog is one event log of a transaction, already matched against a
// contract ABI by the caller. Args holds the decoded parameters by name;
// values may be typed (common.Address, *big.Int, bool) or still JSON-shaped
// (hex strings, decimal strings), the accessors below coerce both.
type DecodedLog struct {
	Address common.Address `json:"address"`
	Name    string         `json:"name"`
	Topics  []string       `json:"topics,omitempty"`
	Args    map[string]any `json:"args,omitempty"`
}

// AddressArg returns the named argument as an address.
func (l DecodedLog) AddressArg(name string) (common.Address, bool) {
	val, ok := l.Args[name]
	if !ok {
		return common.Address{}, false
	}
	switch v := val.(type) {
	case common.Address:
		return v, true
	case *common.Address:
		if v == nil {
			return common.Address{}, false
		}
		return *v, true
	case string:
		if !common.IsHexAddress(v) {
			return common.Address{}, false
		}
		return common.HexToAddress(v), true
	default:
		return common.Address{}, false
	}
}

// BigIntArg returns the named argument as an unsigned big integer.
func (l DecodedLog) BigIntArg(name string) (*big.Int, bool) {
	val, ok := l.Args[name]
	if !ok {
		return nil, false
	}
	switch v := val.(type) {
	case *big.Int:
		if v == nil {
			return nil, false
		}
		return v, true
	case big.Int:
		return &v, true
	case int64:
		return big.NewInt(v), true
	case int:
		return big.NewInt(int64(v)), true
	case uint64:
		return new(big.Int).SetUint64(v), true
	case json.Number:
		return bigIntFromString(v.String())
	case string:
		return bigIntFromString(v)
	default:
		return nil, false
	}
}

// StringArg returns the named argument as a string.
func (l DecodedLog) StringArg(name string) (string, bool) {
	val, ok := l.Args[name]
	if !ok {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}

// BoolArg returns the named argument as a bool.
func (l DecodedLog) BoolArg(name string) (bool, bool) {
	val, ok := l.Args[name]
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Int64Arg returns the named argument as a signed 64-bit integer.
func (l DecodedLog) Int64Arg(name string) (int64, bool) {
	val, ok := l.Args[name]
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case *big.Int:
		if v == nil || !v.IsInt64() {
			return 0, false
		}
		return v.Int64(), true
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	case string:
		parsed, ok := bigIntFromString(v)
		if !ok || !parsed.IsInt64() {
			return 0, false
		}
		return parsed.Int64(), true
	default:
		return 0, false
	}
}

// HashArg returns the named argument as a 32-byte hash.
func (l DecodedLog) HashArg(name string) (common.Hash, bool) {
	val, ok := l.Args[name]
	if !ok {
		return common.Hash{}, false
	}
	switch v := val.(type) {
	case common.Hash:
		return v, true
	case [32]byte:
		return common.Hash(v), true
	case []byte:
		if len(v) != 32 {
			return common.Hash{}, false
		}
		return common.BytesToHash(v), true
	case string:
		if !strings.HasPrefix(v, "0x") || len(v) != 66 {
			return common.Hash{}, false
		}
		return common.HexToHash(v), true
	default:
		return common.Hash{}, false
	}
}

func bigIntFromString(value string) (*big.Int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false
	}
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		parsed, ok := new(big.Int).SetString(value[2:], 16)
		return parsed, ok
	}
	parsed, ok := new(big.Int).SetString(value, 10)
	return parsed, ok
}
