package semantics

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Addresses names the system contracts the classifier keys on. It is plain
// read-only configuration; the engine holds no global tables.
type Addresses struct {
	FeeManager       common.Address
	Exchange         common.Address
	TokenFactory     common.Address
	PolicyRegistry   common.Address
	NonceManager     common.Address
	FeeLiquidityPool common.Address

	// RoleNames resolves role hashes to display names. Unresolved roles
	// fall back to the raw hash.
	RoleNames map[common.Hash]string
}

// Validate rejects structurally unusable configuration before any log
// enters the pipeline.
func (a Addresses) Validate() error {
	if a.FeeManager == (common.Address{}) {
		return fmt.Errorf("fee manager address is required")
	}
	if a.Exchange == (common.Address{}) {
		return fmt.Errorf("exchange address is required")
	}
	return nil
}

// feePool returns the fee-liquidity pool address, which defaults to the fee
// manager itself when not configured separately.
func (a Addresses) feePool() common.Address {
	if a.FeeLiquidityPool != (common.Address{}) {
		return a.FeeLiquidityPool
	}
	return a.FeeManager
}

func (a Addresses) roleName(role common.Hash) string {
	if name, ok := a.RoleNames[role]; ok {
		return name
	}
	return role.Hex()
}

// DefaultRoleNames returns the role table for the stock token contracts.
func DefaultRoleNames() map[common.Hash]string {
	names := map[common.Hash]string{
		{}: "Admin",
	}
	for _, role := range []struct {
		id   string
		name string
	}{
		{"MINTER_ROLE", "Minter"},
		{"BURNER_ROLE", "Burner"},
		{"PAUSER_ROLE", "Pauser"},
		{"UPGRADER_ROLE", "Upgrader"},
		{"POLICY_ADMIN_ROLE", "Policy Admin"},
		{"SUPPLY_CAP_ROLE", "Supply Cap Manager"},
	} {
		names[crypto.Keccak256Hash([]byte(role.id))] = role.name
	}
	return names
}
