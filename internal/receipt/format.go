package receipt

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"eventScope/internal/model"
)

// displayLabels maps known event names to their receipt row labels. Names
// outside the table render as-is, the no-op fallback.
var displayLabels = map[string]string{
	model.EventTransfer:              "Transfer",
	model.EventTransferWithMemo:      "Transfer",
	model.EventMint:                  "Mint",
	model.EventBurn:                  "Burn",
	model.EventApproval:              "Approve",
	model.EventRoleMembershipUpdated: "Update Role",
	model.EventPauseStateUpdate:      "Update Pause State",
	model.EventSupplyCapUpdate:       "Set Supply Cap",
	model.EventRewardScheduled:       "Schedule Reward",
	model.EventRewardCanceled:        "Cancel Reward",
	model.EventRewardRecipientSet:    "Set Reward Recipient",
	model.EventBurnBlocked:           "Burn Blocked Funds",
	model.EventTransferPolicyUpdate:  "Update Transfer Policy",
	model.EventNextQuoteTokenSet:     "Set Next Quote Token",
	model.EventQuoteTokenUpdate:      "Update Quote Token",
	model.EventRoleAdminUpdated:      "Set Role Admin",
	model.EventTokenCreated:          "Create Token",
	model.EventOrderPlaced:           "Place Order",
	model.EventFlipOrderPlaced:       "Place Flip Order",
	model.EventOrderFilled:           "Fill Order",
	model.EventOrderCancelled:        "Cancel Order",
	model.EventPairCreated:           "Create Pair",
	model.EventWhitelistUpdated:      "Update Whitelist",
	model.EventBlacklistUpdated:      "Update Blacklist",
	model.EventPolicyAdminUpdated:    "Set Policy Admin",
	model.EventPolicyCreated:         "Create Policy",
	model.EventUserTokenSet:          "Set Fee Token",
	model.EventValidatorTokenSet:     "Set Validator Token",
	model.EventNonceIncremented:      "Increment Nonce",
	model.EventActiveKeyCountChanged: "Update Active Keys",
	model.EventRebalanceSwap:         "Rebalance Swap",
	model.EventFeeSwap:               "Fee Swap",
}

func displayLabel(name string) string {
	if label, ok := displayLabels[name]; ok {
		return label
	}
	return name
}

// formatUnits renders a signed raw amount scaled by decimals, with an
// optional symbol suffix.
func formatUnits(value *big.Int, decimals uint8, symbol string) string {
	text := decimal.NewFromBigInt(value, -int32(decimals)).String()
	if symbol == "" {
		return text
	}
	return text + " " + symbol
}

// FormatAmount renders an Amount for display: scaled and symbolized when
// metadata resolved, the raw integer otherwise.
func FormatAmount(a model.Amount) string {
	if a.Value == nil {
		return "-"
	}
	if a.Decimals == nil {
		return a.Value.String()
	}
	return formatUnits(a.Value, *a.Decimals, a.Symbol)
}

func shortAddress(address common.Address) string {
	hex := address.Hex()
	return hex[:6] + "…" + hex[len(hex)-4:]
}

// FormatEvent renders a known event as one line of narrative text.
func FormatEvent(event model.KnownEvent) string {
	fragments := make([]string, 0, len(event.Parts))
	for _, part := range event.Parts {
		fragments = append(fragments, partText(part))
	}
	line := strings.Join(fragments, " ")
	if event.Note != nil && event.Note.Text != "" {
		line += " (" + event.Note.Text + ")"
	}
	return line
}

func partText(part model.EventPart) string {
	switch p := part.(type) {
	case model.AccountPart:
		return shortAddress(p.Address)
	case model.ActionPart:
		return p.Label
	case model.AmountPart:
		return FormatAmount(p.Amount)
	case model.DurationPart:
		return fmt.Sprintf("%ds", p.Seconds)
	case model.HexPart:
		return p.Bytes.String()
	case model.NumberPart:
		if p.Value == nil {
			return "-"
		}
		if p.Decimals != nil {
			return decimal.NewFromBigInt(p.Value, -int32(*p.Decimals)).String()
		}
		return p.Value.String()
	case model.TextPart:
		return p.Text
	case model.TickPart:
		return fmt.Sprintf("%d", p.Tick)
	case model.TokenPart:
		if p.Symbol != "" {
			return p.Symbol
		}
		return shortAddress(p.Token)
	default:
		return ""
	}
}

// RenderText renders the receipt as plain text, the shape shared by the
// terminal view and the PDF exporter.
func RenderText(items model.ReceiptLineItems) string {
	var b strings.Builder
	writeRow := func(left, right string) {
		fmt.Fprintf(&b, "%-44s %20s\n", left, right)
	}

	for _, item := range items.Main {
		writeRow(item.UI.Left, item.UI.Right)
		for _, row := range item.UI.Bottom {
			writeRow("  "+row.Left, row.Right)
		}
	}

	if len(items.FeeBreakdown) > 0 {
		b.WriteString("\nFees\n")
		for _, fee := range items.FeeBreakdown {
			left := "Fee"
			if fee.Payer != nil {
				left = "Fee paid by " + shortAddress(*fee.Payer)
			}
			right := fee.Amount.String()
			if fee.Decimals != nil {
				right = formatUnits(fee.Amount, *fee.Decimals, fee.Symbol)
			}
			writeRow(left, right)
		}
		for _, item := range items.FeeTotals {
			writeRow(item.UI.Left, item.UI.Right)
		}
	}

	if len(items.Totals) > 0 {
		b.WriteString("\n")
		for _, item := range items.Totals {
			writeRow(item.UI.Left, item.UI.Right)
		}
	}
	return b.String()
}
