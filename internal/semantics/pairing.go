package semantics

import (
	"github.com/ethereum/go-ethereum/common"

	"eventScope/internal/model"
)

// Contracts emit the same transfer twice by design: a generic Transfer next
// to a more specific TransferWithMemo, Mint or Burn. The pairing resolver
// detects those restatements and keeps only the most specific log.

func memoPairKey(from, to common.Address) string {
	return from.Hex() + "|" + to.Hex()
}

func mintPairKey(token common.Address, amount string, to common.Address) string {
	return "mint:" + token.Hex() + "|" + amount + "|" + to.Hex()
}

func burnPairKey(token common.Address, amount string, from common.Address) string {
	return "burn:" + token.Hex() + "|" + amount + "|" + from.Hex()
}

// buildPreferenceMap records, for every specific log, the pairing key its
// generic restatement would produce. Last writer wins on duplicate keys.
func buildPreferenceMap(logs []model.DecodedLog) map[string]string {
	prefs := make(map[string]string, len(logs))
	for _, log := range logs {
		switch log.Name {
		case model.EventTransferWithMemo:
			from, okFrom := log.AddressArg("from")
			to, okTo := log.AddressArg("to")
			if okFrom && okTo {
				prefs[memoPairKey(from, to)] = model.EventTransferWithMemo
			}
		case model.EventMint:
			to, okTo := log.AddressArg("to")
			amount, okAmount := log.BigIntArg("amount")
			if okTo && okAmount {
				prefs[mintPairKey(log.Address, amount.String(), to)] = model.EventMint
			}
		case model.EventBurn:
			from, okFrom := log.AddressArg("from")
			amount, okAmount := log.BigIntArg("amount")
			if okFrom && okAmount {
				prefs[burnPairKey(log.Address, amount.String(), from)] = model.EventBurn
			}
		}
	}
	return prefs
}

// dedupLogs drops generic restatements of more specific logs and harvests
// memo text onto the mint/burn key of a dropped TransferWithMemo, so the
// surviving Mint/Burn can carry it. Order-preserving.
//
// A Mint/Burn without a numeric amount never enters the preference map: it
// is not a token-style mint or burn and passes through untouched.
func dedupLogs(logs []model.DecodedLog) ([]model.DecodedLog, map[string]string) {
	prefs := buildPreferenceMap(logs)
	memos := make(map[string]string)
	kept := make([]model.DecodedLog, 0, len(logs))

	for _, log := range logs {
		switch log.Name {
		case model.EventTransfer:
			if pairedAway(prefs, log) {
				continue
			}
		case model.EventTransferWithMemo:
			// A three-way emission (Mint + TransferWithMemo + Transfer)
			// collapses to the Mint/Burn alone; the memo moves with it.
			if key, ok := specificKeyFor(prefs, log); ok {
				if memo, okMemo := log.StringArg("memo"); okMemo && memo != "" {
					memos[key] = memo
				}
				continue
			}
		}
		kept = append(kept, log)
	}
	return kept, memos
}

// pairedAway reports whether a generic Transfer restates a more specific
// log already present in the preference map.
func pairedAway(prefs map[string]string, log model.DecodedLog) bool {
	from, okFrom := log.AddressArg("from")
	to, okTo := log.AddressArg("to")
	if !okFrom || !okTo {
		return false
	}
	if name := prefs[memoPairKey(from, to)]; name == model.EventTransferWithMemo {
		return true
	}
	amount, okAmount := log.BigIntArg("amount")
	if !okAmount {
		return false
	}
	if name := prefs[mintPairKey(log.Address, amount.String(), to)]; name == model.EventMint {
		return true
	}
	if name := prefs[burnPairKey(log.Address, amount.String(), from)]; name == model.EventBurn {
		return true
	}
	return false
}

// specificKeyFor returns the mint or burn key that shadows a
// TransferWithMemo, when one exists.
func specificKeyFor(prefs map[string]string, log model.DecodedLog) (string, bool) {
	from, okFrom := log.AddressArg("from")
	to, okTo := log.AddressArg("to")
	amount, okAmount := log.BigIntArg("amount")
	if !okFrom || !okTo || !okAmount {
		return "", false
	}
	mintKey := mintPairKey(log.Address, amount.String(), to)
	if prefs[mintKey] == model.EventMint {
		return mintKey, true
	}
	burnKey := burnPairKey(log.Address, amount.String(), from)
	if prefs[burnKey] == model.EventBurn {
		return burnKey, true
	}
	return "", false
}
