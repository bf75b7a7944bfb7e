package semantics

import (
	"testing"

	"eventScope/internal/model"
)

func sendEvent(t *testing.T) model.KnownEvent {
	t.Helper()
	engine := testEngine(t)
	events := engine.KnownEvents(Input{
		Logs:     []model.DecodedLog{transferLog(tokenAlpha, alice, bob, 100)},
		Sender:   alice,
		Metadata: testMetadata,
	})
	if len(events) != 1 || events[0].Type != model.KnownSend {
		t.Fatalf("fixture did not produce a send event: %+v", events)
	}
	return events[0]
}

func TestViewFromRecipient(t *testing.T) {
	event := sendEvent(t)

	viewed := ViewFrom(event, bob)
	if got := actionOf(t, viewed); got != "Receive" {
		t.Fatalf("action = %s, want Receive", got)
	}
	if amountAt(t, viewed, 1).Value.Int64() != 100 {
		t.Fatalf("amount lost in rewrite")
	}
	if text, ok := viewed.Parts[2].(model.TextPart); !ok || text.Text != "from" {
		t.Fatalf("part 2 mismatch: %+v", viewed.Parts[2])
	}
	if account, ok := viewed.Parts[3].(model.AccountPart); !ok || account.Address != alice {
		t.Fatalf("counterparty mismatch: %+v", viewed.Parts[3])
	}
}

func TestViewFromDoesNotMutate(t *testing.T) {
	event := sendEvent(t)
	_ = ViewFrom(event, bob)
	if got := actionOf(t, event); got != "Send" {
		t.Fatalf("original event mutated: action = %s", got)
	}
}

func TestViewFromIdempotent(t *testing.T) {
	event := sendEvent(t)
	once := ViewFrom(event, bob)
	twice := ViewFrom(once, bob)
	if got := actionOf(t, twice); got != "Receive" {
		t.Fatalf("double rewrite changed the event: %s", got)
	}
	if len(twice.Parts) != len(once.Parts) {
		t.Fatalf("double rewrite changed part count")
	}
}

func TestViewFromOtherAccountUnchanged(t *testing.T) {
	event := sendEvent(t)
	viewed := ViewFrom(event, exchangeAddr)
	if got := actionOf(t, viewed); got != "Send" {
		t.Fatalf("unrelated viewer must see the original: %s", got)
	}
}

func TestViewFromNonSendUnchanged(t *testing.T) {
	event := model.KnownEvent{
		Type:  model.KnownFee,
		Parts: []model.EventPart{model.Action("Pay Fee")},
	}
	viewed := ViewFrom(event, bob)
	if viewed.Type != model.KnownFee || actionOf(t, viewed) != "Pay Fee" {
		t.Fatalf("non-send event must pass through: %+v", viewed)
	}
}
