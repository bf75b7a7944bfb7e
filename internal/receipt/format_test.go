package receipt

import (
	"math/big"
	"strings"
	"testing"

	"eventScope/internal/model"
)

func TestFormatUnits(t *testing.T) {
	cases := []struct {
		value    int64
		decimals uint8
		symbol   string
		want     string
	}{
		{1500000, 6, "ALPHA", "1.5 ALPHA"},
		{-1075000, 6, "ALPHA", "-1.075 ALPHA"},
		{42, 0, "", "42"},
		{1, 2, "BETA", "0.01 BETA"},
	}
	for _, c := range cases {
		got := formatUnits(big.NewInt(c.value), c.decimals, c.symbol)
		if got != c.want {
			t.Fatalf("formatUnits(%d, %d, %q) = %q, want %q", c.value, c.decimals, c.symbol, got, c.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	six := uint8(6)
	a := model.Amount{Value: big.NewInt(2500000), Token: tokenAlpha, Decimals: &six, Symbol: "ALPHA"}
	if got := FormatAmount(a); got != "2.5 ALPHA" {
		t.Fatalf("got %q", got)
	}

	raw := model.Amount{Value: big.NewInt(999), Token: tokenAlpha}
	if got := FormatAmount(raw); got != "999" {
		t.Fatalf("unresolved amount renders raw, got %q", got)
	}

	if got := FormatAmount(model.Amount{}); got != "-" {
		t.Fatalf("empty amount renders a dash, got %q", got)
	}
}

func TestShortAddress(t *testing.T) {
	hex := bob.Hex()
	got := shortAddress(bob)
	if !strings.HasPrefix(got, hex[:6]) || !strings.HasSuffix(got, hex[len(hex)-4:]) {
		t.Fatalf("shortAddress = %q", got)
	}
	if len(got) >= len(bob.Hex()) {
		t.Fatalf("shortAddress did not shorten: %q", got)
	}
}

func TestFormatEvent(t *testing.T) {
	six := uint8(6)
	event := model.KnownEvent{
		Type: model.KnownSend,
		Parts: []model.EventPart{
			model.Action("Send"),
			model.AmountOf(model.Amount{Value: big.NewInt(150000), Token: tokenAlpha, Decimals: &six, Symbol: "ALPHA"}),
			model.Text("to"),
			model.Account(bob),
		},
		Note: &model.Note{Text: "Thanks for the coffee."},
	}
	got := FormatEvent(event)
	want := "Send 0.15 ALPHA to " + shortAddress(bob) + " (Thanks for the coffee.)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderText(t *testing.T) {
	items := Build(testAddrs, Input{
		Logs: []model.DecodedLog{
			transferLog(tokenAlpha, alice, bob, 1000000),
			transferLog(tokenAlpha, alice, feeManagerAddr, 50000),
		},
		Sender:   alice,
		Metadata: testMetadata,
	})

	text := RenderText(items)
	for _, fragment := range []string{
		"Send to " + shortAddress(bob),
		"-1 ALPHA",
		"Fees",
		"Fee paid by " + shortAddress(alice),
		"Fee (ALPHA)",
		"Total (ALPHA)",
		"-1.05 ALPHA",
	} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("rendered receipt missing %q:\n%s", fragment, text)
		}
	}
}
