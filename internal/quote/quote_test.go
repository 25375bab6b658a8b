package quote

import (
	"errors"
	"testing"
)

func TestParseInstrument(t *testing.T) {
	symbol, typ, strike, expiry, err := ParseInstrument("$NVDA_call_90_1200")
	if err != nil {
		t.Fatalf("ParseInstrument returned error: %v", err)
	}
	if symbol != "NVDA" {
		t.Fatalf("unexpected symbol %s", symbol)
	}
	if typ != Call {
		t.Fatalf("unexpected type %s", typ)
	}
	if strike != 90 {
		t.Fatalf("unexpected strike %.2f", strike)
	}
	if expiry != 1200 {
		t.Fatalf("unexpected expiry %d", expiry)
	}
}

func TestParseInstrumentRejects(t *testing.T) {
	bad := []string{
		"$NVDA_call_90",          // missing expiry
		"$NVDA_straddle_90_1200", // unknown type
		"$NVDA_put_abc_1200",     // bad strike
		"$NVDA_put_90_xyz",       // bad expiry
		"NVDA",                   // no separators
	}
	for _, id := range bad {
		if _, _, _, _, err := ParseInstrument(id); !errors.Is(err, ErrMalformed) {
			t.Fatalf("expected ErrMalformed for %q, got %v", id, err)
		}
	}
}

func TestValidate(t *testing.T) {
	q := Quote{InstrumentID: "$NVDA_call_90_1200", Symbol: "NVDA", Type: Call, Spot: 100, Strike: 90, Ask: 8, Expiry: 1200}
	if err := q.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestValidateRejectsNegativePrices(t *testing.T) {
	q := Quote{InstrumentID: "$NVDA_call_90_1200", Type: Call, Spot: -1, Strike: 90, Ask: 8}
	if err := q.Validate(); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestValidateRejectsUnknownType(t *testing.T) {
	q := Quote{InstrumentID: "$NVDA_swap_90_1200", Type: OptionType("swap"), Spot: 1, Strike: 1, Ask: 1}
	if err := q.Validate(); !errors.Is(err, ErrUnknownOptionType) {
		t.Fatalf("expected ErrUnknownOptionType, got %v", err)
	}
}
