package paper

import (
	"math"
	"testing"
)

func TestBuyAndSettlePnL(t *testing.T) {
	account := NewAccount(1000, 0)

	if err := account.BuyContracts("$NVDA_call_90_500", 1, 8); err != nil {
		t.Fatalf("unexpected buy error: %v", err)
	}
	if err := account.BuyContracts("$NVDA_call_90_500", 1, 6); err != nil {
		t.Fatalf("unexpected second buy error: %v", err)
	}

	snap := account.Snapshot(map[string]float64{"$NVDA_call_90_500": 10})
	pos := snap.Positions["$NVDA_call_90_500"]
	if pos.Contracts != 2 {
		t.Fatalf("expected 2 contracts, got %d", pos.Contracts)
	}
	if math.Abs(pos.AvgPremium-7) > 1e-9 {
		t.Fatalf("expected avg premium 7, got %.4f", pos.AvgPremium)
	}
	if math.Abs(snap.Cash+pos.MarketValue-snap.Equity) > 1e-6 {
		t.Fatalf("equity did not balance")
	}
	if math.Abs(pos.Unrealized-6) > 1e-9 {
		t.Fatalf("expected unrealized 6, got %.4f", pos.Unrealized)
	}

	// Settle both contracts at intrinsic 10: realized = (10-7)*2.
	if err := account.Settle("$NVDA_call_90_500", 10); err != nil {
		t.Fatalf("unexpected settle error: %v", err)
	}
	if math.Abs(account.RealizedPnL()-6) > 1e-9 {
		t.Fatalf("expected realized pnl 6, got %.2f", account.RealizedPnL())
	}
	if account.Position("$NVDA_call_90_500") != 0 {
		t.Fatalf("expected flat position after settle")
	}
	if math.Abs(account.AvailableCash()-1006) > 1e-9 {
		t.Fatalf("expected cash 1006, got %.2f", account.AvailableCash())
	}
}

func TestBuyInsufficientCash(t *testing.T) {
	account := NewAccount(5, 0)
	if err := account.BuyContracts("$NVDA_call_90_500", 1, 8); err == nil {
		t.Fatalf("expected cash error")
	}
}

func TestBuyContractLimit(t *testing.T) {
	account := NewAccount(1000, 2)
	if err := account.BuyContracts("$NVDA_call_90_500", 3, 1); err == nil {
		t.Fatalf("expected contract limit error")
	}
}

func TestSettleWithoutPosition(t *testing.T) {
	account := NewAccount(1000, 0)
	if err := account.Settle("$NVDA_call_90_500", 10); err == nil {
		t.Fatalf("expected no-position error")
	}
}
