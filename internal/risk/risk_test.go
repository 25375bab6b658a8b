package risk

import "testing"

func TestAllow(t *testing.T) {
	limits := Limits{MaxPremiumPerOrder: 50}
	if !limits.Allow(49.9) {
		t.Fatalf("expected premium under limit to pass")
	}
	if limits.Allow(50.1) {
		t.Fatalf("expected premium above limit to fail")
	}
}

func TestAllowUncapped(t *testing.T) {
	limits := Limits{}
	if !limits.Allow(1e9) {
		t.Fatalf("zero cap must allow everything")
	}
}
