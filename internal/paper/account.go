package paper

import (
	"errors"
	"sync"

	"github.com/PapakMate/algotrade-2025-data-diggers/internal/execution"
)

// FillRecorder captures paper fills for later inspection.
type FillRecorder interface {
	Record(execution.Fill)
}

const epsilon = 1e-9

type positionState struct {
	Contracts  int64
	AvgPremium float64
}

// Account tracks virtual cash, realized PnL, and per-instrument option
// positions while running in paper mode. Contracts are bought at the
// quoted ask and held; Settle closes them at their exercise payoff.
type Account struct {
	mu           sync.Mutex
	startingCash float64
	cash         float64
	realizedPnL  float64
	maxContracts int64
	positions    map[string]positionState
}

// PositionSnapshot exposes a read-only view of one instrument position.
type PositionSnapshot struct {
	Contracts   int64
	AvgPremium  float64
	MarketValue float64
	Unrealized  float64
}

// Snapshot represents a thread-safe view of the account state, marked
// using the provided per-instrument values (typically intrinsic).
type Snapshot struct {
	Cash        float64
	RealizedPnL float64
	Equity      float64
	Positions   map[string]PositionSnapshot
}

// NewAccount constructs an account with starting cash and an optional
// per-instrument contract cap (zero disables the cap).
func NewAccount(startingCash float64, maxContractsPerInstrument int64) *Account {
	return &Account{
		startingCash: startingCash,
		cash:         startingCash,
		maxContracts: maxContractsPerInstrument,
		positions:    make(map[string]positionState),
	}
}

// StartingCash returns the initial bankroll.
func (a *Account) StartingCash() float64 { return a.startingCash }

// BuyContracts debits premium and adds contracts for the instrument.
func (a *Account) BuyContracts(instrumentID string, qty int64, premium float64) error {
	if qty <= 0 {
		return errors.New("quantity must be positive")
	}
	if premium < 0 {
		return errors.New("premium must be non-negative")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	cost := float64(qty) * premium
	if cost > a.cash+epsilon {
		return errors.New("insufficient cash for buy")
	}
	state := a.positions[instrumentID]
	newQty := state.Contracts + qty
	if a.maxContracts > 0 && newQty > a.maxContracts {
		return errors.New("contract limit exceeded")
	}
	newAvg := premium
	if newQty > 0 {
		newAvg = ((state.AvgPremium * float64(state.Contracts)) + cost) / float64(newQty)
	}
	a.cash -= cost
	a.positions[instrumentID] = positionState{Contracts: newQty, AvgPremium: newAvg}
	return nil
}

// Settle closes the instrument's position at the given per-contract
// payoff, crediting proceeds and realizing the PnL.
func (a *Account) Settle(instrumentID string, payoff float64) error {
	if payoff < 0 {
		return errors.New("payoff must be non-negative")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	state, ok := a.positions[instrumentID]
	if !ok || state.Contracts <= 0 {
		return errors.New("no position to settle")
	}
	proceeds := float64(state.Contracts) * payoff
	a.cash += proceeds
	a.realizedPnL += proceeds - float64(state.Contracts)*state.AvgPremium
	delete(a.positions, instrumentID)
	return nil
}

// Snapshot returns a copy of balances marked using the supplied
// per-instrument values.
func (a *Account) Snapshot(marks map[string]float64) Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	positions := make(map[string]PositionSnapshot, len(a.positions))
	equity := a.cash
	for id, pos := range a.positions {
		mark := marks[id]
		marketValue := float64(pos.Contracts) * mark
		unrealized := (mark - pos.AvgPremium) * float64(pos.Contracts)
		positions[id] = PositionSnapshot{
			Contracts:   pos.Contracts,
			AvgPremium:  pos.AvgPremium,
			MarketValue: marketValue,
			Unrealized:  unrealized,
		}
		equity += marketValue
	}

	return Snapshot{
		Cash:        a.cash,
		RealizedPnL: a.realizedPnL,
		Equity:      equity,
		Positions:   positions,
	}
}

// AvailableCash reports free cash that can be deployed into new buys.
func (a *Account) AvailableCash() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cash
}

// Position returns the current contract count for the instrument.
func (a *Account) Position(instrumentID string) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.positions[instrumentID].Contracts
}

// RealizedPnL returns total settled profit and loss.
func (a *Account) RealizedPnL() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.realizedPnL
}
