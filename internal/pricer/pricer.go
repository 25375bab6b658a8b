// Package pricer contains the mispricing rule that turns option quotes into buy decisions.
package pricer

import (
	"math"

	"github.com/PapakMate/algotrade-2025-data-diggers/internal/params"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/quote"
)

// IntrinsicValue returns the immediate exercise payoff of the quoted
// contract, clamped at zero. No Greeks, no implied volatility: in this
// exchange micro-structure speed beats theory.
func IntrinsicValue(q quote.Quote) float64 {
	switch q.Type {
	case quote.Call:
		return math.Max(0, q.Spot-q.Strike)
	case quote.Put:
		return math.Max(0, q.Strike-q.Spot)
	default:
		return 0
	}
}

// Evaluator applies the underpriced-option rule one quote at a time.
// It is stateless; each quote is independent.
type Evaluator struct{}

// New returns an Evaluator.
func New() *Evaluator { return &Evaluator{} }

// Evaluate is a pure function of the quote and the parameter snapshot.
// Callers re-snapshot the live parameters per quote so manual
// overrides take effect immediately.
//
// Long-dated contracts are filtered first: a quote whose remaining
// lifetime exceeds the horizon locks up capital until maturity and is
// skipped before pricing. The horizon comparison is inclusive and the
// mispricing comparison strict, so a contract exactly at the horizon
// is eligible while a book priced exactly at intrinsic*alpha is not
// bought.
func (e *Evaluator) Evaluate(q quote.Quote, p params.Parameters) quote.Decision {
	if q.Expiry-q.Tick > p.MaxExpiryHorizon {
		return quote.Decision{Action: quote.None, InstrumentID: q.InstrumentID}
	}

	fair := IntrinsicValue(q)
	if fair*p.Alpha > q.Ask {
		return quote.Decision{
			Action:       quote.Buy,
			InstrumentID: q.InstrumentID,
			Quantity:     1,
			Price:        q.Ask,
		}
	}
	return quote.Decision{Action: quote.None, InstrumentID: q.InstrumentID}
}
