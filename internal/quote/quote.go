// Package quote standardizes payloads shared between the market data feed and the pricing layer.
package quote

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// OptionType distinguishes calls from puts.
type OptionType string

const (
	// Call pays off when spot exceeds strike.
	Call OptionType = "call"
	// Put pays off when strike exceeds spot.
	Put OptionType = "put"
)

// ErrMalformed flags a quote that failed validation; the processing
// loop skips such quotes and keeps consuming the feed.
var ErrMalformed = errors.New("malformed quote")

// ErrUnknownOptionType flags an instrument whose type is neither call nor put.
var ErrUnknownOptionType = fmt.Errorf("%w: unknown option type", ErrMalformed)

// Quote is a single snapshot of one option instrument: the underlying
// spot, the contract terms, and the best ask available to lift.
// Received, evaluated, discarded; never retained.
type Quote struct {
	InstrumentID string
	Symbol       string
	Type         OptionType
	Spot         float64
	Strike       float64
	Ask          float64
	Expiry       int64 // exchange tick at which the contract matures
	Tick         int64 // exchange tick at which this snapshot was taken
}

// Validate rejects quotes the evaluator must not silently coerce.
func (q Quote) Validate() error {
	if q.InstrumentID == "" {
		return fmt.Errorf("%w: empty instrument id", ErrMalformed)
	}
	if q.Type != Call && q.Type != Put {
		return fmt.Errorf("%w %q", ErrUnknownOptionType, q.Type)
	}
	if q.Spot < 0 || q.Strike < 0 || q.Ask < 0 {
		return fmt.Errorf("%w: negative price field on %s", ErrMalformed, q.InstrumentID)
	}
	return nil
}

// Action is the outcome of evaluating one quote.
type Action string

const (
	// Buy submits a 1-lot bid at the quoted ask.
	Buy Action = "buy"
	// None leaves the book untouched.
	None Action = "none"
)

// Decision is produced per quote and handed straight to the order
// submission sink when Action is Buy.
type Decision struct {
	Action       Action
	InstrumentID string
	Quantity     int64
	Price        float64 // ask to cross when buying
}

// ParseInstrument decodes the exchange naming convention
// $<SYM>_<call|put>_<strike>_<expiry> into its parts. The reported
// error wraps ErrMalformed so callers can treat bad names as skippable.
func ParseInstrument(id string) (symbol string, typ OptionType, strike float64, expiry int64, err error) {
	parts := strings.Split(strings.TrimPrefix(id, "$"), "_")
	if len(parts) != 4 {
		return "", "", 0, 0, fmt.Errorf("%w: instrument %q", ErrMalformed, id)
	}
	symbol = parts[0]
	switch parts[1] {
	case string(Call):
		typ = Call
	case string(Put):
		typ = Put
	default:
		return "", "", 0, 0, fmt.Errorf("%w %q in %q", ErrUnknownOptionType, parts[1], id)
	}
	strike, err = strconv.ParseFloat(parts[2], 64)
	if err != nil || strike < 0 {
		return "", "", 0, 0, fmt.Errorf("%w: strike %q in %q", ErrMalformed, parts[2], id)
	}
	expiry, err = strconv.ParseInt(parts[3], 10, 64)
	if err != nil || expiry < 0 {
		return "", "", 0, 0, fmt.Errorf("%w: expiry %q in %q", ErrMalformed, parts[3], id)
	}
	return symbol, typ, strike, expiry, nil
}
