// Package execution handles order submission toward the exchange.
package execution

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/PapakMate/algotrade-2025-data-diggers/internal/metrics"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/quote"
)

// orderExpiry is the far-future good-til tick stamped on every order;
// the bot never cancels, contracts just run off.
const orderExpiry = 99999999

// Submitter is the order submission sink. Implementations get exactly
// one attempt per buy decision; retries are not part of the contract.
type Submitter interface {
	SubmitBuy(q quote.Quote, d quote.Decision) error
}

// Fill records an executed (or simulated) purchase for the ledger.
type Fill struct {
	InstrumentID string    `json:"instrument_id"`
	Symbol       string    `json:"symbol"`
	Type         string    `json:"type"`
	Quantity     int64     `json:"quantity"`
	Premium      float64   `json:"premium"`
	Tick         int64     `json:"tick"`
	Session      string    `json:"session,omitempty"`
	Ts           time.Time `json:"ts"`
}

// Sender pushes a raw frame to the exchange. The websocket feed
// satisfies this so orders ride the same authenticated connection the
// market data arrives on.
type Sender interface {
	Send(data []byte) error
}

// addOrderFrame mirrors the exchange's add_order message.
type addOrderFrame struct {
	Type          string  `json:"type"`
	UserRequestID string  `json:"user_request_id"`
	InstrumentID  string  `json:"instrument_id"`
	Price         float64 `json:"price"`
	Expiry        int64   `json:"expiry"`
	Side          string  `json:"side"`
	Quantity      int64   `json:"quantity"`
}

// ExchangeSubmitter shapes buy decisions into add_order frames with a
// zero-padded request id counter, as the exchange requires.
type ExchangeSubmitter struct {
	mu     sync.Mutex
	nextID uint64
	sender Sender
	log    zerolog.Logger
}

// NewExchangeSubmitter wires a frame sender and a logger.
func NewExchangeSubmitter(sender Sender, log zerolog.Logger) *ExchangeSubmitter {
	return &ExchangeSubmitter{sender: sender, log: log}
}

// SubmitBuy sends a 1-lot bid at the decision price. A send failure is
// reported once and left to the caller's policy; the quote loop keeps
// running either way.
func (s *ExchangeSubmitter) SubmitBuy(q quote.Quote, d quote.Decision) error {
	s.mu.Lock()
	s.nextID++
	id := fmt.Sprintf("%010d", s.nextID)
	s.mu.Unlock()

	frame := addOrderFrame{
		Type:          "add_order",
		UserRequestID: id,
		InstrumentID:  d.InstrumentID,
		Price:         d.Price,
		Expiry:        orderExpiry,
		Side:          "bid",
		Quantity:      d.Quantity,
	}
	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("encode add_order: %w", err)
	}
	if err := s.sender.Send(data); err != nil {
		metrics.OrderErrorsTotal.Inc()
		return fmt.Errorf("send add_order %s: %w", id, err)
	}

	metrics.OrdersTotal.WithLabelValues(q.Symbol, string(q.Type)).Inc()
	s.log.Info().Str("req", id).Str("instrument", d.InstrumentID).Float64("px", d.Price).Int64("qty", d.Quantity).Msg("submitted bid")
	return nil
}

// LogSubmitter records buy decisions without touching a venue; the
// paper binary runs on it.
type LogSubmitter struct{ log zerolog.Logger }

// NewLogSubmitter wraps a zerolog logger.
func NewLogSubmitter(log zerolog.Logger) *LogSubmitter { return &LogSubmitter{log: log} }

// SubmitBuy logs the hypothetical order.
func (s *LogSubmitter) SubmitBuy(q quote.Quote, d quote.Decision) error {
	metrics.OrdersTotal.WithLabelValues(q.Symbol, string(q.Type)).Inc()
	s.log.Info().Str("instrument", d.InstrumentID).Float64("px", d.Price).Int64("qty", d.Quantity).Msg("paper bid")
	return nil
}
