package execution

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/PapakMate/algotrade-2025-data-diggers/internal/quote"
)

type captureSender struct {
	frames [][]byte
	err    error
}

func (c *captureSender) Send(data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.frames = append(c.frames, data)
	return nil
}

func sampleBuy() (quote.Quote, quote.Decision) {
	q := quote.Quote{InstrumentID: "$NVDA_call_90_500", Symbol: "NVDA", Type: quote.Call, Spot: 100, Strike: 90, Ask: 8, Expiry: 500, Tick: 100}
	d := quote.Decision{Action: quote.Buy, InstrumentID: q.InstrumentID, Quantity: 1, Price: 8}
	return q, d
}

func TestSubmitBuyShapesFrame(t *testing.T) {
	sender := &captureSender{}
	sub := NewExchangeSubmitter(sender, zerolog.Nop())

	q, d := sampleBuy()
	if err := sub.SubmitBuy(q, d); err != nil {
		t.Fatalf("SubmitBuy returned error: %v", err)
	}
	if len(sender.frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(sender.frames))
	}

	var frame map[string]any
	if err := json.Unmarshal(sender.frames[0], &frame); err != nil {
		t.Fatalf("frame is not valid JSON: %v", err)
	}
	if frame["type"] != "add_order" {
		t.Fatalf("unexpected frame type %v", frame["type"])
	}
	if frame["user_request_id"] != "0000000001" {
		t.Fatalf("expected zero-padded request id, got %v", frame["user_request_id"])
	}
	if frame["instrument_id"] != "$NVDA_call_90_500" {
		t.Fatalf("unexpected instrument %v", frame["instrument_id"])
	}
	if frame["side"] != "bid" {
		t.Fatalf("expected bid side, got %v", frame["side"])
	}
	if frame["price"].(float64) != 8 {
		t.Fatalf("expected price 8, got %v", frame["price"])
	}
	if frame["quantity"].(float64) != 1 {
		t.Fatalf("expected 1 lot, got %v", frame["quantity"])
	}
}

func TestSubmitBuyRequestIDsIncrement(t *testing.T) {
	sender := &captureSender{}
	sub := NewExchangeSubmitter(sender, zerolog.Nop())

	q, d := sampleBuy()
	for i := 0; i < 3; i++ {
		if err := sub.SubmitBuy(q, d); err != nil {
			t.Fatalf("SubmitBuy returned error: %v", err)
		}
	}

	var frame map[string]any
	if err := json.Unmarshal(sender.frames[2], &frame); err != nil {
		t.Fatalf("frame is not valid JSON: %v", err)
	}
	if frame["user_request_id"] != "0000000003" {
		t.Fatalf("expected third id 0000000003, got %v", frame["user_request_id"])
	}
}

func TestSubmitBuyPropagatesSendError(t *testing.T) {
	sendErr := errors.New("connection gone")
	sub := NewExchangeSubmitter(&captureSender{err: sendErr}, zerolog.Nop())

	q, d := sampleBuy()
	if err := sub.SubmitBuy(q, d); !errors.Is(err, sendErr) {
		t.Fatalf("expected wrapped send error, got %v", err)
	}
}

func TestLogSubmitterLogsOrder(t *testing.T) {
	var buf bytes.Buffer
	sub := NewLogSubmitter(zerolog.New(&buf))

	q, d := sampleBuy()
	if err := sub.SubmitBuy(q, d); err != nil {
		t.Fatalf("SubmitBuy returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "$NVDA_call_90_500") {
		t.Fatalf("log does not contain instrument: %s", buf.String())
	}
}
