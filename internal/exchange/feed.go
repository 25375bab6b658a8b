// Package exchange hosts the market data connector for the competition venue.
package exchange

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/PapakMate/algotrade-2025-data-diggers/internal/metrics"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/quote"
)

const (
	// ProviderStub emits deterministic synthetic quotes (useful for tests/offline work).
	ProviderStub = "stub"
	// ProviderWebsocket streams live market data updates from the exchange.
	ProviderWebsocket = "websocket"
)

// ErrNotConnected is returned by Send before the websocket is up or
// after it dropped.
var ErrNotConnected = errors.New("exchange connection not established")

const defaultReconnectWait = 100 * time.Millisecond

// Feed consumes exchange snapshots and fans them out as one Quote per
// option book. Orders travel back over the same connection via Send.
type Feed struct {
	provider      string
	url           string
	teamSecret    string
	log           zerolog.Logger
	reconnectWait time.Duration

	// spot cache: latest close per underlying, fed by untradeable candles
	spots map[string]float64
	tick  int64

	wmu  sync.Mutex
	conn *websocket.Conn
}

// Option configures Feed construction parameters.
type Option func(*Feed)

// WithEndpoint sets the websocket URL and the team secret appended as
// an auth query parameter.
func WithEndpoint(url, teamSecret string) Option {
	return func(f *Feed) {
		f.url = url
		f.teamSecret = teamSecret
	}
}

// WithReconnectWait overrides the initial pause before reconnect attempts.
func WithReconnectWait(d time.Duration) Option {
	return func(f *Feed) {
		if d > 0 {
			f.reconnectWait = d
		}
	}
}

// NewFeed constructs a feed backed by the requested provider.
func NewFeed(provider string, log zerolog.Logger, opts ...Option) *Feed {
	if provider == "" {
		provider = ProviderStub
	}
	f := &Feed{
		provider:      strings.ToLower(provider),
		log:           log,
		reconnectWait: defaultReconnectWait,
		spots:         make(map[string]float64),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run pushes quotes onto the provided channel in arrival order until
// the context is canceled.
func (f *Feed) Run(ctx context.Context, out chan<- quote.Quote) error {
	switch f.provider {
	case ProviderWebsocket:
		return f.runWebsocket(ctx, out)
	default:
		return f.runStub(ctx, out)
	}
}

// Send pushes a raw frame to the exchange over the live connection.
func (f *Feed) Send(data []byte) error {
	f.wmu.Lock()
	defer f.wmu.Unlock()
	if f.conn == nil {
		return ErrNotConnected
	}
	f.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return f.conn.WriteMessage(websocket.TextMessage, data)
}

func (f *Feed) setConn(conn *websocket.Conn) {
	f.wmu.Lock()
	f.conn = conn
	f.wmu.Unlock()
}

// runStub walks a synthetic underlying upward past a fixed strike so
// calls drift into undervaluation, giving offline runs something to buy.
func (f *Feed) runStub(ctx context.Context, out chan<- quote.Quote) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	const (
		symbol = "STUB"
		strike = 90.0
		ask    = 8.0
	)
	spot := 95.0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			f.tick++
			spot += 0.5
			q := quote.Quote{
				InstrumentID: "$STUB_call_90_" + strconv.FormatInt(f.tick+50, 10),
				Symbol:       symbol,
				Type:         quote.Call,
				Spot:         spot,
				Strike:       strike,
				Ask:          ask,
				Expiry:       f.tick + 50,
				Tick:         f.tick,
			}
			select {
			case out <- q:
				metrics.QuotesTotal.WithLabelValues(symbol).Inc()
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
