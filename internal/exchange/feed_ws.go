package exchange

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/PapakMate/algotrade-2025-data-diggers/internal/metrics"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/quote"
)

// marketDataUpdate is the only message type the bot cares about.
// Everything else on the stream is ignored for throughput.
type marketDataUpdate struct {
	Type    string `json:"type"`
	Time    int64  `json:"time"`
	Candles struct {
		Untradeable map[string][]candle `json:"untradeable"`
	} `json:"candles"`
	OrderbookDepths map[string]orderbookDepth `json:"orderbook_depths"`
}

type candle struct {
	Close *float64 `json:"close"`
}

// orderbookDepth maps price level -> resting quantity.
type orderbookDepth struct {
	Asks map[string]int64 `json:"asks"`
}

func (f *Feed) runWebsocket(ctx context.Context, out chan<- quote.Quote) error {
	url := f.url
	if f.teamSecret != "" {
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		url += sep + "team_secret=" + f.teamSecret
	}

	backoff := f.reconnectWait
	const maxBackoff = 30 * time.Second

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := f.consumeStream(ctx, url, out); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			f.log.Warn().Err(err).Msg("exchange feed disconnected, retrying")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff = time.Duration(math.Min(float64(maxBackoff), float64(backoff)*1.8))
			continue
		}
		return nil
	}
}

func (f *Feed) consumeStream(ctx context.Context, url string, out chan<- quote.Quote) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	f.setConn(conn)
	defer func() {
		f.setConn(nil)
		conn.Close()
	}()

	f.log.Info().Str("provider", ProviderWebsocket).Msg("connected market data feed")

	conn.SetReadLimit(1 << 20)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var update marketDataUpdate
		if err := json.Unmarshal(message, &update); err != nil {
			f.log.Warn().Err(err).Msg("failed to decode exchange message")
			continue
		}
		if update.Type != "market_data_update" {
			continue
		}
		if err := f.handleUpdate(ctx, update, out); err != nil {
			return err
		}
	}
}

// handleUpdate runs the single-pass pipeline: refresh the spot cache
// from untradeable candles, then scan option books and emit one quote
// per instrument that has an ask and a known spot.
func (f *Feed) handleUpdate(ctx context.Context, update marketDataUpdate, out chan<- quote.Quote) error {
	if update.Time > 0 {
		f.tick = update.Time
	} else {
		f.tick++
	}

	for symbol, candles := range update.Candles.Untradeable {
		if len(candles) == 0 {
			continue
		}
		last := candles[len(candles)-1]
		if last.Close == nil {
			continue
		}
		f.spots[strings.TrimPrefix(symbol, "$")] = *last.Close
	}

	// Book iteration is sorted so replays are deterministic.
	instruments := make([]string, 0, len(update.OrderbookDepths))
	for id := range update.OrderbookDepths {
		instruments = append(instruments, id)
	}
	sort.Strings(instruments)

	for _, id := range instruments {
		if !strings.Contains(id, "call") && !strings.Contains(id, "put") {
			continue // non-option instrument
		}
		book := update.OrderbookDepths[id]
		ask, ok := bestAsk(book)
		if !ok {
			metrics.QuotesSkippedTotal.WithLabelValues("no_ask").Inc()
			continue
		}

		symbol, typ, strike, expiry, err := quote.ParseInstrument(id)
		if err != nil {
			metrics.QuotesSkippedTotal.WithLabelValues("bad_instrument").Inc()
			continue
		}
		spot, ok := f.spots[symbol]
		if !ok {
			metrics.QuotesSkippedTotal.WithLabelValues("no_spot").Inc()
			continue
		}

		q := quote.Quote{
			InstrumentID: id,
			Symbol:       symbol,
			Type:         typ,
			Spot:         spot,
			Strike:       strike,
			Ask:          ask,
			Expiry:       expiry,
			Tick:         f.tick,
		}
		select {
		case out <- q:
			metrics.QuotesTotal.WithLabelValues(symbol).Inc()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// bestAsk returns the lowest parseable ask level. Unparseable levels
// are skipped the same way bad ticks are.
func bestAsk(book orderbookDepth) (float64, bool) {
	best := math.Inf(1)
	found := false
	for level := range book.Asks {
		px, err := strconv.ParseFloat(level, 64)
		if err != nil || px < 0 {
			continue
		}
		if px < best {
			best = px
			found = true
		}
	}
	return best, found
}
