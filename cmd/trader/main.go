// Binary trader runs the live underpriced-option loop against the
// competition exchange.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/PapakMate/algotrade-2025-data-diggers/internal/config"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/exchange"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/execution"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/metrics"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/override"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/params"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/pricer"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/quote"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/risk"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/util"
)

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to the YAML config")
	flag.Parse()

	// .env is optional; live rounds set TEAM_SECRET there.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := util.NewLogger("info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log, session := util.WithSession(util.NewLogger(cfg.App.LogLevel))
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if secret := os.Getenv("TEAM_SECRET"); secret != "" {
		cfg.Exchange.TeamSecret = secret
	}

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Str("session", session).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := params.NewStore(cfg.Parameters())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid parameters")
	}

	feed := exchange.NewFeed(
		cfg.Exchange.Provider,
		log,
		exchange.WithEndpoint(cfg.Exchange.URL, cfg.Exchange.TeamSecret),
		exchange.WithReconnectWait(time.Duration(cfg.Exchange.ReconnectWaitMs)*time.Millisecond),
	)
	quotes := make(chan quote.Quote, 1024)

	go func() {
		if err := feed.Run(ctx, quotes); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("feed stopped")
			cancel()
		}
	}()

	console := override.NewConsole(store, log)
	go func() {
		if err := console.Run(ctx, os.Stdin); err != nil {
			log.Warn().Err(err).Msg("override console stopped")
		}
	}()

	evaluator := pricer.New()
	limits := risk.Limits{MaxPremiumPerOrder: cfg.Risk.MaxPremiumPerOrder}
	submitter := execution.NewExchangeSubmitter(feed, log)

	log.Info().Float64("alpha", store.Snapshot().Alpha).Msg("trader started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			return
		case q := <-quotes:
			if err := q.Validate(); err != nil {
				metrics.QuotesSkippedTotal.WithLabelValues("malformed").Inc()
				log.Warn().Err(err).Msg("skipping malformed quote")
				continue
			}

			// Parameters are re-read per quote so mid-round overrides bite.
			decision := evaluator.Evaluate(q, store.Snapshot())
			if decision.Action != quote.Buy {
				continue
			}
			if !limits.Allow(decision.Price * float64(decision.Quantity)) {
				metrics.QuotesSkippedTotal.WithLabelValues("premium_cap").Inc()
				continue
			}

			// One attempt per decision; a failed send must not stall the feed.
			if err := submitter.SubmitBuy(q, decision); err != nil {
				log.Warn().Err(err).Str("instrument", decision.InstrumentID).Msg("order submission failed")
			}
		}
	}
}
