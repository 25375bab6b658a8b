// Binary paper runs the evaluation loop against the stub feed and a
// virtual account, so the rule can be watched without an exchange.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/PapakMate/algotrade-2025-data-diggers/internal/config"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/exchange"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/execution"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/metrics"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/override"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/paper"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/params"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/pricer"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/quote"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/risk"
	"github.com/PapakMate/algotrade-2025-data-diggers/internal/util"
)

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to the YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := util.NewLogger("info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log, session := util.WithSession(util.NewLogger(cfg.App.LogLevel))
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	_ = metrics.Serve(cfg.App.MetricsAddr)

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := params.NewStore(cfg.Parameters())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid parameters")
	}

	feed := exchange.NewFeed(exchange.ProviderStub, log)
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
	submitter := execution.NewLogSubmitter(log)
	account := paper.NewAccount(cfg.Paper.StartingCash, cfg.Paper.MaxContractsPerInstrument)
	ledger := paper.NewLedger(256)

	var recorder paper.FillRecorder = ledger
	if cfg.Paper.FillsPath != "" {
		jsonl, err := paper.NewJSONLRecorder(cfg.Paper.FillsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open fills recorder")
		}
		defer jsonl.Close()
		recorder = jsonl
	}

	log.Info().Float64("cash", account.StartingCash()).Msg("paper engine started")
	for {
		select {
		case <-ctx.Done():
			snap := account.Snapshot(nil)
			log.Info().Float64("cash", snap.Cash).Float64("realized", snap.RealizedPnL).Msg("shutting down")
			return
		case q := <-quotes:
			if err := q.Validate(); err != nil {
				metrics.QuotesSkippedTotal.WithLabelValues("malformed").Inc()
				log.Warn().Err(err).Msg("skipping malformed quote")
				continue
			}

			decision := evaluator.Evaluate(q, store.Snapshot())
			if decision.Action != quote.Buy {
				continue
			}
			if !limits.Allow(decision.Price * float64(decision.Quantity)) {
				continue
			}
			if err := account.BuyContracts(decision.InstrumentID, decision.Quantity, decision.Price); err != nil {
				log.Warn().Err(err).Str("instrument", decision.InstrumentID).Msg("paper fill rejected")
				continue
			}
			if err := submitter.SubmitBuy(q, decision); err != nil {
				log.Warn().Err(err).Msg("order submission failed")
			}
			recorder.Record(execution.Fill{
				InstrumentID: decision.InstrumentID,
				Symbol:       q.Symbol,
				Type:         string(q.Type),
				Quantity:     decision.Quantity,
				Premium:      decision.Price,
				Tick:         q.Tick,
				Session:      session,
				Ts:           time.Now(),
			})
		}
	}
}
