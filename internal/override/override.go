// Package override is the manual channel for retuning the bot mid-round.
package override

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/PapakMate/algotrade-2025-data-diggers/internal/params"
)

// Console reads operator commands line by line and applies them to the
// live parameter store. Accepted forms:
//
//	0.9            set alpha
//	alpha 0.9      set alpha
//	horizon 800    set max expiry horizon (ticks)
//	show           log current parameters
//
// Invalid values are rejected by the store and reported; the previous
// parameters stay in effect.
type Console struct {
	store *params.Store
	log   zerolog.Logger
}

// NewConsole wires the parameter store and a logger.
func NewConsole(store *params.Store, log zerolog.Logger) *Console {
	return &Console{store: store, log: log}
}

// Run consumes commands until the reader is exhausted or the context
// is canceled. It is meant to run in its own goroutine alongside the
// quote loop.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Apply(scanner.Text())
	}
	return scanner.Err()
}

// Apply handles a single command line.
func (c *Console) Apply(line string) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return
	}

	switch {
	case fields[0] == "show":
		p := c.store.Snapshot()
		c.log.Info().Float64("alpha", p.Alpha).Int64("horizon", p.MaxExpiryHorizon).Msg("current parameters")

	case fields[0] == "alpha" && len(fields) == 2:
		c.setAlpha(fields[1])

	case fields[0] == "horizon" && len(fields) == 2:
		horizon, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			c.log.Warn().Str("input", fields[1]).Msg("horizon is not an integer")
			return
		}
		if err := c.store.SetMaxExpiryHorizon(horizon); err != nil {
			c.log.Warn().Err(err).Msg("horizon override rejected")
			return
		}
		c.log.Info().Int64("horizon", horizon).Msg("horizon updated")

	case len(fields) == 1:
		c.setAlpha(fields[0])

	default:
		c.log.Warn().Str("input", line).Msg("unrecognized override command")
	}
}

func (c *Console) setAlpha(raw string) {
	alpha, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.log.Warn().Str("input", raw).Msg("alpha is not a number")
		return
	}
	if err := c.store.SetAlpha(alpha); err != nil {
		c.log.Warn().Err(err).Msg("alpha override rejected")
		return
	}
	c.log.Info().Float64("alpha", alpha).Msg("alpha updated")
}
