// Package params holds the live tuning knobs an operator may adjust between rounds.
package params

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidParameter flags values outside the allowed ranges. Startup
// must abort on it; overrides carrying it are rejected and not applied.
var ErrInvalidParameter = errors.New("invalid parameter")

// Parameters bundles the evaluator's tuning knobs. Alpha scales
// intrinsic value before the ask comparison; lower is more
// conservative. MaxExpiryHorizon caps how many ticks of remaining
// lifetime a contract may have before it is skipped.
type Parameters struct {
	Alpha            float64 `yaml:"alpha"`
	MaxExpiryHorizon int64   `yaml:"max_expiry_horizon"`
}

// Validate enforces alpha in (0, 1] and a non-negative horizon.
// Alpha above 1 would fire on fairly priced books; alpha at or below
// zero would either never fire or fire unconditionally.
func (p Parameters) Validate() error {
	if p.Alpha <= 0 || p.Alpha > 1 {
		return fmt.Errorf("%w: alpha %.4f outside (0, 1]", ErrInvalidParameter, p.Alpha)
	}
	if p.MaxExpiryHorizon < 0 {
		return fmt.Errorf("%w: max_expiry_horizon %d negative", ErrInvalidParameter, p.MaxExpiryHorizon)
	}
	return nil
}

// Store is the single update entry point for live parameters. The
// override console writes while the evaluation loop reads, so access
// is guarded; readers snapshot per quote to always see the current
// values.
type Store struct {
	mu      sync.RWMutex
	current Parameters
}

// NewStore validates the initial parameters and wraps them in a Store.
func NewStore(initial Parameters) (*Store, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	return &Store{current: initial}, nil
}

// Snapshot returns the parameters as of now.
func (s *Store) Snapshot() Parameters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set replaces the parameters atomically after validation.
func (s *Store) Set(p Parameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	return nil
}

// SetAlpha updates only alpha, keeping the horizon.
func (s *Store) SetAlpha(alpha float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current
	next.Alpha = alpha
	if err := next.Validate(); err != nil {
		return err
	}
	s.current = next
	return nil
}

// SetMaxExpiryHorizon updates only the horizon, keeping alpha.
func (s *Store) SetMaxExpiryHorizon(horizon int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current
	next.MaxExpiryHorizon = horizon
	if err := next.Validate(); err != nil {
		return err
	}
	s.current = next
	return nil
}
