// Package stepper drives a synthetic step loop in place of a lattice solver,
// so run-time info can be exercised without a device.
package stepper

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/lbm-sim/lbm-info/sim"
)

// Config parameterizes synthetic step times.
type Config struct {
	StepTime time.Duration // mean duration of one step (must be > 0)
	Jitter   float64       // relative jitter in [0, 1); each step lasts StepTime*(1±Jitter)
	Seed     int64
}

// Stepper advances a global step counter, sleeping for each synthetic step.
//
// Thread-safety: NOT thread-safe. Must be driven from a single goroutine.
type Stepper struct {
	cfg  Config
	rng  *rand.Rand
	step uint64

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New validates cfg and creates a Stepper at step 0.
func New(cfg Config) (*Stepper, error) {
	if cfg.StepTime <= 0 {
		return nil, fmt.Errorf("step time must be > 0, got %v", cfg.StepTime)
	}
	if cfg.Jitter < 0 || cfg.Jitter >= 1 {
		return nil, fmt.Errorf("jitter must be in [0, 1), got %v", cfg.Jitter)
	}
	return &Stepper{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		now:   time.Now,
		sleep: sleepContext,
	}, nil
}

// Step returns the global step counter.
func (s *Stepper) Step() uint64 { return s.step }

// NextDuration draws the duration of the next step.
func (s *Stepper) NextDuration() time.Duration {
	if s.cfg.Jitter == 0 {
		return s.cfg.StepTime
	}
	factor := 1 + s.cfg.Jitter*(2*s.rng.Float64()-1)
	return time.Duration(float64(s.cfg.StepTime) * factor)
}

// Run executes steps synthetic steps (forever for sim.InfiniteSteps), calling
// onStep with the measured wall-clock seconds and the new global step count.
// Returns ctx.Err() if cancelled before the target is reached.
func (s *Stepper) Run(ctx context.Context, steps uint64, onStep func(dt float64, step uint64)) error {
	for i := uint64(0); steps == sim.InfiniteSteps || i < steps; i++ {
		start := s.now()
		if err := s.sleep(ctx, s.NextDuration()); err != nil {
			return err
		}
		s.step++
		onStep(s.now().Sub(start).Seconds(), s.step)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
