// Package scheduler runs the booking report once at startup and then on a fixed interval.
package scheduler

import (
	"context"
	"fmt"
	"garagebook/config"
	"garagebook/internal/domains/report/model"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultIntervalMinutes = 5
	cycleTimeoutDivisor    = 2
)

type State int32

const (
	StateIdle State = iota
	StateRunning
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

type Reporter interface {
	Generate(ctx context.Context, previous *model.Report, isPeriodic bool) (model.Cycle, error)
}

type Status struct {
	State       string     `json:"state"`
	Interval    string     `json:"interval"`
	LastRun     *time.Time `json:"last_run,omitempty"`
	LastSuccess *time.Time `json:"last_success,omitempty"`
}

// Scheduler never runs two cycles at once: ticks are handled by a single goroutine.
type Scheduler struct {
	reporter    Reporter
	interval    time.Duration
	state       atomic.Int32
	lastRun     atomic.Pointer[time.Time]
	lastSuccess atomic.Pointer[time.Time]
	done        chan struct{}
}

func New(cfg *config.Config, reporter Reporter) *Scheduler {
	minutes := cfg.Report.IntervalMinutes
	if minutes <= 0 {
		minutes = defaultIntervalMinutes
	}

	return NewWithInterval(reporter, time.Duration(minutes)*time.Minute)
}

func NewWithInterval(reporter Reporter, interval time.Duration) *Scheduler {
	return &Scheduler{
		reporter: reporter,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start runs the first report synchronously and returns its error. On success the periodic
// loop is started and runs until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Dur("interval", s.interval).Msg("running initial booking report")

	cycle, err := s.run(ctx, nil, false)
	if err != nil {
		close(s.done)

		return fmt.Errorf("initial booking report failed: %w", err)
	}

	go s.loop(ctx, cycle.Report)

	return nil
}

// Done is closed once the loop has exited.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

func (s *Scheduler) State() State {
	return State(s.state.Load())
}

func (s *Scheduler) Status() Status {
	return Status{
		State:       s.State().String(),
		Interval:    s.interval.String(),
		LastRun:     s.lastRun.Load(),
		LastSuccess: s.lastSuccess.Load(),
	}
}

func (s *Scheduler) loop(ctx context.Context, previous model.Report) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("booking report scheduler stopped")

			return
		case <-ticker.C:
			cycle, err := s.run(ctx, &previous, true)
			if err != nil {
				log.Error().Err(err).Msg("periodic booking report failed")

				continue
			}

			previous = cycle.Report
		}
	}
}

func (s *Scheduler) run(ctx context.Context, previous *model.Report, isPeriodic bool) (model.Cycle, error) {
	s.state.Store(int32(StateRunning))

	started := time.Now()
	s.lastRun.Store(&started)

	cycleCtx, cancel := context.WithTimeout(ctx, s.interval/cycleTimeoutDivisor)
	defer cancel()

	cycle, err := s.reporter.Generate(cycleCtx, previous, isPeriodic)
	if err != nil {
		s.state.Store(int32(StateFailed))

		return cycle, err
	}

	finished := time.Now()
	s.lastSuccess.Store(&finished)
	s.state.Store(int32(StateIdle))

	log.Debug().Dur("took", finished.Sub(started)).Int("alerts", len(cycle.Alerts)).Msg("booking report cycle finished")

	return cycle, nil
}
