package logic

import (
	"io"
	"log/slog"
	"time"
)

// DefaultRate is the tick rate of a new Simulation, in Hz.
const DefaultRate = 10

// A Simulation drives the repeated evaluation of a Graph. The host loop
// calls Advance once per rendered frame with the elapsed wall time; while
// running, the simulation accumulates that time against the tick period and
// fires at most one tick per frame. While paused the timer does not
// accumulate and ticks fire only through explicit Step calls.
//
// Every fired tick increments the tick counter by exactly one and then runs
// one full Graph.Refresh. The refresh is atomic with respect to the caller:
// mutation and payload reads happen between Advance calls, never inside one.
type Simulation struct {
	graph  *Graph
	log    *slog.Logger
	tick   uint64
	hz     float64
	period time.Duration
	acc    time.Duration
	paused bool
}

// An Option configures a Simulation.
type Option func(*Simulation)

// WithRate sets the initial tick rate in Hz. See SetRate.
func WithRate(hz float64) Option {
	return func(s *Simulation) { s.SetRate(hz) }
}

// WithLogger sets the logger used for tick and state change events, logged
// at Debug level. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) { s.log = l }
}

// WithPaused starts the simulation paused.
func WithPaused() Option {
	return func(s *Simulation) { s.paused = true }
}

// NewSimulation returns a simulation of g, running at DefaultRate.
func NewSimulation(g *Graph, opts ...Option) *Simulation {
	s := &Simulation{
		graph: g,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	s.SetRate(DefaultRate)
	for _, o := range opts {
		o(s)
	}
	return s
}

// Graph returns the simulated graph.
func (s *Simulation) Graph() *Graph { return s.graph }

// Tick returns the current tick count. It starts at zero and increases by
// one per fired tick, never resetting.
func (s *Simulation) Tick() uint64 { return s.tick }

// Running reports whether the simulation is running (as opposed to paused).
func (s *Simulation) Running() bool { return !s.paused }

// Pause stops the timer from accumulating. The accumulated time and the tick
// counter are preserved.
func (s *Simulation) Pause() {
	if s.paused {
		return
	}
	s.paused = true
	s.log.Debug("paused", "tick", s.tick)
}

// Resume restarts the timer from its preserved accumulated time.
func (s *Simulation) Resume() {
	if !s.paused {
		return
	}
	s.paused = false
	s.log.Debug("resumed", "tick", s.tick)
}

// TogglePause flips between running and paused.
func (s *Simulation) TogglePause() {
	if s.paused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Rate returns the tick rate in Hz.
func (s *Simulation) Rate() float64 { return s.hz }

// SetRate sets the tick rate in Hz; the tick period is 1/hz. A rate of zero
// means a period of zero: a tick fires on every frame, the fastest the host
// loop allows. Negative rates clamp to zero.
func (s *Simulation) SetRate(hz float64) {
	if hz < 0 {
		hz = 0
	}
	s.hz = hz
	if hz == 0 {
		s.period = 0
	} else {
		s.period = time.Duration(float64(time.Second) / hz)
	}
	s.log.Debug("rate changed", "hz", hz, "period", s.period)
}

// Advance feeds one frame's elapsed wall time to the timer and fires at most
// one tick. It reports whether a tick fired. While paused, Advance does
// nothing. Leftover time beyond the period carries into the next frame but
// is capped at one period, so a long stall does not burst into a catch-up
// run of ticks.
func (s *Simulation) Advance(dt time.Duration) bool {
	if s.paused {
		return false
	}
	s.acc += dt
	if s.acc < s.period {
		return false
	}
	s.acc -= s.period
	if s.acc > s.period {
		s.acc = s.period
	}
	s.fire()
	return true
}

// Step fires exactly one tick immediately, bypassing the timer. It is only
// valid while paused and reports whether a tick fired.
func (s *Simulation) Step() bool {
	if !s.paused {
		return false
	}
	s.fire()
	return true
}

func (s *Simulation) fire() {
	s.tick++
	s.graph.Refresh(s.tick)
	s.log.Debug("tick", "tick", s.tick)
}
