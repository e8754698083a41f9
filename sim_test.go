package logic_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	logic "github.com/ilyas-taouaou/codotaku-logic"
)

// blinker returns a simulation of Clock -> Output so fired ticks are
// observable through the output payload.
func blinker(t *testing.T, opts ...logic.Option) (*logic.Simulation, logic.NodeID) {
	t.Helper()
	g := logic.NewGraph()
	clk := g.Insert(logic.Position{}, logic.KindClock)
	out := g.Insert(logic.Position{}, logic.KindOutput)
	if err := g.Connect(clk, out, 0); err != nil {
		t.Fatal(err)
	}
	return logic.NewSimulation(g, opts...), out
}

func TestAdvance_period(t *testing.T) {
	s, _ := blinker(t, logic.WithRate(10)) // period 100ms

	if s.Advance(50 * time.Millisecond) {
		t.Error("fired before the period elapsed")
	}
	if !s.Advance(50 * time.Millisecond) {
		t.Error("did not fire once the period elapsed")
	}
	if s.Tick() != 1 {
		t.Errorf("tick = %d, want 1", s.Tick())
	}

	// leftover time carries over
	if s.Advance(99 * time.Millisecond) {
		t.Error("fired early")
	}
	if !s.Advance(1 * time.Millisecond) {
		t.Error("carried-over time was lost")
	}
	if s.Tick() != 2 {
		t.Errorf("tick = %d, want 2", s.Tick())
	}
}

func TestAdvance_atMostOneTickPerFrame(t *testing.T) {
	s, _ := blinker(t, logic.WithRate(10))

	// a long stall is worth at most one immediate tick plus one banked period
	if !s.Advance(10 * time.Second) {
		t.Fatal("expected a tick after a long frame")
	}
	if !s.Advance(0) {
		t.Error("one banked period should fire on the next frame")
	}
	if s.Advance(0) {
		t.Error("the stall burst into more than two ticks")
	}
}

func TestRate_zeroFiresEveryFrame(t *testing.T) {
	s, _ := blinker(t, logic.WithRate(0))
	for i := 0; i < 5; i++ {
		if !s.Advance(0) {
			t.Fatalf("frame %d: rate 0 must fire every frame", i)
		}
	}
	if s.Tick() != 5 {
		t.Errorf("tick = %d, want 5", s.Tick())
	}

	s.SetRate(-3)
	if s.Rate() != 0 {
		t.Errorf("negative rate should clamp to 0, got %v", s.Rate())
	}
}

func TestPauseAndStep(t *testing.T) {
	s, out := blinker(t, logic.WithRate(0))

	if !s.Running() {
		t.Fatal("new simulation should be running")
	}
	if s.Step() {
		t.Error("Step fired while running")
	}

	s.Pause()
	if s.Running() {
		t.Fatal("Pause did not pause")
	}
	if s.Advance(time.Hour) {
		t.Error("Advance fired while paused")
	}
	if s.Tick() != 0 {
		t.Errorf("paused tick counter moved to %d", s.Tick())
	}

	if !s.Step() {
		t.Fatal("Step did not fire while paused")
	}
	if s.Tick() != 1 {
		t.Errorf("tick = %d, want 1", s.Tick())
	}
	// the step ran a refresh: tick 1 is odd, clock low
	if v, _ := s.Graph().Payload(out); v {
		t.Error("output not refreshed by Step")
	}
	if !s.Step() {
		t.Fatal("second Step did not fire")
	}
	if v, _ := s.Graph().Payload(out); !v {
		t.Error("consecutive refreshes must differ for a clock source")
	}

	s.Resume()
	if !s.Running() {
		t.Fatal("Resume did not resume")
	}
	if !s.Advance(0) {
		t.Error("Advance did not fire after Resume")
	}
}

func TestPause_preservesAccumulatedTime(t *testing.T) {
	s, _ := blinker(t, logic.WithRate(10)) // period 100ms

	if s.Advance(90 * time.Millisecond) {
		t.Fatal("fired early")
	}
	s.Pause()
	s.Resume()
	if !s.Advance(10 * time.Millisecond) {
		t.Error("pause/resume lost accumulated time")
	}

	s.TogglePause()
	if s.Running() {
		t.Error("TogglePause did not pause")
	}
	s.TogglePause()
	if !s.Running() {
		t.Error("TogglePause did not resume")
	}
}

func TestWithPaused(t *testing.T) {
	s, _ := blinker(t, logic.WithPaused())
	if s.Running() {
		t.Error("WithPaused simulation started running")
	}
	if !s.Step() {
		t.Error("Step should fire on a paused simulation")
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, _ := blinker(t, logic.WithRate(0), logic.WithLogger(l))

	s.Advance(0)
	s.Pause()
	if !bytes.Contains(buf.Bytes(), []byte("tick")) || !bytes.Contains(buf.Bytes(), []byte("paused")) {
		t.Errorf("expected tick and pause events in the log, got %q", buf.String())
	}
}

func TestDefaultRate(t *testing.T) {
	s, _ := blinker(t)
	if s.Rate() != logic.DefaultRate {
		t.Errorf("rate = %v, want %v", s.Rate(), logic.DefaultRate)
	}
}
