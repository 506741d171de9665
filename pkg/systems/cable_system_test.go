package systems

import (
	"math"
	"testing"

	"github.com/gonewx/clawmachine/pkg/anim"
	"github.com/gonewx/clawmachine/pkg/components"
	"github.com/gonewx/clawmachine/pkg/config"
)

type fakeClaw struct {
	phase    components.ClawPhase
	prize    components.Prize
	carrying bool
}

func (f *fakeClaw) Phase() components.ClawPhase { return f.phase }

func (f *fakeClaw) CarriedPrize() (components.Prize, bool) { return f.prize, f.carrying }

func newTestCable(t *testing.T) (*anim.Scheduler, *CableSystem, *fakeClaw) {
	t.Helper()
	s := anim.NewScheduler()
	c := NewCableSystem(s, config.DefaultMachineConfig())
	claw := &fakeClaw{phase: components.PhaseIdle}
	c.SetClaw(claw)
	return s, c, claw
}

func step(s *anim.Scheduler, frames int) {
	for i := 0; i < frames; i++ {
		s.Update(testFrame)
	}
}

func TestCableNudgeTiltsAndReverts(t *testing.T) {
	s, c, _ := newTestCable(t)

	c.Nudge(1)
	peak := 0.0
	for i := 0; i < 12; i++ {
		s.Update(testFrame)
		peak = math.Max(peak, c.Angle())
	}
	if peak <= 0 || peak > 4 {
		t.Errorf("tilt right should move angle into (0, 4], peak=%f", peak)
	}

	step(s, 300)
	if c.Angle() != 0 {
		t.Errorf("angle should settle back to 0, got %f", c.Angle())
	}
	if c.IsRunning() {
		t.Error("frame loop should stop once settled")
	}
	if s.PendingFrames() != 0 || s.ActiveTimers() != 0 {
		t.Errorf("settled cable left frames=%d timers=%d", s.PendingFrames(), s.ActiveTimers())
	}
}

func TestCableNudgeLeftIsNegative(t *testing.T) {
	s, c, _ := newTestCable(t)
	c.Nudge(-1)
	step(s, 5)
	if c.Angle() >= 0 {
		t.Errorf("tilt left should be negative, got %f", c.Angle())
	}
	if c.Target() != -4 {
		t.Errorf("Target: got %f, want -4", c.Target())
	}
}

func TestCableStabilizeLocksAngle(t *testing.T) {
	s, c, _ := newTestCable(t)
	c.Nudge(1)
	step(s, 5)

	c.Stabilize()
	if c.Angle() != 0 || c.Target() != 0 || !c.IsStabilizing() {
		t.Fatalf("Stabilize must zero the cable: angle=%f stabilizing=%v", c.Angle(), c.IsStabilizing())
	}

	c.Wake()
	if c.IsRunning() {
		t.Error("Wake must be ignored while stabilizing")
	}

	step(s, 60) // 1.0s > 0.8s
	if c.IsStabilizing() {
		t.Error("stabilization should end after its duration")
	}
}

func TestCableDescendingForcesZero(t *testing.T) {
	s, c, claw := newTestCable(t)
	claw.phase = components.PhaseDescending

	c.Nudge(1)
	for i := 0; i < 10; i++ {
		s.Update(testFrame)
		if c.Angle() != 0 {
			t.Fatalf("descending cable must stay at 0, got %f", c.Angle())
		}
	}
}

func TestCableAscendingSwayScalesWithWeight(t *testing.T) {
	s, c, claw := newTestCable(t)
	claw.phase = components.PhaseAscending
	claw.carrying = true
	claw.prize = components.Prize{ID: 1, Weight: 2}

	c.Wake()
	peak := 0.0
	for i := 0; i < 60; i++ {
		s.Update(testFrame)
		peak = math.Max(peak, math.Abs(c.Target()))
	}
	if peak < 3 || peak > 6 {
		t.Errorf("target amplitude should approach 3*weight=6, peak=%f", peak)
	}

	// 摆动时间窗结束后回到 0 并停止
	step(s, 300)
	if c.Angle() != 0 || c.IsRunning() {
		t.Errorf("sway should decay after the window: angle=%f running=%v", c.Angle(), c.IsRunning())
	}
}

func TestCableMovingSwayKeepsRunning(t *testing.T) {
	s, c, claw := newTestCable(t)
	claw.phase = components.PhaseMoving
	claw.carrying = true
	claw.prize = components.Prize{ID: 1, Weight: 1}

	c.Wake()
	step(s, 120)
	if !c.IsRunning() {
		t.Error("moving sway is dynamic and must keep the loop running")
	}
	if math.Abs(c.Angle()) > 1.5 {
		t.Errorf("moving sway must stay within amplitude, got %f", c.Angle())
	}
}

func TestCableReset(t *testing.T) {
	s, c, claw := newTestCable(t)
	claw.phase = components.PhaseMoving
	claw.carrying = true
	claw.prize = components.Prize{ID: 1, Weight: 1}
	c.Wake()
	c.Nudge(1)
	c.Stabilize()
	step(s, 3)

	c.Reset()
	if c.Angle() != 0 || c.IsRunning() || c.IsStabilizing() {
		t.Errorf("Reset: angle=%f running=%v stabilizing=%v", c.Angle(), c.IsRunning(), c.IsStabilizing())
	}
	if s.PendingFrames() != 0 || s.ActiveTimers() != 0 {
		t.Errorf("Reset left frames=%d timers=%d", s.PendingFrames(), s.ActiveTimers())
	}
}
