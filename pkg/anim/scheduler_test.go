package anim

import (
	"math"
	"testing"
)

const frame = 1.0 / 60.0

func TestRequestFrameRunsOnNextUpdate(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.RequestFrame(func(now float64) { calls++ })

	if calls != 0 {
		t.Fatalf("frame callback ran before Update, calls=%d", calls)
	}

	s.Update(frame)
	if calls != 1 {
		t.Errorf("Expected 1 call after first Update, got %d", calls)
	}

	s.Update(frame)
	if calls != 1 {
		t.Errorf("Frame callback must run only once, got %d calls", calls)
	}
}

func TestFrameRescheduledInsideCallbackRunsNextUpdate(t *testing.T) {
	s := NewScheduler()
	calls := 0
	var loop FrameFunc
	loop = func(now float64) {
		calls++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	for i := 0; i < 5; i++ {
		s.Update(frame)
	}
	if calls != 5 {
		t.Errorf("Expected one call per Update (5), got %d", calls)
	}
}

func TestCancelFrame(t *testing.T) {
	s := NewScheduler()
	called := false
	h := s.RequestFrame(func(now float64) { called = true })
	s.CancelFrame(h)
	s.CancelFrame(h) // 重复取消是空操作
	s.CancelFrame(0)
	s.Update(frame)

	if called {
		t.Error("Cancelled frame callback must not run")
	}
	if s.PendingFrames() != 0 {
		t.Errorf("Expected no pending frames, got %d", s.PendingFrames())
	}
}

func TestCancelFrameDuringSameUpdate(t *testing.T) {
	s := NewScheduler()
	var second FrameHandle
	secondRan := false
	s.RequestFrame(func(now float64) { s.CancelFrame(second) })
	second = s.RequestFrame(func(now float64) { secondRan = true })

	s.Update(frame)
	if secondRan {
		t.Error("frame cancelled by an earlier callback in the same Update must not run")
	}
}

func TestSetTimeout(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.SetTimeout(0.5, func() { fired++ })

	s.Update(0.4)
	if fired != 0 {
		t.Fatalf("Timeout fired early at t=%.2f", s.Now())
	}
	s.Update(0.1)
	if fired != 1 {
		t.Errorf("Expected timeout to fire at t=0.5, fired=%d", fired)
	}
	s.Update(1.0)
	if fired != 1 {
		t.Errorf("Timeout must fire once, fired=%d", fired)
	}
	if s.ActiveTimers() != 0 {
		t.Errorf("Expected no active timers, got %d", s.ActiveTimers())
	}
}

func TestSetIntervalCatchesUpAndClears(t *testing.T) {
	s := NewScheduler()
	fired := 0
	h := s.SetInterval(0.1, func() { fired++ })

	s.Update(0.35)
	if fired != 3 {
		t.Errorf("Expected 3 interval firings after 0.35s, got %d", fired)
	}

	s.ClearTimer(h)
	s.ClearTimer(h)
	s.Update(1.0)
	if fired != 3 {
		t.Errorf("Interval fired after ClearTimer, fired=%d", fired)
	}
	if s.IsTimerActive(h) {
		t.Error("Timer should be inactive after ClearTimer")
	}
}

func TestTimerCancelledByEarlierTimer(t *testing.T) {
	s := NewScheduler()
	secondFired := false
	var second TimerHandle
	s.SetTimeout(0.1, func() { s.ClearTimer(second) })
	second = s.SetTimeout(0.2, func() { secondFired = true })

	s.Update(0.5)
	if secondFired {
		t.Error("Timer cleared by an earlier timer must not fire")
	}
}

func TestClear(t *testing.T) {
	s := NewScheduler()
	s.RequestFrame(func(float64) {})
	s.SetTimeout(1, func() {})
	s.SetInterval(1, func() {})
	s.Clear()

	if s.PendingFrames() != 0 || s.ActiveTimers() != 0 {
		t.Errorf("Clear left frames=%d timers=%d", s.PendingFrames(), s.ActiveTimers())
	}
}

func TestAnimateProgressAndDone(t *testing.T) {
	s := NewScheduler()
	var last float64
	done := 0
	a := Animate(s, 0.5, func(p float64) bool {
		if p < last {
			t.Errorf("progress went backwards: %f < %f", p, last)
		}
		last = p
		return false
	}, func() { done++ })

	for i := 0; i < 60; i++ {
		s.Update(frame)
	}

	if last != 1 {
		t.Errorf("Expected final progress 1, got %f", last)
	}
	if done != 1 {
		t.Errorf("Expected onDone once, got %d", done)
	}
	if a.Running() {
		t.Error("Animation should not be running after completion")
	}
	if s.PendingFrames() != 0 {
		t.Errorf("Finished animation left %d pending frames", s.PendingFrames())
	}
}

func TestAnimateStopEarly(t *testing.T) {
	s := NewScheduler()
	steps := 0
	done := false
	Animate(s, 1.0, func(p float64) bool {
		steps++
		return steps == 3
	}, func() { done = true })

	for i := 0; i < 120; i++ {
		s.Update(frame)
	}
	if steps != 3 {
		t.Errorf("Expected 3 steps before stop, got %d", steps)
	}
	if done {
		t.Error("onDone must not be called when onStep stops the animation")
	}
}

func TestAnimateCancel(t *testing.T) {
	s := NewScheduler()
	steps := 0
	a := Animate(s, 1.0, func(p float64) bool { steps++; return false }, nil)

	s.Update(frame)
	a.Cancel()
	a.Cancel()
	for i := 0; i < 10; i++ {
		s.Update(frame)
	}
	if steps != 1 {
		t.Errorf("Expected no steps after Cancel, got %d", steps)
	}

	var nilAnim *Animation
	nilAnim.Cancel()
	if nilAnim.Running() {
		t.Error("nil animation must not report running")
	}
}

func TestEasing(t *testing.T) {
	tests := []struct {
		name string
		fn   EasingFunc
		in   float64
		want float64
	}{
		{"linear mid", EaseLinear, 0.5, 0.5},
		{"out cubic start", EaseOutCubic, 0, 0},
		{"out cubic end", EaseOutCubic, 1, 1},
		{"out cubic mid", EaseOutCubic, 0.5, 0.875},
		{"in quad mid", EaseInQuad, 0.5, 0.25},
		{"out quad mid", EaseOutQuad, 0.5, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}

	if Lerp(10, 20, 0.25) != 12.5 {
		t.Errorf("Lerp(10,20,0.25) = %f", Lerp(10, 20, 0.25))
	}
	if Clamp(5, 0, 1) != 1 || Clamp(-1, 0, 1) != 0 {
		t.Error("Clamp out of range")
	}
}
