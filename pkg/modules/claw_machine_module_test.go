package modules

import (
	"testing"

	"github.com/gonewx/clawmachine/pkg/components"
	"github.com/gonewx/clawmachine/pkg/config"
	"github.com/gonewx/clawmachine/pkg/game"
)

const testFrame = 1.0 / 60.0

func newTestModule(t *testing.T, prizes []config.PrizeConfig) *ClawMachineModule {
	t.Helper()
	cfg := config.DefaultMachineConfig()
	if prizes != nil {
		cfg.Prizes = prizes
	}
	m := NewClawMachineModule(cfg, game.NewSession(cfg), nil)
	t.Cleanup(m.Close)
	return m
}

func runFrames(m *ClawMachineModule, frames int) {
	for i := 0; i < frames; i++ {
		m.Update(testFrame)
	}
}

func runUntilIdle(t *testing.T, m *ClawMachineModule) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		m.Update(testFrame)
		if m.Claw().Phase == components.PhaseIdle {
			return
		}
	}
	t.Fatal("claw did not return to idle")
}

func TestModuleWinCycle(t *testing.T) {
	m := newTestModule(t, []config.PrizeConfig{
		{ID: 1, X: 200, Y: 300, Radius: 16, Weight: 1, Rarity: "rare"},
		{ID: 2, X: 320, Y: 420, Radius: 16, Weight: 1, Rarity: "normal"},
	})

	if !m.Start() {
		t.Fatal("Start() should succeed")
	}
	if !m.Grab() {
		t.Fatal("Grab() should succeed")
	}

	sawGrabbedView := false
	for i := 0; i < 1000; i++ {
		m.Update(testFrame)
		for _, v := range m.Prizes() {
			if v.Grabbed {
				sawGrabbedView = true
				if v.Prize.ID != 1 || v.Y != m.Claw().Y+m.Config().Claw.GrabOffset {
					t.Fatalf("grabbed view should follow the claw: %+v", v)
				}
			}
		}
		if m.Claw().Phase == components.PhaseIdle {
			break
		}
	}
	if !sawGrabbedView {
		t.Error("prize view should be marked grabbed while carried")
	}

	s := m.Session()
	if s.Score() != 50 || len(s.CollectedPrizes()) != 1 || s.Field().Len() != 1 {
		t.Errorf("after win: score=%d collected=%d inMachine=%d",
			s.Score(), len(s.CollectedPrizes()), s.Field().Len())
	}
	if len(m.Prizes()) != 1 {
		t.Errorf("won prize must disappear from the machine view, got %d views", len(m.Prizes()))
	}
}

func TestModuleStartRequiresIdleClaw(t *testing.T) {
	m := newTestModule(t, nil)
	m.Start()
	m.Grab()
	coins := m.Session().Coins()

	if m.Start() {
		t.Error("Start() must be rejected while the claw is busy")
	}
	if m.Session().Coins() != coins {
		t.Error("rejected Start() must not consume a coin")
	}
}

func TestModuleStartResetsClawPosition(t *testing.T) {
	m := newTestModule(t, []config.PrizeConfig{{ID: 1, X: 380, Y: 420, Radius: 10, Weight: 1, Rarity: "normal"}})
	m.Start()
	m.MoveLeft()
	m.MoveLeft()
	if m.Claw().X == m.Config().Machine.NeutralX {
		t.Fatal("claw should have moved")
	}
	m.Grab()
	runUntilIdle(t, m)

	// 失败结果后再玩一次
	m.MoveLeft() // 会话非激活，忽略
	if !m.PlayAgain() {
		t.Fatal("PlayAgain() should start a new game")
	}
	if m.Claw().X != m.Config().Machine.NeutralX || m.Claw().Y != m.Config().Machine.TopY {
		t.Errorf("Start must put the claw at neutral: %+v", m.Claw())
	}
	if m.Session().IsOutcomeShown() {
		t.Error("Start must clear the previous outcome")
	}
}

func TestModuleResetMidCycle(t *testing.T) {
	m := newTestModule(t, nil)
	m.Start()
	m.Grab()
	runFrames(m, 30)

	m.Reset()
	runFrames(m, 600)

	if m.Claw().Phase != components.PhaseIdle {
		t.Errorf("Phase: got %s, want idle", m.Claw().Phase)
	}
	s := m.Session()
	if _, ok := s.Outcome(); ok {
		t.Error("reset must not produce an outcome")
	}
	if s.Coins() != 5 || s.Score() != 0 || s.IsActive() || s.Field().Len() != 10 {
		t.Errorf("reset state: coins=%d score=%d active=%v inMachine=%d",
			s.Coins(), s.Score(), s.IsActive(), s.Field().Len())
	}
	if m.SwayAngle() != 0 || m.IsStabilizing() {
		t.Error("cable must be at rest after reset")
	}
}

func TestModuleDismissClearsDroppedPrizes(t *testing.T) {
	m := newTestModule(t, []config.PrizeConfig{{ID: 1, X: 200, Y: 300, Radius: 16, Weight: 1, Rarity: "normal"}})
	m.Start()
	m.Grab()

	sawDrop := false
	for i := 0; i < 1000 && !sawDrop; i++ {
		m.Update(testFrame)
		sawDrop = len(m.DroppedPrizes()) > 0
	}
	if !sawDrop {
		t.Fatal("win should create a dropped prize")
	}
	if got := m.DroppedPrizes()[0].Phase; got != components.DropEntering {
		t.Errorf("dropped prize phase: got %s, want entering", got)
	}

	m.DismissOutcome()
	m.Update(testFrame)
	if len(m.DroppedPrizes()) != 0 {
		t.Error("DismissOutcome must clear dropped prizes")
	}
	if m.Session().IsOutcomeShown() {
		t.Error("outcome should be dismissed")
	}
}

func TestModuleHoldMovesViaHoldInput(t *testing.T) {
	m := newTestModule(t, nil)
	m.Start()

	m.Hold().StartHolding("right", m.MoveRight)
	runFrames(m, 21) // 0.35s
	m.Hold().StopHolding("right")

	want := m.Config().Machine.NeutralX + 4*m.Config().Machine.MoveStep
	if m.Claw().X != want {
		t.Errorf("X after hold: got %.1f, want %.1f", m.Claw().X, want)
	}
}

func TestModuleClose(t *testing.T) {
	m := newTestModule(t, nil)
	m.Start()
	m.Grab()
	runFrames(m, 10)

	m.Close()
	m.Close()
	before := m.Claw()
	runFrames(m, 300)

	if m.Claw() != before {
		t.Error("no state may change after Close()")
	}
	if m.Grab() || m.Start() {
		t.Error("commands must be ignored after Close()")
	}
}
