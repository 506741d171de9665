package systems

import (
	"testing"

	"github.com/gonewx/clawmachine/pkg/anim"
	"github.com/gonewx/clawmachine/pkg/utils"
)

func newPointerHarness() (*anim.Scheduler, *fakePointer, *recordingCommands, *HoldInput, *PointerButtonSystem) {
	s := anim.NewScheduler()
	p := &fakePointer{}
	cmds := &recordingCommands{}
	hold := NewHoldInput(s, 0.1, 0.15)
	buttons := []ScreenButton{
		{ID: ButtonLeft, Label: "<", Rect: utils.Rect{X: 0, Y: 0, W: 50, H: 50}},
		{ID: ButtonGrab, Label: "GRAB", Rect: utils.Rect{X: 60, Y: 0, W: 50, H: 50}},
		{ID: ButtonCoin, Label: "COIN", Rect: utils.Rect{X: 120, Y: 0, W: 50, H: 50}},
	}
	return s, p, cmds, hold, NewPointerButtonSystem(p, cmds, hold, buttons)
}

func TestPointerHoldAndRelease(t *testing.T) {
	s, p, cmds, hold, sys := newPointerHarness()

	p.pressed, p.x, p.y = true, 10, 10
	for i := 0; i < 12; i++ { // 0.2s
		sys.Update()
		s.Update(testFrame)
	}
	if cmds.left != 3 {
		t.Errorf("expected 3 moves after 0.2s, got %d", cmds.left)
	}
	if !hold.IsPressed(ButtonLeft) || sys.ActiveButton() != ButtonLeft {
		t.Error("left should be pressed and active")
	}

	p.pressed = false
	sys.Update()
	if hold.IsHolding(ButtonLeft) || sys.ActiveButton() != "" {
		t.Error("release must stop holding")
	}
}

func TestPointerLeaveReleases(t *testing.T) {
	_, p, _, hold, sys := newPointerHarness()

	p.pressed, p.x, p.y = true, 10, 10
	sys.Update()
	p.x = 300
	sys.Update()
	if hold.IsHolding(ButtonLeft) {
		t.Error("moving the pointer off the button must release it")
	}

	// 拖回按钮上不会重新触发
	p.x = 10
	sys.Update()
	if hold.IsHolding(ButtonLeft) {
		t.Error("dragging back onto the button must not press it again")
	}
}

func TestPointerSingleShotButtons(t *testing.T) {
	_, p, cmds, _, sys := newPointerHarness()

	p.pressed, p.x, p.y = true, 70, 10
	for i := 0; i < 10; i++ {
		sys.Update()
	}
	p.pressed = false
	sys.Update()
	p.pressed, p.x = true, 130
	sys.Update()

	if cmds.grabs != 1 || cmds.coins != 1 {
		t.Errorf("grab=%d coin=%d, want 1 each", cmds.grabs, cmds.coins)
	}
}

func TestPointerMissDoesNothing(t *testing.T) {
	_, p, cmds, _, sys := newPointerHarness()
	p.pressed, p.x, p.y = true, 500, 500
	sys.Update()
	if cmds.left+cmds.grabs+cmds.coins != 0 || sys.ActiveButton() != "" {
		t.Error("press outside all buttons must be ignored")
	}
}
