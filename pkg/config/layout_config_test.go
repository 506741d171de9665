package config

import (
	"testing"
)

func TestControlButtonsFitWindow(t *testing.T) {
	for _, b := range ControlButtons {
		if b.X < 0 || b.Y < 0 || b.X+b.W > GameWindowWidth || b.Y+b.H > GameWindowHeight {
			t.Errorf("button %s is outside the window: %+v", b.ID, b)
		}
	}
}

func TestControlButtonsDoNotOverlap(t *testing.T) {
	for i, a := range ControlButtons {
		for _, b := range ControlButtons[i+1:] {
			if a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H {
				t.Errorf("buttons %s and %s overlap", a.ID, b.ID)
			}
		}
	}
}

func TestMachineFitsWindow(t *testing.T) {
	cfg := DefaultMachineConfig()
	right, bottom := MachineToScreen(cfg.Machine.Width, cfg.Machine.Height)
	if right > HUDX {
		t.Errorf("machine overlaps the HUD: right edge %.1f > %.1f", right, HUDX)
	}
	if bottom > GameWindowHeight {
		t.Errorf("machine is taller than the window: %.1f", bottom)
	}

	x, y := MachineToScreen(0, 0)
	if x != MachineScreenX || y != MachineScreenY {
		t.Errorf("MachineToScreen(0,0) = (%.1f,%.1f)", x, y)
	}
}
