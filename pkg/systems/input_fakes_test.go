package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// recordingCommands 记录收到的命令
type recordingCommands struct {
	left, right, grabs, starts, coins, resets, dismisses int
	grabAccepted                                         bool
}

func (r *recordingCommands) MoveLeft()  { r.left++ }
func (r *recordingCommands) MoveRight() { r.right++ }
func (r *recordingCommands) Grab() bool {
	r.grabs++
	return r.grabAccepted
}
func (r *recordingCommands) Start() bool {
	r.starts++
	return true
}
func (r *recordingCommands) AddCoins()       { r.coins++ }
func (r *recordingCommands) Reset()          { r.resets++ }
func (r *recordingCommands) DismissOutcome() { r.dismisses++ }

type fakeKeys struct {
	pressed map[ebiten.Key]bool
	blurred bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{pressed: make(map[ebiten.Key]bool)}
}

func (f *fakeKeys) IsKeyPressed(key ebiten.Key) bool { return f.pressed[key] }
func (f *fakeKeys) IsFocused() bool                  { return !f.blurred }

type fakePointer struct {
	pressed bool
	x, y    int
}

func (f *fakePointer) PointerState() (bool, int, int) { return f.pressed, f.x, f.y }
