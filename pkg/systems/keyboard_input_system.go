package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// MachineCommands 输入系统可以发出的命令
type MachineCommands interface {
	MoveLeft()
	MoveRight()
	Grab() bool
	Start() bool
	AddCoins()
	Reset()
	DismissOutcome()
}

// KeySource 键盘状态来源
type KeySource interface {
	IsKeyPressed(key ebiten.Key) bool
	IsFocused() bool
}

// EbitenKeySource 从 ebiten 读取键盘状态
type EbitenKeySource struct{}

// IsKeyPressed 实现 KeySource
func (EbitenKeySource) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// IsFocused 实现 KeySource
func (EbitenKeySource) IsFocused() bool {
	return ebiten.IsFocused()
}

// actionDismiss 只有键盘绑定的关闭结果动作
const actionDismiss = "dismiss"

type keyBinding struct {
	key    ebiten.Key
	button string
}

// keyBindings 同一个按钮可以绑定多个键
var keyBindings = []keyBinding{
	{ebiten.KeyArrowLeft, ButtonLeft},
	{ebiten.KeyA, ButtonLeft},
	{ebiten.KeyArrowRight, ButtonRight},
	{ebiten.KeyD, ButtonRight},
	{ebiten.KeySpace, ButtonGrab},
	{ebiten.KeyArrowDown, ButtonGrab},
	{ebiten.KeyEnter, ButtonStart},
	{ebiten.KeyC, ButtonCoin},
	{ebiten.KeyR, ButtonReset},
	{ebiten.KeyEscape, actionDismiss},
}

// KeyboardInputSystem 键盘输入
//
// 自己做按下/松开的边沿检测：按住期间的系统重复事件不会重复触发，
// 左右移动交给 HoldInput 重复执行，其余按钮每次按下只触发一次。
// 窗口失去焦点时松开所有按键，避免按键卡住。
type KeyboardInputSystem struct {
	keys     KeySource
	commands MachineCommands
	hold     *HoldInput
	down     map[ebiten.Key]bool
}

// NewKeyboardInputSystem 创建键盘输入系统
func NewKeyboardInputSystem(keys KeySource, commands MachineCommands, hold *HoldInput) *KeyboardInputSystem {
	return &KeyboardInputSystem{
		keys:     keys,
		commands: commands,
		hold:     hold,
		down:     make(map[ebiten.Key]bool),
	}
}

// Update 每帧调用一次
func (s *KeyboardInputSystem) Update() {
	if !s.keys.IsFocused() {
		s.ReleaseAll()
		return
	}

	for _, b := range keyBindings {
		pressed := s.keys.IsKeyPressed(b.key)
		wasDown := s.down[b.key]
		switch {
		case pressed && !wasDown:
			s.down[b.key] = true
			s.onKeyDown(b.button)
		case !pressed && wasDown:
			delete(s.down, b.key)
			s.onKeyUp(b.button)
		}
	}
}

// ReleaseAll 松开所有按键
func (s *KeyboardInputSystem) ReleaseAll() {
	if len(s.down) == 0 {
		return
	}
	log.Printf("[KeyboardInputSystem] 失去焦点，松开 %d 个按键", len(s.down))
	for k := range s.down {
		delete(s.down, k)
	}
	s.hold.StopHolding(ButtonLeft)
	s.hold.StopHolding(ButtonRight)
}

func (s *KeyboardInputSystem) onKeyDown(button string) {
	switch button {
	case ButtonLeft:
		s.hold.Press(button)
		s.hold.StartHolding(button, s.commands.MoveLeft)
	case ButtonRight:
		s.hold.Press(button)
		s.hold.StartHolding(button, s.commands.MoveRight)
	case ButtonGrab:
		s.hold.Press(button)
		s.commands.Grab()
	case ButtonStart:
		s.commands.Start()
	case ButtonCoin:
		s.commands.AddCoins()
	case ButtonReset:
		s.commands.Reset()
	case actionDismiss:
		s.commands.DismissOutcome()
	}
}

func (s *KeyboardInputSystem) onKeyUp(button string) {
	if button != ButtonLeft && button != ButtonRight {
		return
	}
	// 同一按钮的其他键仍按着时保持
	for _, b := range keyBindings {
		if b.button == button && s.down[b.key] {
			return
		}
	}
	s.hold.StopHolding(button)
}
