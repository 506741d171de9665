package systems

import (
	"github.com/gonewx/clawmachine/pkg/utils"
)

// PointerSource 指针（鼠标左键或触摸）状态来源
type PointerSource interface {
	PointerState() (pressed bool, x, y int)
}

// EbitenPointerSource 从 ebiten 读取鼠标/触摸状态
type EbitenPointerSource struct{}

// PointerState 实现 PointerSource
func (EbitenPointerSource) PointerState() (bool, int, int) {
	return utils.GetPointerState()
}

// ScreenButton 屏幕按钮
type ScreenButton struct {
	ID    string
	Label string
	Rect  utils.Rect
}

// PointerButtonSystem 屏幕按钮输入
//
// 按下时命中的按钮成为活动按钮：左右按钮按住重复移动，
// 松开或指针移出按钮时停止；其他按钮按下时触发一次。
type PointerButtonSystem struct {
	pointer  PointerSource
	commands MachineCommands
	hold     *HoldInput
	buttons  []ScreenButton

	active     string
	wasPressed bool
}

// NewPointerButtonSystem 创建屏幕按钮输入系统
func NewPointerButtonSystem(pointer PointerSource, commands MachineCommands, hold *HoldInput, buttons []ScreenButton) *PointerButtonSystem {
	return &PointerButtonSystem{
		pointer:  pointer,
		commands: commands,
		hold:     hold,
		buttons:  buttons,
	}
}

// Buttons 返回按钮列表（渲染用）
func (s *PointerButtonSystem) Buttons() []ScreenButton {
	return s.buttons
}

// ActiveButton 当前按住的按钮ID，没有时为空字符串
func (s *PointerButtonSystem) ActiveButton() string {
	return s.active
}

// Update 每帧调用一次
func (s *PointerButtonSystem) Update() {
	pressed, x, y := s.pointer.PointerState()

	if !pressed {
		s.wasPressed = false
		s.release()
		return
	}

	if !s.wasPressed {
		s.wasPressed = true
		if b, ok := s.hit(x, y); ok {
			s.active = b.ID
			s.onDown(b.ID)
		}
		return
	}

	// 按住时移出按钮等同于松开
	if s.active != "" {
		if b, ok := s.button(s.active); !ok || !b.Rect.Contains(x, y) {
			s.release()
		}
	}
}

// ReleaseAll 松开活动按钮（失焦、卸载时调用）
func (s *PointerButtonSystem) ReleaseAll() {
	s.wasPressed = false
	s.release()
}

func (s *PointerButtonSystem) release() {
	if s.active == "" {
		return
	}
	s.hold.StopHolding(s.active)
	s.active = ""
}

func (s *PointerButtonSystem) hit(x, y int) (ScreenButton, bool) {
	for _, b := range s.buttons {
		if b.Rect.Contains(x, y) {
			return b, true
		}
	}
	return ScreenButton{}, false
}

func (s *PointerButtonSystem) button(id string) (ScreenButton, bool) {
	for _, b := range s.buttons {
		if b.ID == id {
			return b, true
		}
	}
	return ScreenButton{}, false
}

func (s *PointerButtonSystem) onDown(id string) {
	s.hold.Press(id)
	switch id {
	case ButtonLeft:
		s.hold.StartHolding(id, s.commands.MoveLeft)
	case ButtonRight:
		s.hold.StartHolding(id, s.commands.MoveRight)
	case ButtonGrab:
		s.commands.Grab()
	case ButtonStart:
		s.commands.Start()
	case ButtonCoin:
		s.commands.AddCoins()
	case ButtonReset:
		s.commands.Reset()
	}
}
