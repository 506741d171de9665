package systems

import (
	"sort"

	"github.com/gonewx/clawmachine/pkg/anim"
)

// 按钮ID（屏幕按钮和键盘共用）
const (
	ButtonLeft  = "left"
	ButtonRight = "right"
	ButtonGrab  = "grab"
	ButtonStart = "start"
	ButtonCoin  = "coin"
	ButtonReset = "reset"
)

// HoldInput 把离散的按下/松开转换为连续的重复命令
//
// 保证：
//   - 每个按钮ID同一时刻最多只有一个重复计时器
//   - StopHolding 对未按住的按钮是空操作
//   - Press 的高亮只是视觉反馈，不影响逻辑
type HoldInput struct {
	scheduler      *anim.Scheduler
	repeatInterval float64
	pressDuration  float64

	held    map[string]anim.TimerHandle
	pressed map[string]anim.TimerHandle
}

// NewHoldInput 创建按住重复输入适配器
//
// 参数:
//   - s: 调度器
//   - repeatInterval: 按住时重复触发的间隔（秒）
//   - pressDuration: 按下高亮持续时间（秒）
func NewHoldInput(s *anim.Scheduler, repeatInterval, pressDuration float64) *HoldInput {
	return &HoldInput{
		scheduler:      s,
		repeatInterval: repeatInterval,
		pressDuration:  pressDuration,
		held:           make(map[string]anim.TimerHandle),
		pressed:        make(map[string]anim.TimerHandle),
	}
}

// Press 将按钮标记为按下状态，持续 pressDuration 后自动恢复
func (h *HoldInput) Press(buttonID string) {
	if prev, ok := h.pressed[buttonID]; ok {
		h.scheduler.ClearTimer(prev)
	}
	var timer anim.TimerHandle
	timer = h.scheduler.SetTimeout(h.pressDuration, func() {
		if h.pressed[buttonID] == timer {
			delete(h.pressed, buttonID)
		}
	})
	h.pressed[buttonID] = timer
}

// IsPressed 按钮是否处于按下高亮状态
func (h *HoldInput) IsPressed(buttonID string) bool {
	_, ok := h.pressed[buttonID]
	return ok
}

// StartHolding 开始按住按钮
// 已按住时是空操作；否则立即执行一次 action，之后每隔 repeatInterval 执行一次
func (h *HoldInput) StartHolding(buttonID string, action func()) {
	if _, ok := h.held[buttonID]; ok {
		return
	}
	// 先登记再执行，action 内部再次调用 StartHolding 也不会重复注册
	h.held[buttonID] = 0
	action()
	if _, still := h.held[buttonID]; !still {
		// action 内部已经松开
		return
	}
	h.held[buttonID] = h.scheduler.SetInterval(h.repeatInterval, action)
}

// StopHolding 松开按钮并取消重复计时器
func (h *HoldInput) StopHolding(buttonID string) {
	timer, ok := h.held[buttonID]
	if !ok {
		return
	}
	h.scheduler.ClearTimer(timer)
	delete(h.held, buttonID)
}

// StopAll 松开所有按钮并清除按下高亮（窗口失焦、卸载时调用）
func (h *HoldInput) StopAll() {
	for id, timer := range h.held {
		h.scheduler.ClearTimer(timer)
		delete(h.held, id)
	}
	for id, timer := range h.pressed {
		h.scheduler.ClearTimer(timer)
		delete(h.pressed, id)
	}
}

// IsHolding 按钮是否被按住
func (h *HoldInput) IsHolding(buttonID string) bool {
	_, ok := h.held[buttonID]
	return ok
}

// HeldButtons 返回当前按住的按钮ID（排序后）
func (h *HoldInput) HeldButtons() []string {
	ids := make([]string, 0, len(h.held))
	for id := range h.held {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
