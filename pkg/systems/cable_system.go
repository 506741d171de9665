package systems

import (
	"math"

	"github.com/gonewx/clawmachine/pkg/anim"
	"github.com/gonewx/clawmachine/pkg/components"
	"github.com/gonewx/clawmachine/pkg/config"
)

// ClawStateReader 钢缆读取爪子状态的接口（只读）
type ClawStateReader interface {
	Phase() components.ClawPhase
	CarriedPrize() (components.Prize, bool)
}

// CableSystem 钢缆摆动模拟
//
// 纯视觉层：输出一个摆动角度（度）供渲染使用，不参与碰撞和抓取判定，
// 也不会写回爪子或会话状态。
//
// 每帧 current 按固定比例向 target 逼近（单极点滤波），
// 二者差值小于 Epsilon 时吸附到 target，若 target 不再变化则停止帧循环。
//
// 目标角度规则：
//   - descending / dropping: 强制为 0
//   - ascending 且抓着奖品: 按奖品重量缩放的正弦摆动（只在 WeightSway 时间窗内）
//   - moving 且抓着奖品: 更慢更小的钟摆摆动
//   - idle: 0，横向移动时短暂倾斜 TiltAngle
//   - 稳定期（Stabilize）内 target 和 current 都强制为 0
type CableSystem struct {
	scheduler *anim.Scheduler
	cfg       config.CableConfig
	timing    config.TimingConfig
	claw      ClawStateReader

	current float64
	target  float64

	frame   anim.FrameHandle
	running bool

	stabilizing    bool
	stabilizeTimer anim.TimerHandle

	tilt      float64
	tiltTimer anim.TimerHandle

	// 上一帧观察到的阶段，以及进入该阶段的时间
	phase      components.ClawPhase
	phaseStart float64
}

// NewCableSystem 创建钢缆摆动系统
func NewCableSystem(s *anim.Scheduler, cfg *config.MachineConfig) *CableSystem {
	return &CableSystem{
		scheduler: s,
		cfg:       cfg.Cable,
		timing:    cfg.Timing,
		phase:     components.PhaseIdle,
	}
}

// SetClaw 绑定爪子状态来源
func (c *CableSystem) SetClaw(claw ClawStateReader) {
	c.claw = claw
}

// Angle 返回当前摆动角度（度）
func (c *CableSystem) Angle() float64 {
	return c.current
}

// Target 返回当前目标角度（度）
func (c *CableSystem) Target() float64 {
	return c.target
}

// IsStabilizing 是否处于稳定锁定期
func (c *CableSystem) IsStabilizing() bool {
	return c.stabilizing
}

// IsRunning 帧循环是否在运行
func (c *CableSystem) IsRunning() bool {
	return c.running
}

// Wake 唤醒帧循环（爪子阶段变化时调用），已运行时是空操作
func (c *CableSystem) Wake() {
	if c.running || c.stabilizing {
		return
	}
	c.running = true
	c.frame = c.scheduler.RequestFrame(c.tick)
}

// Nudge 横向移动时短暂倾斜，TiltRevert 后恢复为 0
//
// 参数:
//   - direction: -1 向左，1 向右
func (c *CableSystem) Nudge(direction int) {
	switch {
	case direction < 0:
		c.tilt = -c.cfg.TiltAngle
	case direction > 0:
		c.tilt = c.cfg.TiltAngle
	default:
		return
	}

	c.scheduler.ClearTimer(c.tiltTimer)
	c.tiltTimer = c.scheduler.SetTimeout(c.timing.TiltRevert, func() {
		c.tilt = 0
		c.tiltTimer = 0
		c.Wake()
	})
	c.Wake()
}

// Stabilize 锁定钢缆：立即归零，持续 Stabilize 秒
// 每次开始抓取时调用，模拟下降前的机械锁定
func (c *CableSystem) Stabilize() {
	c.stopLoop()
	c.stabilizing = true
	c.current = 0
	c.target = 0

	c.scheduler.ClearTimer(c.stabilizeTimer)
	c.stabilizeTimer = c.scheduler.SetTimeout(c.timing.Stabilize, func() {
		c.stabilizing = false
		c.stabilizeTimer = 0
		c.Wake()
	})
}

// Reset 停止所有回调并把摆动归零
func (c *CableSystem) Reset() {
	c.stopLoop()
	c.scheduler.ClearTimer(c.stabilizeTimer)
	c.scheduler.ClearTimer(c.tiltTimer)
	c.stabilizeTimer = 0
	c.tiltTimer = 0
	c.stabilizing = false
	c.tilt = 0
	c.current = 0
	c.target = 0
	c.phase = components.PhaseIdle
}

func (c *CableSystem) stopLoop() {
	c.scheduler.CancelFrame(c.frame)
	c.frame = 0
	c.running = false
}

func (c *CableSystem) tick(now float64) {
	c.frame = 0
	if !c.running {
		return
	}
	if c.stabilizing {
		c.current = 0
		c.target = 0
		c.running = false
		return
	}

	target, dynamic := c.computeTarget(now)
	c.target = target
	c.current += (c.target - c.current) * c.cfg.Damping

	if math.Abs(c.target-c.current) < c.cfg.Epsilon {
		c.current = c.target
		if !dynamic {
			c.running = false
			return
		}
	}

	c.frame = c.scheduler.RequestFrame(c.tick)
}

// computeTarget 根据爪子阶段计算目标角度
// dynamic 表示目标会随时间持续变化（帧循环不能停止）
func (c *CableSystem) computeTarget(now float64) (target float64, dynamic bool) {
	phase := components.PhaseIdle
	var prize components.Prize
	carrying := false
	if c.claw != nil {
		phase = c.claw.Phase()
		prize, carrying = c.claw.CarriedPrize()
	}

	if phase != c.phase {
		c.phase = phase
		c.phaseStart = now
	}
	elapsed := now - c.phaseStart

	switch phase {
	case components.PhaseDescending, components.PhaseDropping:
		return 0, false

	case components.PhaseAscending:
		if carrying && elapsed < c.timing.WeightSway {
			return math.Sin(2*math.Pi*c.cfg.AscendFrequency*elapsed) * c.cfg.AscendAmplitude * prize.Weight, true
		}
		return 0, false

	case components.PhaseMoving:
		if carrying {
			return math.Sin(2*math.Pi*c.cfg.MoveFrequency*elapsed) * c.cfg.MoveAmplitude * prize.Weight, true
		}
		return 0, false

	default:
		return c.tilt, false
	}
}
