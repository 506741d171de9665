package modules

import (
	"log"

	"github.com/gonewx/clawmachine/pkg/anim"
	"github.com/gonewx/clawmachine/pkg/components"
	"github.com/gonewx/clawmachine/pkg/config"
	"github.com/gonewx/clawmachine/pkg/ecs"
	"github.com/gonewx/clawmachine/pkg/game"
	"github.com/gonewx/clawmachine/pkg/systems"
)

// ClawMachineModule 娃娃机模块
// 组合爪子、钢缆、按住输入、掉落动画和音效触发，对外提供一组命令和只读视图。
//
// 所有回调都在同一个调度器上执行，调度器由 Update(deltaTime) 驱动，
// 因此模块和它的系统只能在 ebiten 的 Update goroutine 中使用。
//
// 命令：
//   - MoveLeft / MoveRight / Grab: 爪子操作
//   - Start / PlayAgain / AddCoins / Reset / DismissOutcome: 会话操作
//   - Close: 卸载时取消所有回调
type ClawMachineModule struct {
	cfg           *config.MachineConfig
	scheduler     *anim.Scheduler
	entityManager *ecs.EntityManager
	session       *game.Session

	claw   *systems.ClawSystem
	cable  *systems.CableSystem
	hold   *systems.HoldInput
	drops  *systems.DropAnimationSystem
	sounds *systems.SoundCueSystem

	closed bool
}

var _ systems.MachineCommands = (*ClawMachineModule)(nil)

// PrizeView 奖品显示信息
type PrizeView struct {
	Prize components.Prize
	// X, Y 显示位置（被抓着时跟随爪子）
	X, Y     float64
	Grabbed  bool
	Touching bool
}

// NewClawMachineModule 创建娃娃机模块
//
// 参数:
//   - cfg: 机器配置
//   - session: 会话状态（由调用者创建，可能已从存档恢复）
//   - player: 音效播放器（可为 nil）
func NewClawMachineModule(cfg *config.MachineConfig, session *game.Session, player systems.SoundPlayer) *ClawMachineModule {
	scheduler := anim.NewScheduler()
	em := ecs.NewEntityManager()

	cable := systems.NewCableSystem(scheduler, cfg)
	claw := systems.NewClawSystem(scheduler, cfg, session, cable, em)
	cable.SetClaw(claw)

	m := &ClawMachineModule{
		cfg:           cfg,
		scheduler:     scheduler,
		entityManager: em,
		session:       session,
		claw:          claw,
		cable:         cable,
		hold:          systems.NewHoldInput(scheduler, cfg.Timing.HoldRepeat, cfg.Timing.PressFeedback),
		drops:         systems.NewDropAnimationSystem(em, cfg),
		sounds:        systems.NewSoundCueSystem(player),
	}
	log.Printf("[ClawMachineModule] 初始化完成 (奖品 %d 个, 硬币 %d)", session.Field().Len(), session.Coins())
	return m
}

// Update 推进一帧
func (m *ClawMachineModule) Update(deltaTime float64) {
	if m.closed {
		return
	}
	m.scheduler.Update(deltaTime)
	m.drops.Update(deltaTime)
	m.entityManager.RemoveMarkedEntities()
	m.sounds.Update(m.claw.State(), m.session)
}

// MoveLeft 爪子左移一步
func (m *ClawMachineModule) MoveLeft() {
	m.claw.MoveLeft()
}

// MoveRight 爪子右移一步
func (m *ClawMachineModule) MoveRight() {
	m.claw.MoveRight()
}

// Grab 开始抓取
func (m *ClawMachineModule) Grab() bool {
	if m.closed {
		return false
	}
	return m.claw.Grab()
}

// Start 投币开始一局
// 爪子必须空闲；成功时把爪子放回中心并清除上一轮的掉落动画
func (m *ClawMachineModule) Start() bool {
	if m.closed || m.claw.IsBusy() {
		return false
	}
	if !m.session.Start() {
		return false
	}
	m.claw.ResetPosition()
	m.drops.ClearAll()
	return true
}

// PlayAgain 结果面板上的"再玩一次"
func (m *ClawMachineModule) PlayAgain() bool {
	return m.Start()
}

// AddCoins 投币
func (m *ClawMachineModule) AddCoins() {
	m.session.AddCoins()
}

// Reset 重置整个会话，进行中的抓取会被取消且不记录结果
func (m *ClawMachineModule) Reset() {
	m.claw.Abort()
	m.cable.Reset()
	m.hold.StopAll()
	m.drops.ClearAll()
	m.entityManager.RemoveMarkedEntities()
	m.session.Reset()
	m.sounds.Reset()
	log.Printf("[ClawMachineModule] 已重置")
}

// DismissOutcome 关闭结果面板
func (m *ClawMachineModule) DismissOutcome() {
	m.session.DismissOutcome()
	m.drops.ClearAll()
}

// Close 取消所有回调（卸载时调用），之后的 Update 和命令都被忽略
func (m *ClawMachineModule) Close() {
	if m.closed {
		return
	}
	m.claw.Cancel()
	m.cable.Reset()
	m.hold.StopAll()
	m.scheduler.Clear()
	m.closed = true
	log.Printf("[ClawMachineModule] 已关闭")
}

// Session 返回会话状态（只读使用）
func (m *ClawMachineModule) Session() *game.Session {
	return m.session
}

// Config 返回机器配置
func (m *ClawMachineModule) Config() *config.MachineConfig {
	return m.cfg
}

// Hold 返回按住输入适配器（输入系统使用）
func (m *ClawMachineModule) Hold() *systems.HoldInput {
	return m.hold
}

// Claw 返回爪子状态
func (m *ClawMachineModule) Claw() components.ClawComponent {
	return m.claw.State()
}

// SwayAngle 钢缆摆动角度（度）
func (m *ClawMachineModule) SwayAngle() float64 {
	return m.cable.Angle()
}

// IsStabilizing 钢缆是否处于稳定锁定期
func (m *ClawMachineModule) IsStabilizing() bool {
	return m.cable.IsStabilizing()
}

// Prizes 返回机器内所有奖品的显示信息（按配置顺序）
func (m *ClawMachineModule) Prizes() []PrizeView {
	st := m.claw.State()
	prizes := m.session.PrizesInMachine()
	views := make([]PrizeView, 0, len(prizes))
	for _, p := range prizes {
		v := PrizeView{
			Prize:    p,
			X:        p.X,
			Y:        p.Y,
			Grabbed:  p.ID == st.GrabbedPrizeID,
			Touching: p.ID == st.TouchingPrizeID,
		}
		if v.Grabbed {
			if x, y, ok := m.claw.CarriedPrizePosition(); ok {
				v.X, v.Y = x, y
			}
		}
		views = append(views, v)
	}
	return views
}

// DroppedPrizes 返回掉落动画中的奖品
func (m *ClawMachineModule) DroppedPrizes() []components.DroppedPrizeComponent {
	return m.drops.DroppedPrizes()
}

// TrayPosition 收集托盘位置（机器本地坐标）
func (m *ClawMachineModule) TrayPosition() (float64, float64) {
	return m.drops.TrayPosition()
}
