package systems

import (
	"log"
	"math"

	"github.com/gonewx/clawmachine/pkg/anim"
	"github.com/gonewx/clawmachine/pkg/components"
	"github.com/gonewx/clawmachine/pkg/config"
	"github.com/gonewx/clawmachine/pkg/ecs"
	"github.com/gonewx/clawmachine/pkg/entities"
	"github.com/gonewx/clawmachine/pkg/game"
)

// CableController 爪子对钢缆发出的命令
type CableController interface {
	Wake()
	Stabilize()
	Nudge(direction int)
	Reset()
}

// 结果提示文字
const (
	MessageWin  = "You got it!"
	MessageLoss = "Claw returned empty. Try again!"
)

// ClawSystem 爪子状态机
//
// 一轮抓取：
//
//	idle → descending →（接触判定）→ closing → ascending → moving → dropping → return → idle
//	                                            └──（空爪）────────────────→ return → idle
//
// 每个阶段都是一个可取消的帧动画或延时，回调在执行前检查 token，
// token 变化（Cancel/Abort）后旧回调全部失效，不会留下悬空的循环。
// 每轮恰好记录一次结果：成功在松爪时记录，失败在归位完成时记录。
type ClawSystem struct {
	scheduler     *anim.Scheduler
	cfg           *config.MachineConfig
	session       *game.Session
	cable         CableController
	entityManager *ecs.EntityManager

	state components.ClawComponent

	// contact 本轮接触到的奖品（接触判定的结果）
	contact    components.Prize
	hasContact bool
	// carried 抓着的奖品，state.GrabbedPrizeID != NoPrize 时有效
	carried components.Prize

	token     uint64
	animation *anim.Animation
	timer     anim.TimerHandle
}

// NewClawSystem 创建爪子状态机，爪子位于中心顶部、完全张开
//
// 参数:
//   - s: 调度器
//   - cfg: 机器配置
//   - session: 会话状态（接收结果）
//   - cable: 钢缆（可为 nil）
//   - em: EntityManager（创建掉落奖品实体）
func NewClawSystem(s *anim.Scheduler, cfg *config.MachineConfig, session *game.Session, cable CableController, em *ecs.EntityManager) *ClawSystem {
	c := &ClawSystem{
		scheduler:     s,
		cfg:           cfg,
		session:       session,
		cable:         cable,
		entityManager: em,
	}
	c.resetState()
	return c
}

// State 返回爪子状态的副本
func (c *ClawSystem) State() components.ClawComponent {
	return c.state
}

// Phase 返回当前阶段
func (c *ClawSystem) Phase() components.ClawPhase {
	return c.state.Phase
}

// CarriedPrize 返回抓着的奖品
func (c *ClawSystem) CarriedPrize() (components.Prize, bool) {
	if !c.state.IsCarrying() {
		return components.Prize{}, false
	}
	return c.carried, true
}

// CarriedPrizePosition 抓着的奖品的显示位置（跟随爪子，不修改奖品本身）
func (c *ClawSystem) CarriedPrizePosition() (x, y float64, ok bool) {
	if !c.state.IsCarrying() {
		return 0, 0, false
	}
	return c.state.X, c.state.Y + c.cfg.Claw.GrabOffset, true
}

// TipY 返回爪尖Y坐标
func (c *ClawSystem) TipY() float64 {
	return c.state.Y + c.cfg.Claw.TipOffset
}

// IsBusy 是否正在进行一轮抓取
func (c *ClawSystem) IsBusy() bool {
	return c.state.Phase != components.PhaseIdle
}

// IsAnimating 是否有活动的动画或延时
func (c *ClawSystem) IsAnimating() bool {
	return c.animation.Running() || c.scheduler.IsTimerActive(c.timer)
}

// MoveLeft 向左移动一步，只在会话激活且爪子空闲时有效
func (c *ClawSystem) MoveLeft() bool {
	return c.move(-1)
}

// MoveRight 向右移动一步，只在会话激活且爪子空闲时有效
func (c *ClawSystem) MoveRight() bool {
	return c.move(1)
}

func (c *ClawSystem) move(direction int) bool {
	if !c.session.IsActive() || c.IsBusy() {
		return false
	}
	m := c.cfg.Machine
	x := anim.Clamp(c.state.X+float64(direction)*m.MoveStep, m.MinX, m.MaxX)
	if x == c.state.X {
		return false
	}
	c.state.X = x
	if c.cable != nil {
		c.cable.Nudge(direction)
	}
	return true
}

// ResetPosition 把爪子放回中心顶部（开始新一局时调用，只在空闲时有效）
func (c *ClawSystem) ResetPosition() {
	if c.IsBusy() {
		return
	}
	c.state.X = c.cfg.Machine.NeutralX
	c.state.Y = c.cfg.Machine.TopY
}

// Grab 开始一轮抓取
// 会话未激活或爪子不在 idle 时被忽略
//
// 返回：
//   - bool: 是否开始了新一轮
func (c *ClawSystem) Grab() bool {
	if !c.session.IsActive() {
		return false
	}
	if c.IsBusy() {
		log.Printf("[ClawSystem] 抓取进行中，忽略抓取命令 (phase=%s)", c.state.Phase)
		return false
	}

	// 清除上一轮残留的回调
	c.Cancel()

	c.session.BeginCycle()
	c.state.Shaking = false
	c.state.TouchingPrizeID = components.NoPrize
	c.state.GrabbedPrizeID = components.NoPrize
	c.state.PrizeWillFall = false
	c.state.Returning = false
	c.state.Openness = 1
	c.hasContact = false

	if c.cable != nil {
		c.cable.Stabilize()
	}
	c.setPhase(components.PhaseDescending)
	log.Printf("[ClawSystem] 开始抓取 x=%.1f", c.state.X)

	c.startDescent()
	return true
}

// Cancel 取消当前的动画和延时，不修改爪子状态
// 对没有活动回调的爪子是空操作
func (c *ClawSystem) Cancel() {
	c.token++
	if c.animation != nil {
		c.animation.Cancel()
		c.animation = nil
	}
	c.scheduler.ClearTimer(c.timer)
	c.timer = 0
}

// Abort 取消当前一轮并立即回到 idle（会话重置、卸载时调用），不记录结果
func (c *ClawSystem) Abort() {
	c.Cancel()
	c.resetState()
}

func (c *ClawSystem) resetState() {
	c.state = components.ClawComponent{
		X:               c.cfg.Machine.NeutralX,
		Y:               c.cfg.Machine.TopY,
		Openness:        1,
		Phase:           components.PhaseIdle,
		GrabbedPrizeID:  components.NoPrize,
		TouchingPrizeID: components.NoPrize,
	}
	c.hasContact = false
	c.carried = components.Prize{}
}

func (c *ClawSystem) setPhase(phase components.ClawPhase) {
	if c.state.Phase == phase {
		return
	}
	c.state.Phase = phase
	if c.cable != nil {
		c.cable.Wake()
	}
}

// animate 启动受 token 保护的动画
func (c *ClawSystem) animate(duration float64, step func(p float64) bool, done func()) {
	token := c.token
	c.animation = anim.Animate(c.scheduler, duration,
		func(p float64) bool {
			if token != c.token {
				return true
			}
			return step(p)
		},
		func() {
			if token != c.token {
				return
			}
			done()
		})
}

// after 启动受 token 保护的延时
func (c *ClawSystem) after(delay float64, fn func()) {
	token := c.token
	c.scheduler.ClearTimer(c.timer)
	c.timer = c.scheduler.SetTimeout(delay, func() {
		c.timer = 0
		if token != c.token {
			return
		}
		fn()
	})
}

// startDescent 下降（三次方缓出），每帧检测接触
func (c *ClawSystem) startDescent() {
	m := c.cfg.Machine
	cl := c.cfg.Claw
	field := c.session.Field()

	startY := c.state.Y
	prevTip := startY + cl.TipOffset

	c.animate(c.cfg.Timing.Descent,
		func(p float64) bool {
			y := math.Min(anim.Lerp(startY, m.MaxDescentY, anim.EaseOutCubic(p)), m.MaxDescentY)
			c.state.Y = y
			tip := y + cl.TipOffset

			candidates := field.ContactCandidates(c.state.X, tip, prevTip, cl.GrabWidth)
			prevTip = tip
			if len(candidates) == 0 {
				return false
			}

			// 碰到最上面的奖品，立即停止下降并吸附到抓取位置
			target := candidates[0]
			c.state.Y = anim.Clamp(target.Y-cl.GrabOffset, m.TopY, m.MaxDescentY)
			c.setContact(target)
			log.Printf("[ClawSystem] 接触奖品 %d (%s) y=%.1f", target.ID, target.Name, target.Y)
			c.startClosing()
			return true
		},
		func() {
			// 下降到底仍未接触：做一次宽松搜索
			c.state.Y = m.MaxDescentY
			if target, ok := field.SettleCandidate(c.state.X, c.TipY(), cl.GrabWidth, cl.SettleToleranceX, cl.SettleToleranceY); ok {
				c.setContact(target)
				log.Printf("[ClawSystem] 到底后找到奖品 %d (%s)", target.ID, target.Name)
			} else {
				log.Printf("[ClawSystem] 到底未接触任何奖品")
			}
			c.startClosing()
		})
}

func (c *ClawSystem) setContact(p components.Prize) {
	c.contact = p
	c.hasContact = true
	c.state.TouchingPrizeID = p.ID
}

// startClosing 合爪（openness 1 → 0），完成后短暂停顿再上升
func (c *ClawSystem) startClosing() {
	c.state.Shaking = c.hasContact
	c.animate(c.cfg.Timing.Close,
		func(p float64) bool {
			c.state.Openness = 1 - p
			return false
		},
		func() {
			c.state.Openness = 0
			if c.hasContact {
				// 接触后抓取总是成功
				c.state.PrizeWillFall = false
				c.carried = c.contact
				c.state.GrabbedPrizeID = c.contact.ID
			}
			c.after(c.cfg.Timing.ClosePause, c.startAscent)
		})
}

// startAscent 上升（二次方缓入）到顶部
func (c *ClawSystem) startAscent() {
	c.state.Shaking = false
	c.setPhase(components.PhaseAscending)

	startY := c.state.Y
	topY := c.cfg.Machine.TopY
	c.animate(c.cfg.Timing.Ascent,
		func(p float64) bool {
			c.state.Y = anim.Lerp(startY, topY, anim.EaseInQuad(p))
			return false
		},
		func() {
			c.state.Y = topY
			if c.state.IsCarrying() {
				c.startMove()
				return
			}
			c.startReturn(false)
		})
}

// startMove 运输到出口（二次方缓出）
func (c *ClawSystem) startMove() {
	c.setPhase(components.PhaseMoving)

	startX := c.state.X
	dropX := c.cfg.Machine.DropZoneX
	c.animate(c.cfg.Timing.Move,
		func(p float64) bool {
			c.state.X = anim.Lerp(startX, dropX, anim.EaseOutQuad(p))
			return false
		},
		func() {
			c.state.X = dropX
			c.startDrop()
		})
}

// startDrop 停顿后张开爪子（openness 0 → 1），完全张开时结算
func (c *ClawSystem) startDrop() {
	c.setPhase(components.PhaseDropping)

	c.after(c.cfg.Timing.DropPause, func() {
		c.animate(c.cfg.Timing.Open,
			func(p float64) bool {
				c.state.Openness = p
				return false
			},
			func() {
				c.state.Openness = 1
				c.releasePrize()
				c.after(c.cfg.Timing.AfterDrop, func() { c.startReturn(true) })
			})
	})
}

// releasePrize 松爪结算：加分、创建掉落奖品实体、记录胜利、清除抓取
func (c *ClawSystem) releasePrize() {
	if !c.state.IsCarrying() {
		return
	}
	prize := c.carried
	x, y, _ := c.CarriedPrizePosition()

	if c.entityManager != nil {
		entities.NewDroppedPrizeEntity(c.entityManager, prize, x, y)
	}

	c.session.RecordOutcome(game.GrabOutcome{
		Won:     true,
		Prize:   prize,
		Reward:  c.session.RewardFor(prize),
		Message: MessageWin,
	})
	log.Printf("[ClawSystem] 释放奖品 %d (%s, %s)", prize.ID, prize.Name, prize.Rarity)

	c.state.GrabbedPrizeID = components.NoPrize
	c.state.TouchingPrizeID = components.NoPrize
	c.carried = components.Prize{}
}

// startReturn 归位到中心X
//
// 参数:
//   - successful: 本轮经过了松爪结算（只用于日志）
func (c *ClawSystem) startReturn(successful bool) {
	c.state.Returning = true

	startX := c.state.X
	neutralX := c.cfg.Machine.NeutralX
	c.animate(c.cfg.Timing.Return,
		func(p float64) bool {
			c.state.X = anim.Lerp(startX, neutralX, anim.EaseOutQuad(p))
			return false
		},
		func() {
			c.finishCycle(successful)
		})
}

// finishCycle 回到 idle；本轮没有结果时记录失败
func (c *ClawSystem) finishCycle(successful bool) {
	c.animation = nil
	c.state.X = c.cfg.Machine.NeutralX
	c.state.Y = c.cfg.Machine.TopY
	c.state.Openness = 1
	c.state.GrabbedPrizeID = components.NoPrize
	c.state.TouchingPrizeID = components.NoPrize
	c.state.Shaking = false
	c.state.PrizeWillFall = false
	c.state.Returning = false
	c.hasContact = false
	c.carried = components.Prize{}
	c.state.Phase = components.PhaseIdle

	if c.cable != nil {
		c.cable.Reset()
	}

	// 结算被忽略（奖品已不在机器内）时也按失败记录，保证每轮恰好一个结果
	if !c.session.HasCycleOutcome() {
		c.session.RecordOutcome(game.GrabOutcome{
			Won:     false,
			Message: MessageLoss,
		})
	}
	log.Printf("[ClawSystem] 本轮结束 (successful=%v)", successful)
}
