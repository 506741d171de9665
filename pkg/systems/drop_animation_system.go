package systems

import (
	"github.com/gonewx/clawmachine/pkg/anim"
	"github.com/gonewx/clawmachine/pkg/components"
	"github.com/gonewx/clawmachine/pkg/config"
	"github.com/gonewx/clawmachine/pkg/ecs"
)

// trayOffset 收集托盘在机器底边下方的距离
const trayOffset = 30.0

// DropAnimationSystem 推进掉落奖品动画
//
// 阶段：
//   - entering: 从松爪位置旋转着落入出口（二次方缓入）
//   - traveling: 从出口滑向机器下方的收集托盘（二次方缓出）
//   - collected: 停留在托盘，结束后删除实体
//
// 只影响显示，不修改会话状态。
type DropAnimationSystem struct {
	entityManager *ecs.EntityManager
	geometry      config.MachineGeometry
	timing        config.TimingConfig
}

// NewDropAnimationSystem 创建掉落动画系统
func NewDropAnimationSystem(em *ecs.EntityManager, cfg *config.MachineConfig) *DropAnimationSystem {
	return &DropAnimationSystem{
		entityManager: em,
		geometry:      cfg.Machine,
		timing:        cfg.Timing,
	}
}

// TrayPosition 收集托盘位置（机器本地坐标）
func (s *DropAnimationSystem) TrayPosition() (x, y float64) {
	return s.geometry.DropZoneX, s.geometry.Height + trayOffset
}

// Update 更新所有掉落奖品
func (s *DropAnimationSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.DroppedPrizeComponent](s.entityManager) {
		drop, ok := ecs.GetComponent[*components.DroppedPrizeComponent](s.entityManager, id)
		if !ok {
			continue
		}
		drop.Elapsed += deltaTime
		if s.advance(drop) {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// advance 推进一个掉落奖品，返回 true 表示动画结束
func (s *DropAnimationSystem) advance(drop *components.DroppedPrizeComponent) bool {
	switch drop.Phase {
	case components.DropEntering:
		p := progress(drop.Elapsed, s.timing.DropEntering)
		e := anim.EaseInQuad(p)
		drop.X = anim.Lerp(drop.StartX, s.geometry.DropZoneX, e)
		drop.Y = anim.Lerp(drop.StartY, s.geometry.DropZoneY, e)
		drop.Rotation = 360 * p
		if p >= 1 {
			s.enter(drop, components.DropTraveling)
		}

	case components.DropTraveling:
		trayX, trayY := s.TrayPosition()
		p := progress(drop.Elapsed, s.timing.DropTraveling)
		e := anim.EaseOutQuad(p)
		drop.X = anim.Lerp(drop.StartX, trayX, e)
		drop.Y = anim.Lerp(drop.StartY, trayY, e)
		drop.Rotation = 0
		if p >= 1 {
			s.enter(drop, components.DropCollected)
		}

	case components.DropCollected:
		if drop.Elapsed >= s.timing.DropCollected {
			return true
		}
	}
	return false
}

func (s *DropAnimationSystem) enter(drop *components.DroppedPrizeComponent, phase components.DropPhase) {
	drop.Phase = phase
	drop.Elapsed = 0
	drop.StartX = drop.X
	drop.StartY = drop.Y
}

// ClearAll 删除所有掉落奖品（关闭结果面板、重置时调用）
func (s *DropAnimationSystem) ClearAll() {
	for _, id := range ecs.GetEntitiesWith1[*components.DroppedPrizeComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
}

// DroppedPrizes 返回当前所有掉落奖品的快照（按创建顺序）
func (s *DropAnimationSystem) DroppedPrizes() []components.DroppedPrizeComponent {
	ids := ecs.GetEntitiesWith1[*components.DroppedPrizeComponent](s.entityManager)
	result := make([]components.DroppedPrizeComponent, 0, len(ids))
	for _, id := range ids {
		if drop, ok := ecs.GetComponent[*components.DroppedPrizeComponent](s.entityManager, id); ok {
			result = append(result, *drop)
		}
	}
	return result
}

func progress(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return anim.Clamp(elapsed/duration, 0, 1)
}
