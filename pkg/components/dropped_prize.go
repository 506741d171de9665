package components

// DropPhase 掉落奖品动画阶段
type DropPhase string

const (
	// DropEntering 从爪子落入出口
	DropEntering DropPhase = "entering"
	// DropTraveling 滑向收集托盘
	DropTraveling DropPhase = "traveling"
	// DropCollected 已收集（短暂停留后删除实体）
	DropCollected DropPhase = "collected"
)

// DroppedPrizeComponent 掉落奖品动画记录
//
// 工作流程：
//  1. ClawSystem 松开爪子时通过 entities.NewDroppedPrizeEntity 创建
//  2. DropAnimationSystem 每帧推进 Phase 并更新位置和旋转
//  3. collected 阶段结束后实体被删除；关闭结果面板时也会被清理
type DroppedPrizeComponent struct {
	Prize Prize

	// X, Y 当前位置（机器本地坐标）
	X, Y float64
	// StartX, StartY 当前阶段起点
	StartX, StartY float64
	// Rotation 旋转角度（度）
	Rotation float64

	Phase DropPhase
	// Elapsed 当前阶段已用时间（秒）
	Elapsed float64
}
