package components

// ClawPhase 爪子状态机阶段
type ClawPhase int

const (
	// PhaseIdle 空闲（每轮抓取的起点和终点）
	PhaseIdle ClawPhase = iota
	// PhaseDescending 下降中
	PhaseDescending
	// PhaseGrabbing 抓取中（保留阶段，当前流程不会进入）
	PhaseGrabbing
	// PhaseAscending 上升中
	PhaseAscending
	// PhaseMoving 运输到出口
	PhaseMoving
	// PhaseDropping 释放奖品
	PhaseDropping
)

// String 返回阶段名称（用于日志和调试显示）
func (p ClawPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDescending:
		return "descending"
	case PhaseGrabbing:
		return "grabbing"
	case PhaseAscending:
		return "ascending"
	case PhaseMoving:
		return "moving"
	case PhaseDropping:
		return "dropping"
	default:
		return "unknown"
	}
}

// ClawComponent 爪子状态
type ClawComponent struct {
	// X, Y 爪子机构位置（与奖品同一坐标系）
	X, Y float64

	// Openness 张开程度 [0, 1]，1 = 完全张开
	Openness float64

	Phase ClawPhase

	// GrabbedPrizeID 当前抓住的奖品，NoPrize 表示空爪
	GrabbedPrizeID int
	// TouchingPrizeID 下降时接触到的奖品，NoPrize 表示未接触
	TouchingPrizeID int

	// Shaking 爪子抖动标记（仅显示）
	Shaking bool
	// PrizeWillFall 奖品中途掉落标记，当前流程总是 false
	PrizeWillFall bool
	// Returning 正在归位
	Returning bool
}

// IsCarrying 是否抓着奖品
func (c *ClawComponent) IsCarrying() bool {
	return c.GrabbedPrizeID != NoPrize
}
