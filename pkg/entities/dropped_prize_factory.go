package entities

import (
	"github.com/gonewx/clawmachine/pkg/components"
	"github.com/gonewx/clawmachine/pkg/ecs"
)

// NewDroppedPrizeEntity 创建掉落奖品实体
// 参数:
//   - manager: EntityManager 实例
//   - prize: 被释放的奖品（值拷贝，之后与奖品区无关）
//   - x, y: 释放位置（机器本地坐标）
//
// 返回: 创建的实体ID
func NewDroppedPrizeEntity(manager *ecs.EntityManager, prize components.Prize, x, y float64) ecs.EntityID {
	id := manager.CreateEntity()
	prize.Resting = false
	manager.AddComponent(id, &components.DroppedPrizeComponent{
		Prize:  prize,
		X:      x,
		Y:      y,
		StartX: x,
		StartY: y,
		Phase:  components.DropEntering,
	})
	return id
}
