package game

import (
	"math"
	"sort"

	"github.com/gonewx/clawmachine/pkg/components"
	"github.com/gonewx/clawmachine/pkg/config"
)

// PrizeField 机器内奖品集合
//
// 以 id -> 奖品 的稳定键值存储保存仍在机器中的奖品，同时保留配置顺序。
// 奖品只能通过 Take 显式移出，不会被就地修改。
type PrizeField struct {
	prizes map[int]components.Prize
	order  []int
}

// NewPrizeField 用给定奖品列表创建奖品区
func NewPrizeField(prizes []components.Prize) *PrizeField {
	f := &PrizeField{
		prizes: make(map[int]components.Prize, len(prizes)),
		order:  make([]int, 0, len(prizes)),
	}
	for _, p := range prizes {
		if _, dup := f.prizes[p.ID]; dup {
			continue
		}
		f.prizes[p.ID] = p
		f.order = append(f.order, p.ID)
	}
	return f
}

// InitialPrizes 根据配置生成固定的奖品列表（位置、半径、重量、稀有度都是预设的，不随机）
func InitialPrizes(cfg *config.MachineConfig) []components.Prize {
	prizes := make([]components.Prize, 0, len(cfg.Prizes))
	for _, pc := range cfg.Prizes {
		prizes = append(prizes, components.Prize{
			ID:      pc.ID,
			X:       pc.X,
			Y:       pc.Y,
			Radius:  pc.Radius,
			Mass:    pc.Mass,
			Weight:  pc.Weight,
			Rarity:  components.Rarity(pc.Rarity),
			Resting: true,
			Emoji:   pc.Emoji,
			Name:    pc.Name,
			Color:   pc.Color,
		})
	}
	return prizes
}

// Len 返回机器内奖品数量
func (f *PrizeField) Len() int {
	return len(f.order)
}

// Get 按ID查询奖品
func (f *PrizeField) Get(id int) (components.Prize, bool) {
	p, ok := f.prizes[id]
	return p, ok
}

// Prizes 按配置顺序返回机器内奖品的副本
func (f *PrizeField) Prizes() []components.Prize {
	out := make([]components.Prize, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.prizes[id])
	}
	return out
}

// Take 将奖品移出奖品区
// 返回被移出的奖品；奖品不存在时返回 false
func (f *PrizeField) Take(id int) (components.Prize, bool) {
	p, ok := f.prizes[id]
	if !ok {
		return components.Prize{}, false
	}
	delete(f.prizes, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return p, true
}

// ContactCandidates 查询爪尖当前可能接触到的奖品
//
// 判定条件：
//   - 横向：|prize.X - clawX| < prize.Radius + grabWidth/2
//   - 纵向：奖品竖直范围 [Y-R, Y+R] 与爪尖本帧扫过的区间 [sweptFromY, tipY] 有重叠
//
// 结果按 Y 从小到大排序（最上面的奖品先被碰到），Y 相同按 ID 排序。
//
// 参数:
//   - clawX: 爪子X坐标
//   - tipY: 爪尖当前Y坐标
//   - sweptFromY: 爪尖上一帧的Y坐标（传入 tipY 表示只检查当前位置）
//   - grabWidth: 爪子张开宽度
func (f *PrizeField) ContactCandidates(clawX, tipY, sweptFromY, grabWidth float64) []components.Prize {
	top := math.Min(sweptFromY, tipY)
	bottom := math.Max(sweptFromY, tipY)

	var result []components.Prize
	for _, id := range f.order {
		p := f.prizes[id]
		if math.Abs(p.X-clawX) >= p.Radius+grabWidth/2 {
			continue
		}
		if p.Y+p.Radius < top || p.Y-p.Radius > bottom {
			continue
		}
		result = append(result, p)
	}
	sortTopmost(result)
	return result
}

// SettleCandidate 下降到底后的宽松搜索（只执行一次）
//
// 在 ContactCandidates 的基础上放宽横向和纵向容差，
// 返回最上面的一个奖品；没有则返回 false。
func (f *PrizeField) SettleCandidate(clawX, tipY, grabWidth, toleranceX, toleranceY float64) (components.Prize, bool) {
	var result []components.Prize
	for _, id := range f.order {
		p := f.prizes[id]
		if math.Abs(p.X-clawX) >= p.Radius+grabWidth/2+toleranceX {
			continue
		}
		if math.Abs(p.Y-tipY) >= p.Radius+toleranceY {
			continue
		}
		result = append(result, p)
	}
	if len(result) == 0 {
		return components.Prize{}, false
	}
	sortTopmost(result)
	return result[0], true
}

func sortTopmost(prizes []components.Prize) {
	sort.SliceStable(prizes, func(i, j int) bool {
		if prizes[i].Y != prizes[j].Y {
			return prizes[i].Y < prizes[j].Y
		}
		return prizes[i].ID < prizes[j].ID
	})
}
