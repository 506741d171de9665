package components

// Rarity 奖品稀有度
type Rarity string

const (
	// RarityNormal 普通奖品
	RarityNormal Rarity = "normal"
	// RarityRare 稀有奖品（得分为普通的若干倍）
	RarityRare Rarity = "rare"
)

// NoPrize 表示"没有奖品"的ID
const NoPrize = -1

// Prize 可抓取的奖品
//
// 位置在机器加载时确定，物理循环不会修改它。
// 被抓起时的显示位置由爪子计算（见 ClawSystem.CarriedPrizePosition）。
type Prize struct {
	ID int

	// 空间属性（机器本地坐标）
	X, Y   float64
	Radius float64

	// Mass 质量（保留字段，不参与判定）
	Mass float64
	// Weight 重量，只用于钢缆摆动幅度
	Weight float64
	Rarity Rarity
	// Resting 放置后不会自行运动
	Resting bool

	// 以下仅用于显示
	Emoji string
	Name  string
	Color string
}

// IsRare 是否为稀有奖品
func (p Prize) IsRare() bool {
	return p.Rarity == RarityRare
}
