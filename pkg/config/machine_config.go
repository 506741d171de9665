package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MachineConfig 抓娃娃机配置
//
// 描述机器几何尺寸、爪子判定参数、动画节奏、钢缆摆动参数、
// 投币经济与奖品列表。所有坐标都是机器本地像素坐标（左上角为原点，y 向下）。
//
// 配置文件位置: data/machine.yaml
type MachineConfig struct {
	Machine MachineGeometry `yaml:"machine"`
	Claw    ClawConfig      `yaml:"claw"`
	Timing  TimingConfig    `yaml:"timing"`
	Cable   CableConfig     `yaml:"cable"`
	Session SessionConfig   `yaml:"session"`
	Rewards RewardConfig    `yaml:"rewards"`
	Prizes  []PrizeConfig   `yaml:"prizes"`
}

// MachineGeometry 机器几何尺寸
type MachineGeometry struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// NeutralX 爪子归位的中心X坐标
	NeutralX float64 `yaml:"neutralX"`
	// TopY 爪子静止/上升终点的Y坐标
	TopY float64 `yaml:"topY"`
	// MaxDescentY 爪子机构能下降到的最大Y坐标
	MaxDescentY float64 `yaml:"maxDescentY"`
	// DropZoneX 出口（掉落区）X坐标
	DropZoneX float64 `yaml:"dropZoneX"`
	// DropZoneY 出口底部Y坐标（掉落动画终点）
	DropZoneY float64 `yaml:"dropZoneY"`

	// MinX, MaxX 爪子横向移动范围
	MinX float64 `yaml:"minX"`
	MaxX float64 `yaml:"maxX"`
	// MoveStep 每次移动命令的位移（像素）
	MoveStep float64 `yaml:"moveStep"`
}

// ClawConfig 爪子判定参数
type ClawConfig struct {
	// GrabWidth 爪子张开宽度，横向判定为 |dx| < radius + GrabWidth/2
	GrabWidth float64 `yaml:"grabWidth"`
	// TipOffset 爪尖相对爪子机构Y坐标的向下偏移
	TipOffset float64 `yaml:"tipOffset"`
	// GrabOffset 接触后爪子停在奖品中心上方的距离
	GrabOffset float64 `yaml:"grabOffset"`
	// SettleToleranceX, SettleToleranceY 下降到底后最终搜索的额外容差
	SettleToleranceX float64 `yaml:"settleToleranceX"`
	SettleToleranceY float64 `yaml:"settleToleranceY"`
}

// TimingConfig 抓取流程各阶段时长（秒）
type TimingConfig struct {
	Descent       float64 `yaml:"descent"`
	Close         float64 `yaml:"close"`
	ClosePause    float64 `yaml:"closePause"`
	Ascent        float64 `yaml:"ascent"`
	Move          float64 `yaml:"move"`
	DropPause     float64 `yaml:"dropPause"`
	Open          float64 `yaml:"open"`
	AfterDrop     float64 `yaml:"afterDrop"`
	Return        float64 `yaml:"return"`
	Stabilize     float64 `yaml:"stabilize"`
	PressFeedback float64 `yaml:"pressFeedback"`
	HoldRepeat    float64 `yaml:"holdRepeat"`
	TiltRevert    float64 `yaml:"tiltRevert"`
	WeightSway    float64 `yaml:"weightSway"`
	DropEntering  float64 `yaml:"dropEntering"`
	DropTraveling float64 `yaml:"dropTraveling"`
	DropCollected float64 `yaml:"dropCollected"`
}

// CableConfig 钢缆摆动参数（纯视觉）
type CableConfig struct {
	// Damping 每帧 current 向 target 逼近的比例 (0, 1]
	Damping float64 `yaml:"damping"`
	// Epsilon 小于此差值时直接吸附到 target 并停止循环
	Epsilon float64 `yaml:"epsilon"`
	// TiltAngle 横向移动时的短暂倾斜角（度）
	TiltAngle float64 `yaml:"tiltAngle"`
	// AscendAmplitude, AscendFrequency 上升时的摆动（按奖品重量缩放）
	AscendAmplitude float64 `yaml:"ascendAmplitude"`
	AscendFrequency float64 `yaml:"ascendFrequency"`
	// MoveAmplitude, MoveFrequency 运输时的钟摆摆动
	MoveAmplitude float64 `yaml:"moveAmplitude"`
	MoveFrequency float64 `yaml:"moveFrequency"`
}

// SessionConfig 投币设置
type SessionConfig struct {
	StartingCoins int `yaml:"startingCoins"`
	CoinsPerAdd   int `yaml:"coinsPerAdd"`
}

// RewardConfig 得分设置
type RewardConfig struct {
	Normal         int `yaml:"normal"`
	RareMultiplier int `yaml:"rareMultiplier"`
}

// PrizeConfig 奖品配置
type PrizeConfig struct {
	ID     int     `yaml:"id"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
	Weight float64 `yaml:"weight"`
	Rarity string  `yaml:"rarity"` // "normal" | "rare"
	Emoji  string  `yaml:"emoji"`
	Name   string  `yaml:"name"`
	Color  string  `yaml:"color"` // "#rrggbb"
}

// RewardFor 返回指定稀有度的得分
func (r RewardConfig) RewardFor(rarity string) int {
	if rarity == "rare" {
		return r.Normal * r.RareMultiplier
	}
	return r.Normal
}

// LoadMachineConfig 从文件加载机器配置
//
// 参数:
//   - path: 配置文件路径（如 "data/machine.yaml"）
//
// 返回:
//   - *MachineConfig: 加载成功后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadMachineConfig(path string) (*MachineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine config: %w", err)
	}
	return ParseMachineConfig(data)
}

// ParseMachineConfig 解析 YAML 格式的机器配置
// 未填写的字段使用 DefaultMachineConfig 的值
func ParseMachineConfig(data []byte) (*MachineConfig, error) {
	cfg := DefaultMachineConfig()
	// 奖品列表不与默认值合并
	cfg.Prizes = nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse machine config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid machine config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
func (c *MachineConfig) Validate() error {
	m := c.Machine
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("machine size must be positive, got %.1fx%.1f", m.Width, m.Height)
	}
	if m.MinX > m.MaxX {
		return fmt.Errorf("claw range invalid: minX(%.1f) > maxX(%.1f)", m.MinX, m.MaxX)
	}
	if m.NeutralX < m.MinX || m.NeutralX > m.MaxX {
		return fmt.Errorf("neutralX(%.1f) outside claw range [%.1f, %.1f]", m.NeutralX, m.MinX, m.MaxX)
	}
	if m.TopY >= m.MaxDescentY {
		return fmt.Errorf("topY(%.1f) must be above maxDescentY(%.1f)", m.TopY, m.MaxDescentY)
	}
	if c.Claw.GrabWidth <= 0 {
		return fmt.Errorf("grabWidth must be positive, got %.1f", c.Claw.GrabWidth)
	}
	if c.Cable.Damping <= 0 || c.Cable.Damping > 1 {
		return fmt.Errorf("cable damping must be in (0, 1], got %.3f", c.Cable.Damping)
	}
	if c.Cable.Epsilon <= 0 {
		return fmt.Errorf("cable epsilon must be positive, got %.4f", c.Cable.Epsilon)
	}
	if c.Timing.HoldRepeat <= 0 {
		return fmt.Errorf("holdRepeat must be positive, got %.3f", c.Timing.HoldRepeat)
	}
	if c.Session.StartingCoins < 0 || c.Session.CoinsPerAdd <= 0 {
		return fmt.Errorf("invalid session coins: starting=%d perAdd=%d", c.Session.StartingCoins, c.Session.CoinsPerAdd)
	}
	if c.Rewards.Normal < 0 || c.Rewards.RareMultiplier < 1 {
		return fmt.Errorf("invalid rewards: normal=%d rareMultiplier=%d", c.Rewards.Normal, c.Rewards.RareMultiplier)
	}

	seen := make(map[int]bool, len(c.Prizes))
	for i, p := range c.Prizes {
		if seen[p.ID] {
			return fmt.Errorf("prize #%d: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = true
		if p.Radius <= 0 {
			return fmt.Errorf("prize %d: radius must be positive, got %.1f", p.ID, p.Radius)
		}
		if p.Rarity != "normal" && p.Rarity != "rare" {
			return fmt.Errorf("prize %d: unknown rarity '%s'", p.ID, p.Rarity)
		}
	}

	return nil
}

// DefaultMachineConfig 返回内置默认配置（与 data/machine.yaml 一致）
func DefaultMachineConfig() *MachineConfig {
	return &MachineConfig{
		Machine: MachineGeometry{
			Width:       400,
			Height:      500,
			NeutralX:    200,
			TopY:        50,
			MaxDescentY: 400,
			DropZoneX:   50,
			DropZoneY:   470,
			MinX:        40,
			MaxX:        360,
			MoveStep:    10,
		},
		Claw: ClawConfig{
			GrabWidth:        40,
			TipOffset:        30,
			GrabOffset:       25,
			SettleToleranceX: 10,
			SettleToleranceY: 20,
		},
		Timing: TimingConfig{
			Descent:       1.5,
			Close:         0.3,
			ClosePause:    0.2,
			Ascent:        1.2,
			Move:          1.0,
			DropPause:     0.5,
			Open:          0.4,
			AfterDrop:     0.8,
			Return:        0.8,
			Stabilize:     0.8,
			PressFeedback: 0.15,
			HoldRepeat:    0.1,
			TiltRevert:    0.2,
			WeightSway:    1.0,
			DropEntering:  0.5,
			DropTraveling: 0.6,
			DropCollected: 0.4,
		},
		Cable: CableConfig{
			Damping:         0.15,
			Epsilon:         0.01,
			TiltAngle:       4,
			AscendAmplitude: 3,
			AscendFrequency: 2.5,
			MoveAmplitude:   1.5,
			MoveFrequency:   1.0,
		},
		Session: SessionConfig{
			StartingCoins: 5,
			CoinsPerAdd:   5,
		},
		Rewards: RewardConfig{
			Normal:         10,
			RareMultiplier: 5,
		},
		Prizes: []PrizeConfig{
			{ID: 1, X: 90, Y: 440, Radius: 20, Mass: 1.0, Weight: 1.0, Rarity: "normal", Emoji: "🧸", Name: "Teddy", Color: "#c8884a"},
			{ID: 2, X: 135, Y: 445, Radius: 18, Mass: 0.8, Weight: 0.8, Rarity: "normal", Emoji: "🐰", Name: "Bunny", Color: "#f2d0dc"},
			{ID: 3, X: 180, Y: 438, Radius: 22, Mass: 1.6, Weight: 2.0, Rarity: "normal", Emoji: "🐻", Name: "Bear", Color: "#8a5a2b"},
			{ID: 4, X: 228, Y: 444, Radius: 18, Mass: 0.9, Weight: 0.9, Rarity: "normal", Emoji: "🐱", Name: "Kitty", Color: "#f5c26b"},
			{ID: 5, X: 272, Y: 440, Radius: 20, Mass: 1.1, Weight: 1.2, Rarity: "normal", Emoji: "🐶", Name: "Puppy", Color: "#d9a066"},
			{ID: 6, X: 318, Y: 442, Radius: 19, Mass: 1.0, Weight: 1.0, Rarity: "normal", Emoji: "🐸", Name: "Frog", Color: "#6abe30"},
			{ID: 7, X: 112, Y: 405, Radius: 16, Mass: 0.7, Weight: 0.7, Rarity: "rare", Emoji: "🦄", Name: "Unicorn", Color: "#d77bba"},
			{ID: 8, X: 205, Y: 400, Radius: 17, Mass: 1.4, Weight: 1.8, Rarity: "normal", Emoji: "🐼", Name: "Panda", Color: "#eeeeee"},
			{ID: 9, X: 295, Y: 404, Radius: 16, Mass: 0.6, Weight: 0.6, Rarity: "rare", Emoji: "🐉", Name: "Dragon", Color: "#df7126"},
			{ID: 10, X: 250, Y: 370, Radius: 15, Mass: 0.5, Weight: 0.5, Rarity: "rare", Emoji: "⭐", Name: "Star", Color: "#fbf236"},
		},
	}
}
