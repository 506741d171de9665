package game

import (
	"log"

	"github.com/gonewx/clawmachine/pkg/components"
	"github.com/gonewx/clawmachine/pkg/config"
)

// GrabOutcome 一轮抓取的结果
type GrabOutcome struct {
	// Won 是否抓到奖品
	Won bool
	// Prize 抓到的奖品（仅 Won 为 true 时有效）
	Prize components.Prize
	// Reward 本次得分（失败为 0）
	Reward int
	// Message 给玩家看的提示文字
	Message string
}

// Session 单次游玩会话状态
//
// 职责：
//   - 管理投币、得分、激活状态
//   - 维护"机器内奖品"和"已收集奖品"两个容器，二者始终构成全部奖品的划分
//   - 记录每轮抓取的唯一结果
//
// 架构说明：
//   - 显式构造、依赖注入，不使用全局单例
//   - 只由爪子状态机的终止转换和玩家会话命令修改，二者都只在爪子空闲时可达
type Session struct {
	cfg *config.MachineConfig

	coins  int
	score  int
	active bool

	field       *PrizeField
	collected   []components.Prize
	totalPrizes int

	outcome      *GrabOutcome
	outcomeShown bool

	// cycleRecorded 本轮抓取是否已记录结果
	cycleRecorded bool
	cycle         int

	// revision 每次状态变化递增，持久化层据此判断是否需要保存
	revision uint64
}

// NewSession 创建新的会话，奖品区和投币使用配置的初始值
func NewSession(cfg *config.MachineConfig) *Session {
	s := &Session{cfg: cfg}
	s.reinitialize()
	return s
}

func (s *Session) reinitialize() {
	prizes := InitialPrizes(s.cfg)
	s.field = NewPrizeField(prizes)
	s.totalPrizes = s.field.Len()
	s.collected = make([]components.Prize, 0, s.totalPrizes)
	s.score = 0
	s.coins = s.cfg.Session.StartingCoins
	s.active = false
	s.outcome = nil
	s.outcomeShown = false
	s.cycleRecorded = false
	s.revision++
}

// Start 投币开始一局
// 需要 coins > 0；扣除 1 枚硬币、激活会话并清除上一次结果
//
// 返回：
//   - bool: 是否成功开始
func (s *Session) Start() bool {
	if s.coins <= 0 {
		log.Printf("[Session] 硬币不足，无法开始")
		return false
	}
	s.coins--
	s.active = true
	s.outcome = nil
	s.outcomeShown = false
	s.revision++
	log.Printf("[Session] 开始游戏，剩余硬币: %d", s.coins)
	return true
}

// AddCoins 增加固定数量的硬币（总是允许）
func (s *Session) AddCoins() {
	s.coins += s.cfg.Session.CoinsPerAdd
	s.revision++
	log.Printf("[Session] 投币 +%d，当前硬币: %d", s.cfg.Session.CoinsPerAdd, s.coins)
}

// Reset 重置整个会话：恢复奖品区、清空已收集、得分归零、硬币恢复初始值
func (s *Session) Reset() {
	s.reinitialize()
	log.Printf("[Session] 会话已重置 (奖品 %d 个, 硬币 %d)", s.totalPrizes, s.coins)
}

// BeginCycle 开始新一轮抓取，允许记录一次结果
func (s *Session) BeginCycle() {
	s.cycle++
	s.cycleRecorded = false
}

// HasCycleOutcome 本轮是否已记录结果
func (s *Session) HasCycleOutcome() bool {
	return s.cycleRecorded
}

// RecordOutcome 记录本轮抓取结果
//
// 每轮只有第一次调用生效，之后的调用被忽略。
// 胜利时把奖品从机器内移到已收集并加分；胜负都会让会话变为非激活。
//
// 返回：
//   - bool: 本次调用是否生效
func (s *Session) RecordOutcome(result GrabOutcome) bool {
	if s.cycleRecorded {
		log.Printf("[Session] 本轮结果已记录，忽略重复结果 (won=%v)", result.Won)
		return false
	}

	if result.Won {
		prize, ok := s.field.Take(result.Prize.ID)
		if !ok {
			log.Printf("[Session] 警告: 奖品 %d 不在机器内，忽略结果", result.Prize.ID)
			return false
		}
		s.collected = append(s.collected, prize)
		s.score += result.Reward
		result.Prize = prize
	} else {
		result.Reward = 0
	}

	s.cycleRecorded = true
	s.active = false
	s.outcome = &result
	s.outcomeShown = true
	s.revision++

	log.Printf("[Session] 第 %d 轮结果: won=%v, score=%d, 机器内=%d, 已收集=%d",
		s.cycle, result.Won, s.score, s.field.Len(), len(s.collected))
	return true
}

// RewardFor 返回奖品的得分（稀有奖品为普通的若干倍）
func (s *Session) RewardFor(p components.Prize) int {
	return s.cfg.Rewards.RewardFor(string(p.Rarity))
}

// DismissOutcome 关闭结果显示，不改变硬币、得分和已收集奖品
func (s *Session) DismissOutcome() {
	if !s.outcomeShown {
		return
	}
	s.outcomeShown = false
	s.revision++
}

// Coins 返回当前硬币数
func (s *Session) Coins() int {
	return s.coins
}

// Score 返回当前得分
func (s *Session) Score() int {
	return s.score
}

// IsActive 会话是否处于激活状态（允许抓取）
func (s *Session) IsActive() bool {
	return s.active
}

// Field 返回机器内奖品区
func (s *Session) Field() *PrizeField {
	return s.field
}

// PrizesInMachine 返回机器内奖品（按配置顺序）
func (s *Session) PrizesInMachine() []components.Prize {
	return s.field.Prizes()
}

// CollectedPrizes 返回已收集奖品（按获得顺序）
func (s *Session) CollectedPrizes() []components.Prize {
	out := make([]components.Prize, len(s.collected))
	copy(out, s.collected)
	return out
}

// TotalPrizes 返回配置的奖品总数
func (s *Session) TotalPrizes() int {
	return s.totalPrizes
}

// Outcome 返回最近一次结果
func (s *Session) Outcome() (GrabOutcome, bool) {
	if s.outcome == nil {
		return GrabOutcome{}, false
	}
	return *s.outcome, true
}

// IsOutcomeShown 结果是否正在显示
func (s *Session) IsOutcomeShown() bool {
	return s.outcomeShown
}

// Revision 返回状态版本号
func (s *Session) Revision() uint64 {
	return s.revision
}

// Snapshot 导出需要持久化的数据
func (s *Session) Snapshot() *SaveData {
	ids := make([]int, 0, len(s.collected))
	for _, p := range s.collected {
		ids = append(ids, p.ID)
	}
	return &SaveData{
		Coins:             s.coins,
		Score:             s.score,
		CollectedPrizeIDs: ids,
	}
}

// Restore 从持久化数据恢复
// 未知的奖品ID被忽略，划分不变式始终成立
func (s *Session) Restore(data *SaveData) {
	if data == nil {
		return
	}
	s.reinitialize()
	if data.Coins >= 0 {
		s.coins = data.Coins
	}
	if data.Score >= 0 {
		s.score = data.Score
	}
	for _, id := range data.CollectedPrizeIDs {
		prize, ok := s.field.Take(id)
		if !ok {
			log.Printf("[Session] 存档中的奖品 %d 不存在，跳过", id)
			continue
		}
		s.collected = append(s.collected, prize)
	}
	s.revision++
	log.Printf("[Session] 已恢复存档: coins=%d, score=%d, collected=%d", s.coins, s.score, len(s.collected))
}
