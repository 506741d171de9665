package systems

import (
	"github.com/gonewx/clawmachine/pkg/components"
	"github.com/gonewx/clawmachine/pkg/game"
)

// SoundPlayer 音效播放接口（由 game.AudioManager 实现）
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// SoundCueSystem 根据状态变化触发音效
//
// 每帧比较爪子和会话的状态与上一帧，只在变化时播放。
// 爪子状态机和会话本身不知道音效的存在。
type SoundCueSystem struct {
	player SoundPlayer

	primed       bool
	lastPhase    components.ClawPhase
	lastX        float64
	lastCoins    int
	lastActive   bool
	lastShown    bool
}

// NewSoundCueSystem 创建音效触发系统
func NewSoundCueSystem(player SoundPlayer) *SoundCueSystem {
	return &SoundCueSystem{player: player}
}

// Update 观察状态变化
func (s *SoundCueSystem) Update(claw components.ClawComponent, session *game.Session) {
	if !s.primed {
		s.remember(claw, session)
		s.primed = true
		return
	}

	switch {
	case claw.Phase == components.PhaseDescending && s.lastPhase == components.PhaseIdle:
		s.play(game.SoundGrab)
	case claw.Phase == components.PhaseIdle && s.lastPhase == components.PhaseIdle && claw.X != s.lastX:
		s.play(game.SoundMove)
	}

	if session.Coins() > s.lastCoins {
		s.play(game.SoundCoin)
	}
	if session.IsActive() && !s.lastActive {
		s.play(game.SoundClick)
	}

	// 新结果出现（显示状态从无到有）
	if session.IsOutcomeShown() && !s.lastShown {
		if outcome, ok := session.Outcome(); ok {
			if outcome.Won {
				s.play(game.SoundWin)
			} else {
				s.play(game.SoundLose)
			}
		}
	}

	s.remember(claw, session)
}

// Reset 下一帧重新记录基准状态（会话重置后调用，避免误报）
func (s *SoundCueSystem) Reset() {
	s.primed = false
}

func (s *SoundCueSystem) remember(claw components.ClawComponent, session *game.Session) {
	s.lastPhase = claw.Phase
	s.lastX = claw.X
	s.lastCoins = session.Coins()
	s.lastActive = session.IsActive()
	s.lastShown = session.IsOutcomeShown()
}

func (s *SoundCueSystem) play(id string) {
	if s.player != nil {
		s.player.PlaySound(id)
	}
}
