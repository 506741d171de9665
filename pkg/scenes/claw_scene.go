package scenes

import (
	"log"

	"github.com/gonewx/clawmachine/pkg/config"
	"github.com/gonewx/clawmachine/pkg/game"
	"github.com/gonewx/clawmachine/pkg/modules"
	"github.com/gonewx/clawmachine/pkg/systems"
	"github.com/gonewx/clawmachine/pkg/utils"
)

// ProgressStore 进度存储（由 game.SaveManager 实现）
type ProgressStore interface {
	Save(data *game.SaveData) error
}

// ClawSceneOptions 场景依赖
// 为 nil 的输入来源使用 ebiten 的实现
type ClawSceneOptions struct {
	Keys    systems.KeySource
	Pointer systems.PointerSource
	Store   ProgressStore
}

// ClawScene 娃娃机场景
//
// 每帧顺序：输入 → 模块（调度器、掉落动画、音效）→ 持久化。
// 会话 revision 变化时保存进度，退出时再保存一次。
type ClawScene struct {
	module   *modules.ClawMachineModule
	keys     systems.KeySource
	keyboard *systems.KeyboardInputSystem
	pointer  *systems.PointerButtonSystem
	store    ProgressStore

	savedRevision uint64
}

// NewClawScene 创建娃娃机场景
func NewClawScene(module *modules.ClawMachineModule, opts ClawSceneOptions) *ClawScene {
	keys := opts.Keys
	if keys == nil {
		keys = systems.EbitenKeySource{}
	}
	pointer := opts.Pointer
	if pointer == nil {
		pointer = systems.EbitenPointerSource{}
	}

	buttons := make([]systems.ScreenButton, 0, len(config.ControlButtons))
	for _, b := range config.ControlButtons {
		buttons = append(buttons, systems.ScreenButton{
			ID:    b.ID,
			Label: b.Label,
			Rect:  utils.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H},
		})
	}

	return &ClawScene{
		module:        module,
		keys:          keys,
		keyboard:      systems.NewKeyboardInputSystem(keys, module, module.Hold()),
		pointer:       systems.NewPointerButtonSystem(pointer, module, module.Hold(), buttons),
		store:         opts.Store,
		savedRevision: module.Session().Revision(),
	}
}

// Module 返回娃娃机模块
func (s *ClawScene) Module() *modules.ClawMachineModule {
	return s.module
}

// Update 更新场景
func (s *ClawScene) Update(deltaTime float64) {
	if !s.keys.IsFocused() {
		s.pointer.ReleaseAll()
	}
	s.keyboard.Update()
	s.pointer.Update()
	s.module.Update(deltaTime)

	if s.module.Session().Revision() != s.savedRevision {
		s.saveProgress()
	}
}

// SaveOnExit 实现 game.Saveable
func (s *ClawScene) SaveOnExit() bool {
	ok := s.saveProgress()
	s.module.Close()
	return ok
}

func (s *ClawScene) saveProgress() bool {
	session := s.module.Session()
	s.savedRevision = session.Revision()
	if s.store == nil {
		return true
	}
	if err := s.store.Save(session.Snapshot()); err != nil {
		log.Printf("[ClawScene] 保存进度失败: %v", err)
		return false
	}
	return true
}
