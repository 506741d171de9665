package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager 场景管理器
// 同一时刻只有一个活动场景，只有它的 Update 和 Draw 会被调用
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager 创建场景管理器（初始没有活动场景，使用 SwitchTo 设置）
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo 切换活动场景
// 旧场景实现 Saveable 时先调用 SaveOnExit，让它保存进度并释放回调
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if saveable, ok := sm.currentScene.(Saveable); ok {
		if !saveable.SaveOnExit() {
			log.Printf("[SceneManager] 旧场景保存失败")
		}
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
// 游戏关闭时用于检查当前场景是否需要保存
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Shutdown 退出前保存当前场景
//
// 返回：
//   - bool: 保存成功或无需保存
func (sm *SceneManager) Shutdown() bool {
	saveable, ok := sm.currentScene.(Saveable)
	if !ok {
		return true
	}
	return saveable.SaveOnExit()
}

// Update 更新活动场景，deltaTime 为秒
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制活动场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
