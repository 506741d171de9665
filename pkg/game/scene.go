package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 场景接口
// 由 SceneManager 驱动，同一时刻只有一个场景被更新和绘制
type Scene interface {
	// Update 推进场景逻辑，deltaTime 为上一帧到现在的秒数
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：场景被切走或程序退出前保存状态
//
// 调用时机：
//   - SceneManager.SwitchTo 切换到其他场景
//   - 游戏窗口关闭（App.Shutdown）
type Saveable interface {
	// SaveOnExit 保存状态并释放场景持有的回调
	// 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}
