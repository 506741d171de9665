// Package app 提供娃娃机应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/clawmachine/pkg/config"
	"github.com/gonewx/clawmachine/pkg/embedded"
	"github.com/gonewx/clawmachine/pkg/game"
	"github.com/gonewx/clawmachine/pkg/modules"
	"github.com/gonewx/clawmachine/pkg/scenes"
	"github.com/gonewx/clawmachine/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "clawmachine"

// DefaultConfigPath 嵌入的机器配置路径
const DefaultConfigPath = "data/machine.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部机器配置文件，为空则使用嵌入的 data/machine.yaml
	ConfigPath string
	// FreshSession 忽略存档，从初始状态开始
	FreshSession bool
}

// App 娃娃机应用，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 使用嵌入配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	machineConfig, err := loadMachineConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("机器配置加载失败: %w", err)
	}
	log.Printf("[Config] 机器配置加载完成: %d 个奖品", len(machineConfig.Prizes))

	gdataManager := openStorage()
	settings := game.NewSettingsManager(gdataManager)
	saveManager := game.NewSaveManager(gdataManager)

	audioContext := audio.NewContext(game.SampleRate)
	audioManager := game.NewAudioManager(audioContext, settings)
	log.Printf("[App] AudioManager initialized")

	session := game.NewSession(machineConfig)
	if !cfg.FreshSession && saveManager.HasSave() {
		data, err := saveManager.Load()
		if err != nil {
			log.Printf("[App] 读取存档失败，从初始状态开始: %v", err)
		} else {
			session.Restore(data)
			log.Printf("[App] 从存档恢复: coins=%d score=%d collected=%d",
				data.Coins, data.Score, len(data.CollectedPrizeIDs))
		}
	}

	module := modules.NewClawMachineModule(machineConfig, session, audioManager)
	scene := scenes.NewClawScene(module, scenes.ClawSceneOptions{Store: saveManager})

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// loadMachineConfig 读取外部配置文件，路径为空时读取嵌入配置
func loadMachineConfig(path string) (*config.MachineConfig, error) {
	if path != "" {
		return config.LoadMachineConfig(path)
	}
	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return config.ParseMachineConfig(data)
}

// openStorage 打开 gdata 存储，失败时返回 nil（降级为只在内存中保存）
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: 创建存储目录失败: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata 不可用，进度不会持久化: %v", err)
		return nil
	}
	return manager
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		enabled := a.settings.ToggleSound()
		log.Printf("[App] 音效: %v", enabled)
		a.saveSettings()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settings.SetFullscreen(false)
	} else {
		ebiten.SetFullscreen(true)
		a.settings.SetFullscreen(true)
	}
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] 保存设置失败: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时用黑色 letterbox，并使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸，Ebitengine 自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 退出前保存进度和设置
func (a *App) Shutdown() {
	if !a.sceneManager.Shutdown() {
		log.Printf("[App] 退出时保存进度失败")
	}
	a.saveSettings()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
