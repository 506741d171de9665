package main

import (
	"flag"
	"log"
	"os"

	"github.com/gonewx/clawmachine/pkg/app"
	"github.com/gonewx/clawmachine/pkg/config"
	"github.com/gonewx/clawmachine/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "机器配置文件路径（默认使用内置 data/machine.yaml）")
	fresh := flag.Bool("fresh", false, "忽略存档，从初始状态开始")
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:      *verbose,
		ConfigPath:   *configPath,
		FreshSession: *fresh,
	})
	if err != nil {
		// NewApp 可能已关闭日志输出，错误直接写到 stderr
		log.SetOutput(os.Stderr)
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("抓娃娃机 Claw Machine")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)
	gameApp.Shutdown()
	if runErr != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(runErr)
	}
}
