//go:build ignore

// validate_machine_yaml 检查机器配置文件
//
// 除了 MachineConfig.Validate 的基本检查外，还会报告：
//   - 重复的奖品ID
//   - 超出爪子移动范围或下降深度、抓不到的奖品
//   - 颜色格式错误
//
// 用法:
//
//	go run tools/validate_machine_yaml.go [path]
package main

import (
	"fmt"
	"log"
	"os"
	"regexp"

	"github.com/gonewx/clawmachine/pkg/config"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func main() {
	configPath := "data/machine.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadMachineConfig(configPath)
	if err != nil {
		log.Fatalf("配置无效: %v", err)
	}

	m := cfg.Machine
	reach := cfg.Claw.GrabWidth / 2
	warnings := 0
	seen := make(map[int]bool)

	for _, p := range cfg.Prizes {
		if seen[p.ID] {
			fmt.Printf("⚠️  奖品ID重复: %d (%s)\n", p.ID, p.Name)
			warnings++
		}
		seen[p.ID] = true

		if p.X+p.Radius+reach <= m.MinX || p.X-p.Radius-reach >= m.MaxX {
			fmt.Printf("⚠️  奖品 #%d %s 在爪子移动范围外 (x=%.0f)\n", p.ID, p.Name, p.X)
			warnings++
		}
		if p.Y-p.Radius > m.MaxDescentY+cfg.Claw.TipOffset {
			fmt.Printf("⚠️  奖品 #%d %s 低于爪子最大下降深度 (y=%.0f)\n", p.ID, p.Name, p.Y)
			warnings++
		}
		if p.Color != "" && !hexColor.MatchString(p.Color) {
			fmt.Printf("⚠️  奖品 #%d %s 颜色格式错误: %q\n", p.ID, p.Name, p.Color)
			warnings++
		}
	}

	fmt.Printf("✅ %s: %d 个奖品, %d 个警告\n", configPath, len(cfg.Prizes), warnings)
	if warnings > 0 {
		os.Exit(1)
	}
}
