// verify_claw_cycle 无窗口运行完整的抓取流程
//
// 对配置中的每个奖品：新建会话、投币开始、把爪子移动到奖品正上方（按 MoveStep 对齐）、
// 抓取并以固定 60 TPS 推进调度器直到爪子回到空闲，然后打印结果。
//
// 用法:
//
//	go run ./cmd/verify_claw_cycle
//	go run ./cmd/verify_claw_cycle -config data/machine.yaml -x 120
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/gonewx/clawmachine/pkg/components"
	"github.com/gonewx/clawmachine/pkg/config"
	"github.com/gonewx/clawmachine/pkg/game"
	"github.com/gonewx/clawmachine/pkg/modules"
)

const (
	frame     = 1.0 / 60.0
	maxFrames = 60 * 30
)

var (
	configPath = flag.String("config", "data/machine.yaml", "机器配置文件路径")
	targetX    = flag.Float64("x", math.NaN(), "只在指定X坐标抓取一次")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadMachineConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法加载配置: %v\n", err)
		os.Exit(1)
	}

	if !math.IsNaN(*targetX) {
		report(fmt.Sprintf("x=%.0f", *targetX), runCycle(cfg, *targetX))
		return
	}

	wins := 0
	for _, p := range cfg.Prizes {
		r := runCycle(cfg, p.X)
		report(fmt.Sprintf("#%d %s", p.ID, p.Name), r)
		if r.outcome.Won {
			wins++
		}
	}
	fmt.Printf("\n%d/%d 次抓取成功\n", wins, len(cfg.Prizes))
}

type cycleResult struct {
	clawX   float64
	frames  int
	phases  []components.ClawPhase
	outcome game.GrabOutcome
	ok      bool
	score   int
}

func runCycle(cfg *config.MachineConfig, x float64) cycleResult {
	session := game.NewSession(cfg)
	module := modules.NewClawMachineModule(cfg, session, nil)
	defer module.Close()

	module.Start()
	for i := 0; i < 1000; i++ {
		before := module.Claw().X
		if math.Abs(before-x) <= cfg.Machine.MoveStep/2 {
			break
		}
		if before < x {
			module.MoveRight()
		} else {
			module.MoveLeft()
		}
		// 到达移动边界
		if module.Claw().X == before {
			break
		}
	}

	r := cycleResult{clawX: module.Claw().X}
	if !module.Grab() {
		return r
	}

	last := components.ClawPhase(-1)
	for r.frames = 0; r.frames < maxFrames; r.frames++ {
		module.Update(frame)
		phase := module.Claw().Phase
		if phase != last {
			r.phases = append(r.phases, phase)
			last = phase
		}
		if phase == components.PhaseIdle {
			break
		}
	}
	r.outcome, r.ok = session.Outcome()
	r.score = session.Score()
	return r
}

func report(label string, r cycleResult) {
	if !r.ok {
		fmt.Printf("%-16s clawX=%6.1f  无结果\n", label, r.clawX)
		return
	}
	status := "LOSS"
	if r.outcome.Won {
		status = "WIN "
	}
	fmt.Printf("%-16s clawX=%6.1f  %s  score=%-4d %.2fs  %v\n",
		label, r.clawX, status, r.score, float64(r.frames)*frame, r.phases)
}
