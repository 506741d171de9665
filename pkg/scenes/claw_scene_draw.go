package scenes

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/gonewx/clawmachine/pkg/components"
	"github.com/gonewx/clawmachine/pkg/config"
	"github.com/gonewx/clawmachine/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colorBackground  = color.RGBA{34, 24, 48, 255}
	colorGlass       = color.RGBA{60, 70, 110, 255}
	colorFrame       = color.RGBA{230, 90, 140, 255}
	colorRail        = color.RGBA{180, 180, 200, 255}
	colorCable       = color.RGBA{210, 210, 220, 255}
	colorClaw        = color.RGBA{250, 200, 60, 255}
	colorChute       = color.RGBA{20, 20, 30, 255}
	colorTouch       = color.RGBA{255, 255, 120, 255}
	colorButton      = color.RGBA{80, 60, 120, 255}
	colorButtonDown  = color.RGBA{230, 90, 140, 255}
	colorOverlay     = color.RGBA{0, 0, 0, 170}
	colorPanel       = color.RGBA{50, 40, 80, 240}
	colorRareOutline = color.RGBA{255, 215, 0, 255}
)

// railY 钢缆挂点所在的横梁（机器本地坐标）
const railY = 15.0

// Draw 绘制场景
func (s *ClawScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	s.drawMachine(screen)
	s.drawPrizes(screen)
	s.drawClaw(screen)
	s.drawDroppedPrizes(screen)
	s.drawHUD(screen)
	s.drawButtons(screen)
	s.drawOutcome(screen)
}

func (s *ClawScene) drawMachine(screen *ebiten.Image) {
	m := s.module.Config().Machine
	x, y := config.MachineToScreen(0, 0)

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(m.Width), float32(m.Height), colorGlass, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(m.Width), float32(m.Height), 4, colorFrame, false)

	// 横梁
	rx1, ry := config.MachineToScreen(m.MinX, railY)
	rx2, _ := config.MachineToScreen(m.MaxX, railY)
	vector.StrokeLine(screen, float32(rx1), float32(ry), float32(rx2), float32(ry), 3, colorRail, true)

	// 出口
	cx, cy := config.MachineToScreen(m.DropZoneX-30, m.DropZoneY-20)
	vector.DrawFilledRect(screen, float32(cx), float32(cy), 60, float32(m.Height-(m.DropZoneY-20)), colorChute, false)
	ebitenutil.DebugPrintAt(screen, "EXIT", int(cx)+16, int(cy)+4)

	// 收集托盘
	tx, ty := s.module.TrayPosition()
	sx, sy := config.MachineToScreen(tx-40, ty-12)
	vector.DrawFilledRect(screen, float32(sx), float32(sy), 80, 24, colorChute, false)
	vector.StrokeRect(screen, float32(sx), float32(sy), 80, 24, 2, colorFrame, false)
}

func (s *ClawScene) drawPrizes(screen *ebiten.Image) {
	for _, v := range s.module.Prizes() {
		if v.Grabbed {
			// 跟随爪子，在 drawClaw 中绘制
			continue
		}
		x, y := config.MachineToScreen(v.X, v.Y)
		drawPrize(screen, v.Prize, x, y)
		if v.Touching {
			vector.StrokeCircle(screen, float32(x), float32(y), float32(v.Prize.Radius+3), 2, colorTouch, true)
		}
	}
}

// swayOffset 根据摆动角度计算爪子相对挂点的水平偏移
func swayOffset(angleDeg, length float64) float64 {
	return length * math.Sin(angleDeg*math.Pi/180)
}

func (s *ClawScene) drawClaw(screen *ebiten.Image) {
	cfg := s.module.Config()
	claw := s.module.Claw()
	dx := swayOffset(s.module.SwayAngle(), claw.Y-railY)

	topX, topY := config.MachineToScreen(claw.X, railY)
	bodyX, bodyY := config.MachineToScreen(claw.X+dx, claw.Y)

	vector.StrokeLine(screen, float32(topX), float32(topY), float32(bodyX), float32(bodyY), 2, colorCable, true)
	vector.DrawFilledRect(screen, float32(bodyX-10), float32(bodyY-6), 20, 12, colorClaw, false)

	// 抓着的奖品画在爪子之间
	for _, v := range s.module.Prizes() {
		if v.Grabbed {
			px, py := config.MachineToScreen(v.X+dx, v.Y)
			drawPrize(screen, v.Prize, px, py)
		}
	}

	// 爪臂：张开程度决定爪尖的水平距离
	spread := 6 + 16*claw.Openness
	tipY := bodyY + cfg.Claw.TipOffset
	for _, side := range []float64{-1, 1} {
		elbowX := bodyX + side*(spread+4)
		elbowY := bodyY + cfg.Claw.TipOffset*0.5
		tipX := bodyX + side*spread*0.6
		vector.StrokeLine(screen, float32(bodyX), float32(bodyY), float32(elbowX), float32(elbowY), 3, colorClaw, true)
		vector.StrokeLine(screen, float32(elbowX), float32(elbowY), float32(tipX), float32(tipY), 3, colorClaw, true)
	}
}

func (s *ClawScene) drawDroppedPrizes(screen *ebiten.Image) {
	for _, d := range s.module.DroppedPrizes() {
		x, y := config.MachineToScreen(d.X, d.Y)
		drawPrize(screen, d.Prize, x, y)
	}
}

func (s *ClawScene) drawHUD(screen *ebiten.Image) {
	session := s.module.Session()
	claw := s.module.Claw()

	lines := []string{
		"CLAW MACHINE",
		"",
		fmt.Sprintf("COINS:      %d", session.Coins()),
		fmt.Sprintf("SCORE:      %d", session.Score()),
		fmt.Sprintf("IN MACHINE: %d / %d", session.Field().Len(), session.TotalPrizes()),
		fmt.Sprintf("COLLECTED:  %d", len(session.CollectedPrizes())),
		"",
		fmt.Sprintf("CLAW: %s", claw.Phase),
	}
	switch {
	case s.module.IsStabilizing():
		lines = append(lines, "CABLE: STABILIZING")
	case session.IsActive():
		lines = append(lines, "READY - MOVE AND GRAB")
	case session.Coins() == 0:
		lines = append(lines, "INSERT COINS")
	default:
		lines = append(lines, "PRESS START")
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(config.HUDX), int(config.HUDY+float64(i)*config.HUDLineHeight))
	}

	// 已收集奖品
	collected := session.CollectedPrizes()
	for i, p := range collected {
		x := config.HUDX + 12 + float64(i%10)*24
		y := config.HUDY + float64(len(lines))*config.HUDLineHeight + 20 + float64(i/10)*24
		vector.DrawFilledCircle(screen, float32(x), float32(y), 9, parseHexColor(p.Color), true)
	}

	if !utils.IsMobile() {
		help := "ARROWS/A/D: MOVE  SPACE: GRAB\nENTER: START  C: COINS  R: RESET\nESC: CLOSE RESULT  F11: FULLSCREEN"
		ebitenutil.DebugPrintAt(screen, help, int(config.HUDX), 560)
	}
}

func (s *ClawScene) drawButtons(screen *ebiten.Image) {
	hold := s.module.Hold()
	active := s.pointer.ActiveButton()
	for _, b := range s.pointer.Buttons() {
		c := colorButton
		if active == b.ID || hold.IsPressed(b.ID) || hold.IsHolding(b.ID) {
			c = colorButtonDown
		}
		r := b.Rect
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, colorRail, false)
		cx, cy := r.Center()
		ebitenutil.DebugPrintAt(screen, b.Label, int(cx)-len(b.Label)*3, int(cy)-8)
	}
}

func (s *ClawScene) drawOutcome(screen *ebiten.Image) {
	session := s.module.Session()
	outcome, ok := session.Outcome()
	if !ok || !session.IsOutcomeShown() {
		return
	}
	m := s.module.Config().Machine
	x, y := config.MachineToScreen(0, 0)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(m.Width), float32(m.Height), colorOverlay, false)

	px, py := x+50, y+m.Height/2-70
	pw, ph := m.Width-100, 140.0
	vector.DrawFilledRect(screen, float32(px), float32(py), float32(pw), float32(ph), colorPanel, false)
	vector.StrokeRect(screen, float32(px), float32(py), float32(pw), float32(ph), 3, colorFrame, false)

	lines := []string{outcome.Message}
	if outcome.Won {
		drawPrize(screen, outcome.Prize, px+pw/2, py+60)
		lines = append(lines, "", "", "", fmt.Sprintf("%s  +%d", outcome.Prize.Name, outcome.Reward))
		if outcome.Prize.IsRare() {
			lines = append(lines, "RARE PRIZE!")
		}
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), int(px)+20, int(py)+14)
	ebitenutil.DebugPrintAt(screen, "ENTER: PLAY AGAIN   ESC: CLOSE", int(px)+20, int(py+ph)-22)
}

// drawPrize 绘制奖品：彩色圆形 + 名称首字母，稀有奖品带金色描边
func drawPrize(screen *ebiten.Image, p components.Prize, x, y float64) {
	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(p.Radius), parseHexColor(p.Color), true)
	if p.IsRare() {
		vector.StrokeCircle(screen, float32(x), float32(y), float32(p.Radius), 2, colorRareOutline, true)
	}
	if p.Name != "" {
		ebitenutil.DebugPrintAt(screen, p.Name[:1], int(x)-3, int(y)-8)
	}
}

// parseHexColor 解析 "#rrggbb"，格式错误时返回灰色
func parseHexColor(s string) color.RGBA {
	fallback := color.RGBA{160, 160, 160, 255}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
