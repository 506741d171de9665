package config

// 布局配置常量
// 本文件定义了窗口尺寸、机器在屏幕中的位置以及 HUD 和屏幕按钮的位置
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 720
	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 640

	// MachineScreenX 机器左上角在屏幕中的X坐标
	// 机器本地坐标 + MachineScreenX/Y = 屏幕坐标
	MachineScreenX = 30.0
	// MachineScreenY 机器左上角在屏幕中的Y坐标
	MachineScreenY = 30.0

	// HUDX HUD 面板左边界
	HUDX = 460.0
	// HUDY HUD 面板上边界
	HUDY = 40.0
	// HUDLineHeight HUD 文字行高
	HUDLineHeight = 20.0
)

// ButtonLayout 屏幕按钮位置
type ButtonLayout struct {
	ID    string
	Label string
	X, Y  float64
	W, H  float64
}

// ControlButtons 屏幕按钮布局（ID 与输入系统的按钮ID一致）
var ControlButtons = []ButtonLayout{
	{ID: "left", Label: "<", X: 460, Y: 360, W: 70, H: 60},
	{ID: "grab", Label: "GRAB", X: 540, Y: 360, W: 80, H: 60},
	{ID: "right", Label: ">", X: 630, Y: 360, W: 70, H: 60},
	{ID: "start", Label: "START", X: 460, Y: 440, W: 115, H: 44},
	{ID: "coin", Label: "+COINS", X: 585, Y: 440, W: 115, H: 44},
	{ID: "reset", Label: "RESET", X: 460, Y: 500, W: 240, H: 40},
}

// MachineToScreen 机器本地坐标转换为屏幕坐标
func MachineToScreen(x, y float64) (float64, float64) {
	return x + MachineScreenX, y + MachineScreenY
}
