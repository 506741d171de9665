package anim

// EasingFunc 缓动函数，输入输出都在 [0, 1]
type EasingFunc func(t float64) float64

// EaseLinear 匀速
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出：1 - (1-t)³
// 爪子下降使用，开始快、接近底部时减速
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseInQuad 二次方缓入：t²
// 爪子上升使用，起步慢（模拟收紧钢缆）
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次方缓出：1 - (1-t)²
// 横向运输和归位使用
func EaseOutQuad(t float64) float64 {
	u := 1 - t
	return 1 - u*u
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
