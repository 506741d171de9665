//go:build mobile

package utils

// IsMobile 使用 -tags mobile 构建时总是 true（隐藏键盘帮助，只显示屏幕按钮）
func IsMobile() bool {
	return true
}
