//go:build !mobile

// stub.go - 普通构建时的占位文件
//
// ebitenmobile 入口在 mobile.go 和 embed.go 中，只在 -tags mobile 时编译；
// 这个文件让 go build ./... 在桌面端也能通过。
package mobile

// Dummy 空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
