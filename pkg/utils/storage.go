package utils

import (
	"bytes"
	"fmt"
)

// parseProcessName 从 /proc/self/cmdline 的内容中取出进程名
// cmdline 以 NUL 分隔参数，只取第一个参数
func parseProcessName(cmdline []byte) (string, error) {
	if i := bytes.IndexByte(cmdline, 0); i >= 0 {
		cmdline = cmdline[:i]
	}
	name := string(bytes.TrimSpace(cmdline))
	if name == "" {
		return "", fmt.Errorf("empty process name in cmdline")
	}
	return name, nil
}
