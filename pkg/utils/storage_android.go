//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在打开 gdata 之前创建 Android 存档目录
// gdata 使用 /data/data/{package}/ 作为根目录，但不会创建 saves 子目录
func EnsureStorageDir() error {
	root := GetStoragePath()
	if root == "" {
		return fmt.Errorf("cannot detect Android package name")
	}

	savesDir := filepath.Join(root, "saves")
	if err := os.MkdirAll(savesDir, 0755); err != nil {
		return fmt.Errorf("failed to create saves directory %s: %w", savesDir, err)
	}

	probe, err := os.CreateTemp(savesDir, ".probe-*")
	if err != nil {
		return fmt.Errorf("saves directory %s is not writable: %w", savesDir, err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

// GetStoragePath 返回 /data/data/{package}，无法识别包名时返回空字符串
func GetStoragePath() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	name, err := parseProcessName(data)
	if err != nil {
		return ""
	}
	return filepath.Join("/data/data", name)
}
