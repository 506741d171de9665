package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// SaveData 保存数据结构
//
// 保存内容：
//   - 当前硬币数
//   - 当前得分
//   - 已收集奖品ID（按获得顺序）
type SaveData struct {
	Coins             int   `yaml:"coins"`
	Score             int   `yaml:"score"`
	CollectedPrizeIDs []int `yaml:"collectedPrizeIds"`
}

// 存储路径常量
const (
	saveObject   = "progress"
	saveProperty = "session"
)

// SaveManager 进度保存管理器
//
// 职责：
//   - 加载和保存会话进度（硬币、得分、已收集奖品）
//
// 架构说明：
//   - 数据通过 gdata 跨平台存储（桌面、移动端、浏览器 localStorage）
//   - 序列化格式为 YAML，与项目其他配置文件保持一致
//   - gdataManager 为 nil 时进入降级模式：只在内存中保存，不报错
type SaveManager struct {
	gdataManager *gdata.Manager
	data         *SaveData
}

// NewSaveManager 创建保存管理器
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式）
func NewSaveManager(gdataManager *gdata.Manager) *SaveManager {
	return &SaveManager{
		gdataManager: gdataManager,
	}
}

// HasSave 是否存在存档
func (sm *SaveManager) HasSave() bool {
	if sm.gdataManager == nil {
		return sm.data != nil
	}
	return sm.gdataManager.ObjectPropExists(saveObject, saveProperty)
}

// Load 加载存档
//
// 返回：
//   - *SaveData: 存档数据，不存在时返回 nil
//   - error: 读取或反序列化失败时返回错误
func (sm *SaveManager) Load() (*SaveData, error) {
	if sm.gdataManager == nil {
		return sm.data, nil
	}

	if !sm.gdataManager.ObjectPropExists(saveObject, saveProperty) {
		return nil, nil
	}

	raw, err := sm.gdataManager.LoadObjectProp(saveObject, saveProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load save data: %w", err)
	}

	var data SaveData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal save data: %w", err)
	}

	sm.data = &data
	log.Printf("[SaveManager] 存档已加载: coins=%d, score=%d, collected=%d",
		data.Coins, data.Score, len(data.CollectedPrizeIDs))
	return &data, nil
}

// Save 保存存档
//
// 返回：
//   - error: 序列化或写入失败时返回错误
func (sm *SaveManager) Save(data *SaveData) error {
	if data == nil {
		return fmt.Errorf("save data is nil")
	}

	copied := *data
	copied.CollectedPrizeIDs = append([]int(nil), data.CollectedPrizeIDs...)
	sm.data = &copied

	// 降级模式：无法持久化，但不报错
	if sm.gdataManager == nil {
		return nil
	}

	raw, err := yaml.Marshal(&copied)
	if err != nil {
		return fmt.Errorf("failed to marshal save data: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(saveObject, saveProperty, raw); err != nil {
		return fmt.Errorf("failed to save data: %w", err)
	}

	log.Printf("[SaveManager] 存档已保存: coins=%d, score=%d", copied.Coins, copied.Score)
	return nil
}
