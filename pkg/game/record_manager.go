package game

import (
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// RunRecord 一局模拟结束后的成绩记录
// 只保存元数据（战绩），实体状态本身从不持久化
type RunRecord struct {
	Kills               int       `yaml:"kills"`               // 击杀数
	ExperienceCollected int       `yaml:"experienceCollected"` // 获得经验
	SurvivalTimeMs      float64   `yaml:"survivalTimeMs"`      // 存活时间（毫秒）
	AchievedAt          time.Time `yaml:"achievedAt"`          // 达成时间
}

// RecordManager 最佳成绩管理器
// 负责最佳成绩的加载、比较和保存
type RecordManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	best         *RunRecord     // 当前最佳成绩，可为 nil（尚无记录）
}

// 存储路径常量
const (
	recordsObject   = "records"
	recordsProperty = "best_run"
)

// NewRecordManager 创建新的成绩管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存记录）
//
// 返回：
//   - *RecordManager: 成绩管理器实例
func NewRecordManager(gdataManager *gdata.Manager) *RecordManager {
	rm := &RecordManager{
		gdataManager: gdataManager,
	}

	if err := rm.Load(); err != nil {
		// 加载失败不是致命错误，视为尚无记录
		log.Printf("[RecordManager] Warning: Failed to load best run record: %v", err)
	}

	return rm
}

// Load 从 gdata 加载最佳成绩
func (rm *RecordManager) Load() error {
	if rm.gdataManager == nil {
		return nil
	}

	if !rm.gdataManager.ObjectPropExists(recordsObject, recordsProperty) {
		return nil
	}

	data, err := rm.gdataManager.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return fmt.Errorf("failed to load best run record: %w", err)
	}

	var record RunRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("failed to unmarshal best run record: %w", err)
	}

	rm.best = &record
	return nil
}

// Best 返回当前最佳成绩；尚无记录时返回 nil
func (rm *RecordManager) Best() *RunRecord {
	return rm.best
}

// SubmitRun 提交一局成绩
// 击杀数高于当前最佳（或尚无记录）时更新并持久化
//
// 返回：
//   - bool: 是否刷新了最佳成绩
//   - error: 持久化失败时返回错误（内存中的记录仍会更新）
func (rm *RecordManager) SubmitRun(kills, experience int, survivalTimeMs float64) (bool, error) {
	if rm.best != nil && kills <= rm.best.Kills {
		return false, nil
	}

	rm.best = &RunRecord{
		Kills:               kills,
		ExperienceCollected: experience,
		SurvivalTimeMs:      survivalTimeMs,
		AchievedAt:          time.Now(),
	}

	return true, rm.save()
}

// save 保存最佳成绩到 gdata
func (rm *RecordManager) save() error {
	// 降级模式：无法持久化，但不报错
	if rm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(rm.best)
	if err != nil {
		return fmt.Errorf("failed to marshal best run record: %w", err)
	}

	if err := rm.gdataManager.SaveObjectProp(recordsObject, recordsProperty, data); err != nil {
		return fmt.Errorf("failed to save best run record: %w", err)
	}

	log.Printf("[RecordManager] Best run record saved (kills=%d)", rm.best.Kills)
	return nil
}
