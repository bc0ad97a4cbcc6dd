package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnemyStats 单个敌人类型的属性配置
type EnemyStats struct {
	Health          int     `yaml:"health"`          // 基础生命值
	Damage          int     `yaml:"damage"`          // 接触伤害
	Speed           float64 `yaml:"speed"`           // 基础移动速度（像素/秒）
	ExperienceValue int     `yaml:"experienceValue"` // 击杀经验值
	Pattern         string  `yaml:"pattern"`         // 移动模式（straight/sine_wave/spiral/homing）
	UnlockLevel     int     `yaml:"unlockLevel"`     // 解锁等级
}

// LevelScaling 按玩家等级缩放敌人属性的系数
type LevelScaling struct {
	HealthPerLevel float64 `yaml:"healthPerLevel"` // 每级生命值增幅（比例）
	DamagePerLevel float64 `yaml:"damagePerLevel"` // 每级伤害增幅（比例）
	SpeedPerLevel  float64 `yaml:"speedPerLevel"`  // 每级速度增幅（比例）
}

// EnemyStatsConfig 敌人属性配置文件结构
type EnemyStatsConfig struct {
	Enemies map[string]EnemyStats `yaml:"enemies"` // 敌人类型到属性的映射
	Scaling LevelScaling          `yaml:"scaling"` // 等级缩放系数
}

// LoadEnemyStats 从 YAML 文件加载敌人属性配置
// 参数：
//
//	filePath - 配置文件路径（相对或绝对路径）
//
// 返回：
//
//	*EnemyStatsConfig - 解析后的配置对象
//	error - 如果文件读取或解析失败，返回错误信息
func LoadEnemyStats(filePath string) (*EnemyStatsConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy stats file %s: %w", filePath, err)
	}

	var config EnemyStatsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse enemy stats YAML from %s: %w", filePath, err)
	}

	if err := validateEnemyStats(&config); err != nil {
		return nil, fmt.Errorf("invalid enemy stats in %s: %w", filePath, err)
	}

	return &config, nil
}

// DefaultEnemyStats 返回内置的敌人属性配置
// 配置文件缺失时模拟仍需能运行，此处提供与 assets/config/enemy_stats.yaml
// 一致的默认值作为回退
func DefaultEnemyStats() *EnemyStatsConfig {
	return &EnemyStatsConfig{
		Enemies: map[string]EnemyStats{
			"basic":  {Health: 30, Damage: 10, Speed: 60, ExperienceValue: 10, Pattern: "straight", UnlockLevel: 1},
			"fast":   {Health: 20, Damage: 8, Speed: 110, ExperienceValue: 15, Pattern: "sine_wave", UnlockLevel: 3},
			"tank":   {Health: 120, Damage: 20, Speed: 35, ExperienceValue: 40, Pattern: "straight", UnlockLevel: 5},
			"spiral": {Health: 45, Damage: 12, Speed: 80, ExperienceValue: 25, Pattern: "spiral", UnlockLevel: 8},
			"hunter": {Health: 60, Damage: 16, Speed: 90, ExperienceValue: 35, Pattern: "homing", UnlockLevel: 12},
		},
		Scaling: LevelScaling{
			HealthPerLevel: 0.12,
			DamagePerLevel: 0.08,
			SpeedPerLevel:  0.02,
		},
	}
}

// validateEnemyStats 验证敌人属性配置的完整性和合法性
func validateEnemyStats(config *EnemyStatsConfig) error {
	if len(config.Enemies) == 0 {
		return fmt.Errorf("at least one enemy type is required")
	}

	if _, ok := config.Enemies["basic"]; !ok {
		return fmt.Errorf("enemy type \"basic\" is required as the fallback type")
	}

	for enemyType, stats := range config.Enemies {
		if stats.Health <= 0 {
			return fmt.Errorf("enemy %s: health must be positive, got %d", enemyType, stats.Health)
		}

		if stats.Damage < 0 {
			return fmt.Errorf("enemy %s: damage cannot be negative, got %d", enemyType, stats.Damage)
		}

		if stats.Speed <= 0 {
			return fmt.Errorf("enemy %s: speed must be positive, got %f", enemyType, stats.Speed)
		}

		if stats.ExperienceValue < 0 {
			return fmt.Errorf("enemy %s: experienceValue cannot be negative, got %d", enemyType, stats.ExperienceValue)
		}

		if stats.UnlockLevel < 1 {
			return fmt.Errorf("enemy %s: unlockLevel must be at least 1, got %d", enemyType, stats.UnlockLevel)
		}
	}

	if config.Scaling.HealthPerLevel < 0 || config.Scaling.DamagePerLevel < 0 || config.Scaling.SpeedPerLevel < 0 {
		return fmt.Errorf("scaling factors cannot be negative")
	}

	return nil
}

// GetEnemyStats 获取指定敌人类型的完整属性
// 如果敌人类型不存在，回退为 basic 类型的属性
func (c *EnemyStatsConfig) GetEnemyStats(enemyType string) EnemyStats {
	if stats, ok := c.Enemies[enemyType]; ok {
		return stats
	}
	return c.Enemies["basic"]
}
