package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// SpawnBand 一个玩家等级区间的生成参数
type SpawnBand struct {
	MinLevel      int     `yaml:"minLevel"`      // 区间起始等级（含）
	SpawnRateMs   float64 `yaml:"spawnRateMs"`   // 生成间隔（毫秒）
	MaxEnemies    int     `yaml:"maxEnemies"`    // 场上敌人数量上限
	SpecialChance float64 `yaml:"specialChance"` // "特殊"升级敌人替换概率（0-1）
}

// SpawnSettingsConfig 敌人生成参数配置文件结构
// 各等级区间按 minLevel 升序排列，查询取不超过玩家等级的最后一个区间
type SpawnSettingsConfig struct {
	Bands []SpawnBand `yaml:"bands"`
}

// LoadSpawnSettings 从 YAML 文件加载敌人生成参数配置
func LoadSpawnSettings(filePath string) (*SpawnSettingsConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read spawn settings file %s: %w", filePath, err)
	}

	var config SpawnSettingsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse spawn settings YAML from %s: %w", filePath, err)
	}

	if err := validateSpawnSettings(&config); err != nil {
		return nil, fmt.Errorf("invalid spawn settings in %s: %w", filePath, err)
	}

	return &config, nil
}

// DefaultSpawnSettings 返回内置的生成参数配置
// 与 assets/config/spawn_settings.yaml 保持一致，作为文件缺失时的回退
func DefaultSpawnSettings() *SpawnSettingsConfig {
	return &SpawnSettingsConfig{
		Bands: []SpawnBand{
			{MinLevel: 1, SpawnRateMs: 2000, MaxEnemies: 10, SpecialChance: 0.0},
			{MinLevel: 3, SpawnRateMs: 1600, MaxEnemies: 14, SpecialChance: 0.05},
			{MinLevel: 5, SpawnRateMs: 1300, MaxEnemies: 18, SpecialChance: 0.08},
			{MinLevel: 8, SpawnRateMs: 1000, MaxEnemies: 24, SpecialChance: 0.12},
			{MinLevel: 12, SpawnRateMs: 750, MaxEnemies: 30, SpecialChance: 0.18},
		},
	}
}

// validateSpawnSettings 验证生成参数配置的有效性
func validateSpawnSettings(config *SpawnSettingsConfig) error {
	if len(config.Bands) == 0 {
		return fmt.Errorf("at least one spawn band is required")
	}

	if !sort.SliceIsSorted(config.Bands, func(i, j int) bool {
		return config.Bands[i].MinLevel < config.Bands[j].MinLevel
	}) {
		return fmt.Errorf("spawn bands must be sorted by minLevel ascending")
	}

	if config.Bands[0].MinLevel != 1 {
		return fmt.Errorf("first spawn band must start at level 1, got %d", config.Bands[0].MinLevel)
	}

	for i, band := range config.Bands {
		if band.SpawnRateMs <= 0 {
			return fmt.Errorf("band %d: spawnRateMs must be positive, got %f", i, band.SpawnRateMs)
		}
		if band.MaxEnemies <= 0 {
			return fmt.Errorf("band %d: maxEnemies must be positive, got %d", i, band.MaxEnemies)
		}
		if band.SpecialChance < 0 || band.SpecialChance > 1 {
			return fmt.Errorf("band %d: specialChance must be in [0,1], got %f", i, band.SpecialChance)
		}
	}

	return nil
}

// BandForLevel 返回适用于指定玩家等级的生成参数区间
// 等级低于全部区间时返回第一个区间
func (c *SpawnSettingsConfig) BandForLevel(level int) SpawnBand {
	selected := c.Bands[0]
	for _, band := range c.Bands {
		if band.MinLevel <= level {
			selected = band
		} else {
			break
		}
	}
	return selected
}
