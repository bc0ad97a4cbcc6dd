package game

import (
	"math"

	"github.com/macsampson/keys-to-hell-sub000/pkg/config"
	"github.com/macsampson/keys-to-hell-sub000/pkg/types"
)

// ResolvedEnemyStats 已按等级折算完毕的敌人属性
// 核心只消费这些标量，不关心数值曲线如何制作
type ResolvedEnemyStats struct {
	Health          int
	Damage          int
	Speed           float64
	ExperienceValue int
	Pattern         types.MovementPattern
}

// SpawnSettings 生成系统当前应采用的参数
type SpawnSettings struct {
	SpawnRateMs   float64           // 生成间隔（毫秒）
	MaxEnemies    int               // 场上敌人数量上限
	EnemyTypes    []types.EnemyType // 当前已解锁的敌人类型，按解锁等级排序
	SpecialChance float64           // "特殊"升级敌人替换概率（0-1）
}

// BalanceProvider 数值平衡协作方接口
//
// 供给当前难度层级的敌人属性表和生成参数。
// 核心按等级查询，不持有任何平衡曲线
type BalanceProvider interface {
	// GetEnemyStats 查询指定等级下某敌人类型的折算属性
	GetEnemyStats(level int, enemyType types.EnemyType) ResolvedEnemyStats

	// GetSpawnSettings 查询指定等级下的生成参数
	GetSpawnSettings(level int) SpawnSettings
}

// ConfigBalanceProvider 基于 YAML 配置表的默认平衡实现
//
// 属性按等级线性缩放：value * (1 + perLevel * (level-1))
type ConfigBalanceProvider struct {
	enemyStats    *config.EnemyStatsConfig
	spawnSettings *config.SpawnSettingsConfig
}

// NewConfigBalanceProvider 创建配置表平衡实现
// 任一配置为 nil 时使用对应的内置默认表
func NewConfigBalanceProvider(enemyStats *config.EnemyStatsConfig, spawnSettings *config.SpawnSettingsConfig) *ConfigBalanceProvider {
	if enemyStats == nil {
		enemyStats = config.DefaultEnemyStats()
	}
	if spawnSettings == nil {
		spawnSettings = config.DefaultSpawnSettings()
	}
	return &ConfigBalanceProvider{
		enemyStats:    enemyStats,
		spawnSettings: spawnSettings,
	}
}

// GetEnemyStats 查询并折算敌人属性
// 未知类型由配置层回退为 basic
func (p *ConfigBalanceProvider) GetEnemyStats(level int, enemyType types.EnemyType) ResolvedEnemyStats {
	if level < 1 {
		level = 1
	}

	raw := p.enemyStats.GetEnemyStats(enemyType.String())
	scaling := p.enemyStats.Scaling
	levelFactor := float64(level - 1)

	return ResolvedEnemyStats{
		Health:          scaleInt(raw.Health, scaling.HealthPerLevel, levelFactor),
		Damage:          scaleInt(raw.Damage, scaling.DamagePerLevel, levelFactor),
		Speed:           raw.Speed * (1 + scaling.SpeedPerLevel*levelFactor),
		ExperienceValue: raw.ExperienceValue,
		Pattern:         types.MovementPatternFromString(raw.Pattern),
	}
}

// GetSpawnSettings 查询生成参数
// 解锁类型列表按 types.AllEnemyTypes 的解锁顺序过滤得出，
// "特殊"替换语义（总是取列表最后一个）依赖该顺序
func (p *ConfigBalanceProvider) GetSpawnSettings(level int) SpawnSettings {
	if level < 1 {
		level = 1
	}

	band := p.spawnSettings.BandForLevel(level)

	unlocked := make([]types.EnemyType, 0, len(types.AllEnemyTypes))
	for _, et := range types.AllEnemyTypes {
		if stats, ok := p.enemyStats.Enemies[et.String()]; ok && stats.UnlockLevel <= level {
			unlocked = append(unlocked, et)
		}
	}
	if len(unlocked) == 0 {
		unlocked = append(unlocked, types.EnemyBasic)
	}

	return SpawnSettings{
		SpawnRateMs:   band.SpawnRateMs,
		MaxEnemies:    band.MaxEnemies,
		EnemyTypes:    unlocked,
		SpecialChance: band.SpecialChance,
	}
}

// scaleInt 按比例缩放整数属性并向下取整
func scaleInt(base int, perLevel, levelFactor float64) int {
	return int(math.Floor(float64(base) * (1 + perLevel*levelFactor)))
}
