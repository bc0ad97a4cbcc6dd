package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/macsampson/keys-to-hell-sub000/pkg/config"
	"github.com/macsampson/keys-to-hell-sub000/pkg/ecs"
	"github.com/macsampson/keys-to-hell-sub000/pkg/entities"
	"github.com/macsampson/keys-to-hell-sub000/pkg/game"
	"github.com/macsampson/keys-to-hell-sub000/pkg/types"
)

// SpawnSystem 敌人生成系统
//
// 单计时器状态机：lastSpawnTime。
// 每帧检查 (now - lastSpawnTime) > spawnInterval 且场上敌人数 < maxEnemies，
// 满足则向 BalanceProvider 请求属性并在视口边缘生成一个敌人。
//
// spawnInterval 和 maxEnemies 可在任意时刻被外部修改（玩家升级时
// 平衡协作方会更新），修改缓存在 pending 字段里，下一帧开头统一生效，
// 不会打断进行中的帧
type SpawnSystem struct {
	entityManager *ecs.EntityManager
	registry      *game.EntityRegistry
	balance       game.BalanceProvider
	stats         *game.CombatStats

	playerLevel   int
	lastSpawnTime float64 // 上次生成时刻（毫秒）
	spawnInterval float64 // 生成间隔（毫秒）
	maxEnemies    int     // 场上敌人数量上限
	specialChance float64 // "特殊"升级敌人替换概率
	enemyTypes    []types.EnemyType

	// 外部修改先落在 pending，下一帧 applyPending 时生效
	pendingInterval   *float64
	pendingMaxEnemies *int
	pendingLevel      *int

	// 追击目标（通常为玩家位置），生成的敌人朝它移动
	targetX float64
	targetY float64
}

// NewSpawnSystem 创建敌人生成系统
//
// 参数:
//   - em: 实体管理器
//   - registry: 实体注册表（人口上限的事实来源）
//   - balance: 数值平衡协作方
//   - stats: 战斗计数器，可为 nil
func NewSpawnSystem(em *ecs.EntityManager, registry *game.EntityRegistry, balance game.BalanceProvider, stats *game.CombatStats) *SpawnSystem {
	s := &SpawnSystem{
		entityManager: em,
		registry:      registry,
		balance:       balance,
		stats:         stats,
		playerLevel:   1,
		spawnInterval: config.DefaultSpawnIntervalMs,
		maxEnemies:    config.DefaultMaxEnemies,
		enemyTypes:    []types.EnemyType{types.EnemyBasic},
		targetX:       config.PlayfieldWidth / 2,
		targetY:       config.PlayfieldHeight / 2,
	}

	if balance != nil {
		s.applySettings(balance.GetSpawnSettings(s.playerLevel))
	}

	return s
}

// Update 每帧的生成判定
//
// 参数:
//   - nowMs: 当前模拟时刻（毫秒）
func (s *SpawnSystem) Update(nowMs float64) {
	s.applyPending()

	if nowMs-s.lastSpawnTime <= s.spawnInterval {
		return
	}

	// 人口上限：注册表大小是唯一依据
	if s.registry.EnemyCount() >= s.maxEnemies {
		return
	}

	enemyType := s.pickEnemyType()
	x, y := s.edgeSpawnPosition()

	stats := s.balance.GetEnemyStats(s.playerLevel, enemyType)
	_, err := entities.NewEnemyEntity(s.entityManager, s.registry, enemyType, stats, x, y, s.targetX, s.targetY)
	if err != nil {
		// 生成失败静默降级为"无效果"，模拟继续运行
		log.Printf("[SpawnSystem] 生成敌人失败: %v", err)
		return
	}

	s.lastSpawnTime = nowMs
	if s.stats != nil {
		s.stats.EnemiesSpawned++
	}
}

// SetSpawnInterval 设置生成间隔（毫秒），下一帧生效
func (s *SpawnSystem) SetSpawnInterval(ms float64) {
	if ms <= 0 || math.IsNaN(ms) {
		return
	}
	v := ms
	s.pendingInterval = &v
}

// SetMaxEnemies 设置场上敌人数量上限，下一帧生效
func (s *SpawnSystem) SetMaxEnemies(n int) {
	if n < 0 {
		return
	}
	v := n
	s.pendingMaxEnemies = &v
}

// SetPlayerLevel 通知玩家等级变化
// 下一帧开头重新向 BalanceProvider 拉取生成参数
func (s *SpawnSystem) SetPlayerLevel(level int) {
	if level < 1 {
		level = 1
	}
	v := level
	s.pendingLevel = &v
}

// SetTarget 更新追击目标位置（通常每帧跟随玩家）
func (s *SpawnSystem) SetTarget(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	s.targetX = x
	s.targetY = y
}

// Target 返回当前追击目标位置
func (s *SpawnSystem) Target() (float64, float64) {
	return s.targetX, s.targetY
}

// PlayerLevel 返回当前玩家等级
func (s *SpawnSystem) PlayerLevel() int {
	return s.playerLevel
}

// applyPending 把缓存的外部修改落到生效字段（帧边界调用）
func (s *SpawnSystem) applyPending() {
	if s.pendingLevel != nil {
		s.playerLevel = *s.pendingLevel
		s.pendingLevel = nil
		if s.balance != nil {
			s.applySettings(s.balance.GetSpawnSettings(s.playerLevel))
		}
	}
	if s.pendingInterval != nil {
		s.spawnInterval = *s.pendingInterval
		s.pendingInterval = nil
	}
	if s.pendingMaxEnemies != nil {
		s.maxEnemies = *s.pendingMaxEnemies
		s.pendingMaxEnemies = nil
	}
}

// applySettings 采用平衡协作方给出的生成参数
func (s *SpawnSystem) applySettings(settings game.SpawnSettings) {
	if settings.SpawnRateMs > 0 {
		s.spawnInterval = settings.SpawnRateMs
	}
	if settings.MaxEnemies > 0 {
		s.maxEnemies = settings.MaxEnemies
	}
	s.specialChance = settings.SpecialChance
	if len(settings.EnemyTypes) > 0 {
		s.enemyTypes = settings.EnemyTypes
	}
}

// pickEnemyType 选择本次生成的敌人类型
//
// 常规：在已解锁类型中均匀随机；
// "特殊"替换：命中 specialChance 时固定选取列表最后一个
// （即最高解锁等级的类型），绝不在高级类型之间随机
func (s *SpawnSystem) pickEnemyType() types.EnemyType {
	if len(s.enemyTypes) == 0 {
		return types.EnemyBasic
	}

	if s.specialChance > 0 && rand.Float64() < s.specialChance {
		return s.enemyTypes[len(s.enemyTypes)-1]
	}

	return s.enemyTypes[rand.Intn(len(s.enemyTypes))]
}

// edgeSpawnPosition 计算视口边缘的生成位置
// 四条边均匀选择，垂直于该边的坐标在视口范围内均匀分布
func (s *SpawnSystem) edgeSpawnPosition() (float64, float64) {
	switch rand.Intn(4) {
	case 0: // 上边
		return rand.Float64() * config.PlayfieldWidth, 0
	case 1: // 右边
		return config.PlayfieldWidth, rand.Float64() * config.PlayfieldHeight
	case 2: // 下边
		return rand.Float64() * config.PlayfieldWidth, config.PlayfieldHeight
	default: // 左边
		return 0, rand.Float64() * config.PlayfieldHeight
	}
}
