// Package simulation 是战斗模拟核心的顶层入口
//
// 单线程、固定步长：每个渲染帧对应一次 Tick，内部没有任何并行。
// 帧内阶段顺序固定：敌人更新 → 子弹更新 → 生成判定 → 碰撞解析 →
// 销毁对象回收。该顺序是正确性的一部分（碰撞必须基于移动后的
// 一致快照解析），不是实现上的便利
package simulation

import (
	"math"

	"github.com/macsampson/keys-to-hell-sub000/pkg/components"
	"github.com/macsampson/keys-to-hell-sub000/pkg/ecs"
	"github.com/macsampson/keys-to-hell-sub000/pkg/entities"
	"github.com/macsampson/keys-to-hell-sub000/pkg/game"
	"github.com/macsampson/keys-to-hell-sub000/pkg/systems"
	"github.com/macsampson/keys-to-hell-sub000/pkg/types"
)

// Simulation 一局战斗模拟实例
//
// 注册表和子弹池是仅有的共享可变状态，全部修改都发生在模拟线程上；
// 按实例显式构造，组件间传引用，没有进程级全局状态
type Simulation struct {
	entityManager *ecs.EntityManager
	registry      *game.EntityRegistry
	pool          *game.ProjectilePool
	listeners     *game.ListenerHub
	balance       game.BalanceProvider
	stats         *game.CombatStats

	enemyMovement *systems.EnemyMovementSystem
	projectiles   *systems.ProjectileSystem
	spawner       *systems.SpawnSystem
	collisions    *systems.CollisionSystem

	nowMs float64 // 最近一次 Tick 的模拟时刻
}

// New 构造一局模拟
//
// 参数:
//   - balance: 数值平衡协作方；nil 时使用内置配置表默认实现
func New(balance game.BalanceProvider) *Simulation {
	if balance == nil {
		balance = game.NewConfigBalanceProvider(nil, nil)
	}

	em := ecs.NewEntityManager()
	registry := game.NewEntityRegistry()
	stats := &game.CombatStats{}
	listeners := game.NewListenerHub()
	pool := game.NewProjectilePool(em, registry, stats, 0)

	s := &Simulation{
		entityManager: em,
		registry:      registry,
		pool:          pool,
		listeners:     listeners,
		balance:       balance,
		stats:         stats,
	}

	s.enemyMovement = systems.NewEnemyMovementSystem(em, registry, stats)
	s.projectiles = systems.NewProjectileSystem(em, registry, pool, stats)
	s.spawner = systems.NewSpawnSystem(em, registry, balance, stats)
	s.collisions = systems.NewCollisionSystem(em, registry, nil, listeners, stats)

	return s
}

// Tick 推进一个模拟帧
//
// 参数:
//   - nowMs: 当前模拟时刻（毫秒）
//   - deltaMs: 自上一帧以来经过的时间（毫秒）
func (s *Simulation) Tick(nowMs, deltaMs float64) {
	if math.IsNaN(nowMs) || math.IsNaN(deltaMs) || deltaMs < 0 {
		return
	}
	s.nowMs = nowMs

	s.enemyMovement.Update(deltaMs) // 1. 敌人移动（按模式重算速度并积分）
	s.projectiles.Update(deltaMs)   // 2. 子弹飞行（追踪修正、生命周期标记）
	s.spawner.Update(nowMs)         // 3. 生成判定（间隔与人口上限）
	s.collisions.Update(deltaMs)    // 4. 碰撞解析（基于移动后的一致状态）

	// 5. 回收阶段：归还标记回收的子弹槽位，删除标记销毁的实体
	s.projectiles.ReclaimPending()
	s.entityManager.RemoveMarkedEntities()
}

// SpawnEnemy 在指定位置直接生成一个敌人（绕过生成计时器）
//
// 未知类型字符串回退为 basic，NaN 坐标钳制到原点；
// 畸形请求降级处理，绝不使模拟停止
//
// 返回:
//   - ecs.EntityID: 生成的敌人实体ID，失败返回 0
//   - error: 创建失败时的错误信息
func (s *Simulation) SpawnEnemy(x, y float64, enemyType string) (ecs.EntityID, error) {
	et := types.EnemyTypeFromString(enemyType)
	stats := s.balance.GetEnemyStats(s.spawner.PlayerLevel(), et)
	targetX, targetY := s.spawner.Target()

	id, err := entities.NewEnemyEntity(s.entityManager, s.registry, et, stats, x, y, targetX, targetY)
	if err == nil && s.stats != nil {
		s.stats.EnemiesSpawned++
	}
	return id, err
}

// CreateProjectile 发射一枚子弹（从池中发放槽位）
//
// 参数:
//   - x, y: 起始位置
//   - damage: 命中伤害
//   - target: 目标敌人的弱引用句柄（0 表示无目标）
//   - piercing: 首个目标之外还可伤害的敌人数
//   - seeking: 是否追踪
//   - seekingStrength: 每帧航向插值系数（0-1）
//
// 返回:
//   - ecs.EntityID: 子弹实体ID
func (s *Simulation) CreateProjectile(x, y float64, damage int, target ecs.EntityID, piercing int, seeking bool, seekingStrength float64) ecs.EntityID {
	return s.pool.Acquire(x, y, damage, target, piercing, seeking, seekingStrength)
}

// ClearAll 清空全部战斗实体：销毁所有敌人，归还所有子弹槽位
// 计数器和生成计时器保持不动
func (s *Simulation) ClearAll() {
	for _, id := range s.registry.ActiveEnemies() {
		s.registry.RemoveEnemy(id)
		s.entityManager.DestroyEntity(id)
	}
	s.pool.ReleaseAll()
	s.entityManager.RemoveMarkedEntities()
}

// SetSpawnRate 设置敌人生成间隔（毫秒），下一帧生效
func (s *Simulation) SetSpawnRate(ms float64) {
	s.spawner.SetSpawnInterval(ms)
}

// SetMaxEnemies 设置场上敌人数量上限，下一帧生效
func (s *Simulation) SetMaxEnemies(n int) {
	s.spawner.SetMaxEnemies(n)
}

// SetPlayerLevel 通知玩家等级变化，生成参数下一帧重新绑定
func (s *Simulation) SetPlayerLevel(level int) {
	s.spawner.SetPlayerLevel(level)
}

// SetPlayerPosition 更新玩家位置（敌人的追击目标）
func (s *Simulation) SetPlayerPosition(x, y float64) {
	s.spawner.SetTarget(x, y)
	// 已生成敌人的目标同步更新
	for _, id := range s.registry.ActiveEnemies() {
		if enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id); ok {
			enemy.TargetX = x
			enemy.TargetY = y
		}
	}
}

// AddListener 注册战斗事件监听器
func (s *Simulation) AddListener(l game.CombatListener) {
	s.listeners.Add(l)
}

// NearestEnemy 查询距离指定点最近的敌人
func (s *Simulation) NearestEnemy(x, y float64) (ecs.EntityID, bool) {
	return systems.NearestEnemy(s.entityManager, s.registry.ActiveEnemies(), x, y)
}

// CombatPriorityTarget 自动攻击目标：最近优先，距离相等取生命值更低者
func (s *Simulation) CombatPriorityTarget(x, y float64) (ecs.EntityID, bool) {
	return systems.CombatPriorityTarget(s.entityManager, s.registry.ActiveEnemies(), x, y)
}

// EnemiesInRange 查询指定半径内的敌人，按距离升序
func (s *Simulation) EnemiesInRange(x, y, radius float64) []systems.EnemyInRange {
	return systems.EnemiesInRange(s.entityManager, s.registry.ActiveEnemies(), x, y, radius)
}

// EntityManager 返回实体管理器（测试和上层渲染使用）
func (s *Simulation) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Registry 返回实体注册表
func (s *Simulation) Registry() *game.EntityRegistry {
	return s.registry
}

// Pool 返回子弹池
func (s *Simulation) Pool() *game.ProjectilePool {
	return s.pool
}

// Stats 返回运行计数器
func (s *Simulation) Stats() *game.CombatStats {
	return s.stats
}

// Now 返回最近一次 Tick 的模拟时刻（毫秒）
func (s *Simulation) Now() float64 {
	return s.nowMs
}
