package systems

import (
	"github.com/macsampson/keys-to-hell-sub000/pkg/components"
	"github.com/macsampson/keys-to-hell-sub000/pkg/ecs"
	"github.com/macsampson/keys-to-hell-sub000/pkg/game"
)

// CollisionPair 粗筛阶段报告的一对候选重叠实体
type CollisionPair struct {
	Projectile ecs.EntityID
	Enemy      ecs.EntityID
}

// BroadPhase 碰撞粗筛协作方
// 只负责提出候选配对，正确性由 CollisionSystem 的预筛和解析保证；
// 测试可注入固定配对列表
type BroadPhase interface {
	// Candidates 返回本帧的候选 (子弹, 敌人) 配对
	Candidates() []CollisionPair
}

// AABBBroadPhase 基于轴对齐边界框的粗筛实现
//
// 按组件组合扫描全部实体（包括池里未发放的子弹槽位——它们停放在
// 场景外不会真正重叠，但即便被报告，预筛也会拒绝），
// 嵌套遍历检测AABB重叠
type AABBBroadPhase struct {
	em *ecs.EntityManager
}

// NewAABBBroadPhase 创建AABB粗筛
func NewAABBBroadPhase(em *ecs.EntityManager) *AABBBroadPhase {
	return &AABBBroadPhase{em: em}
}

// Candidates 扫描并返回所有AABB重叠的 (子弹, 敌人) 配对
func (b *AABBBroadPhase) Candidates() []CollisionPair {
	projectiles := ecs.GetEntitiesWith3[
		*components.ProjectileComponent,
		*components.PositionComponent,
		*components.CollisionComponent,
	](b.em)
	enemies := ecs.GetEntitiesWith3[
		*components.EnemyComponent,
		*components.PositionComponent,
		*components.CollisionComponent,
	](b.em)

	pairs := make([]CollisionPair, 0)

	for _, projID := range projectiles {
		projPos, ok := ecs.GetComponent[*components.PositionComponent](b.em, projID)
		if !ok {
			continue
		}
		projCol, ok := ecs.GetComponent[*components.CollisionComponent](b.em, projID)
		if !ok {
			continue
		}

		for _, enemyID := range enemies {
			enemyPos, ok := ecs.GetComponent[*components.PositionComponent](b.em, enemyID)
			if !ok {
				continue
			}
			enemyCol, ok := ecs.GetComponent[*components.CollisionComponent](b.em, enemyID)
			if !ok {
				continue
			}

			if checkAABBCollision(projPos, projCol, enemyPos, enemyCol) {
				pairs = append(pairs, CollisionPair{Projectile: projID, Enemy: enemyID})
			}
		}
	}

	return pairs
}

// checkAABBCollision 检查两个实体的AABB（轴对齐边界框）是否发生碰撞
// 碰撞盒中心对齐实体位置
func checkAABBCollision(
	pos1 *components.PositionComponent, col1 *components.CollisionComponent,
	pos2 *components.PositionComponent, col2 *components.CollisionComponent) bool {

	left1 := pos1.X - col1.Width/2
	right1 := pos1.X + col1.Width/2
	top1 := pos1.Y - col1.Height/2
	bottom1 := pos1.Y + col1.Height/2

	left2 := pos2.X - col2.Width/2
	right2 := pos2.X + col2.Width/2
	top2 := pos2.Y - col2.Height/2
	bottom2 := pos2.Y + col2.Height/2

	// 任一轴上没有重叠则没有碰撞
	return right1 >= left2 &&
		left1 <= right2 &&
		bottom1 >= top2 &&
		top1 <= bottom2
}

// CollisionSystem 碰撞解析系统
//
// 对粗筛报告的每个 (子弹, 敌人) 配对执行两段式闸门：
//
//  1. 预筛（廉价，不产生任何副作用）：拒绝缺组件、未发放（!Active）、
//     不可见（!Visible，回收中的槽位）、已注销的敌人，
//     以及违反穿透记账的重复命中
//  2. 解析（通过后）：记录命中身份 → 扣血（钳制到0）→ 死亡处理
//     （注销、击杀事件、死亡特效事件）→ 子弹去向判定
//     （穿透额度用尽则标记回收，否则继续飞行）
//
// 同一帧内多个敌人与同一子弹重叠时，解析顺序不作保证；
// 每个配对的"至多一次"约束只依赖预筛的记账，与顺序无关
type CollisionSystem struct {
	entityManager *ecs.EntityManager
	registry      *game.EntityRegistry
	broadPhase    BroadPhase
	listeners     *game.ListenerHub
	stats         *game.CombatStats
}

// NewCollisionSystem 创建碰撞解析系统
//
// 参数:
//   - em: 实体管理器
//   - registry: 实体注册表
//   - broadPhase: 粗筛协作方（nil 时使用内置AABB粗筛）
//   - listeners: 事件监听器集合，可为 nil
//   - stats: 战斗计数器，可为 nil
func NewCollisionSystem(em *ecs.EntityManager, registry *game.EntityRegistry, broadPhase BroadPhase, listeners *game.ListenerHub, stats *game.CombatStats) *CollisionSystem {
	if broadPhase == nil {
		broadPhase = NewAABBBroadPhase(em)
	}
	if listeners == nil {
		listeners = game.NewListenerHub()
	}
	return &CollisionSystem{
		entityManager: em,
		registry:      registry,
		broadPhase:    broadPhase,
		listeners:     listeners,
		stats:         stats,
	}
}

// Update 运行一轮碰撞检测与解析
func (s *CollisionSystem) Update(deltaMs float64) {
	for _, pair := range s.broadPhase.Candidates() {
		s.ResolvePair(pair.Projectile, pair.Enemy)
	}
}

// ResolvePair 解析单个候选配对
//
// 返回:
//   - bool: 本次命中是否被接受（预筛拒绝时返回 false）
func (s *CollisionSystem) ResolvePair(projID, enemyID ecs.EntityID) bool {
	// ---- 预筛：任何副作用之前 ----

	if projID == 0 || enemyID == 0 {
		return false
	}

	proj, ok := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, projID)
	if !ok {
		return false
	}

	// 未发放或回收中的槽位可能仍留在粗筛结构里，在此拒绝
	if !proj.Active || !proj.Visible {
		return false
	}

	// 已标记回收的子弹在本帧剩余的配对中不再命中：
	// 穿透额度用尽或超时标记发生在回收阶段之前，标记即退役
	if proj.PendingReturn {
		return false
	}

	enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, enemyID)
	if !ok {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, enemyID)
	if !ok {
		return false
	}

	// 敌人已在本帧被其他子弹击杀并注销：过期配对，拒绝
	if !s.registry.ContainsEnemy(enemyID) {
		return false
	}

	if proj.PiercingCount > 0 {
		// 穿透语义：同一敌人至多命中一次
		if _, hit := proj.PiercedEnemies[enemyID]; hit {
			return false
		}
	} else {
		// 非穿透语义：整个生命周期至多命中一次
		if proj.HasCollided {
			return false
		}
	}

	// ---- 解析：命中成立 ----

	// 先记账再施加效果，保证同帧内的后续配对立即被预筛拒绝
	proj.PiercedEnemies[enemyID] = struct{}{}
	proj.HasCollided = true

	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, projID); ok {
		s.listeners.ProjectileHit(pos.X, pos.Y)
	}

	if dead := health.ApplyDamage(proj.Damage); dead {
		s.killEnemy(enemyID, enemy)
	}

	// 子弹去向：穿透额度用尽则标记回收，否则继续飞行等待后续敌人
	if len(proj.PiercedEnemies) > proj.PiercingCount {
		proj.PendingReturn = true
	}

	return true
}

// killEnemy 敌人死亡处理：注销、标记删除、发布事件
func (s *CollisionSystem) killEnemy(enemyID ecs.EntityID, enemy *components.EnemyComponent) {
	var x, y float64
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, enemyID); ok {
		x, y = pos.X, pos.Y
	}

	s.registry.RemoveEnemy(enemyID)
	s.entityManager.DestroyEntity(enemyID)

	if s.stats != nil {
		s.stats.EnemiesKilled++
		s.stats.ExperienceCollected += enemy.ExperienceValue
	}

	// 即发即弃：监听方不允许阻塞模拟帧
	s.listeners.EnemyKilled(enemy.ExperienceValue, x, y)
	s.listeners.EnemyDeathEffect(x, y)
}
