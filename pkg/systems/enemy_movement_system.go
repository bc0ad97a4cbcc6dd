package systems

import (
	"math"

	"github.com/macsampson/keys-to-hell-sub000/pkg/components"
	"github.com/macsampson/keys-to-hell-sub000/pkg/config"
	"github.com/macsampson/keys-to-hell-sub000/pkg/ecs"
	"github.com/macsampson/keys-to-hell-sub000/pkg/game"
	"github.com/macsampson/keys-to-hell-sub000/pkg/types"
)

// EnemyMovementSystem 敌人移动系统
//
// 每帧根据移动模式为敌人重新赋值速度并积分位置。
// 所有模式都是 (位置, 目标, 存活时间, 速度) 的确定性函数，
// 模式自身不持久化任何速度状态。
//
// 同时负责越界销毁：敌人离开场地超过 EnemyDespawnMargin 后
// 从注册表注销并标记删除（不触发死亡事件）
type EnemyMovementSystem struct {
	entityManager *ecs.EntityManager
	registry      *game.EntityRegistry
	stats         *game.CombatStats
}

// NewEnemyMovementSystem 创建敌人移动系统
func NewEnemyMovementSystem(em *ecs.EntityManager, registry *game.EntityRegistry, stats *game.CombatStats) *EnemyMovementSystem {
	return &EnemyMovementSystem{
		entityManager: em,
		registry:      registry,
		stats:         stats,
	}
}

// Update 更新所有活跃敌人
//
// 参数:
//   - deltaMs: 自上一帧以来经过的时间（毫秒）
func (s *EnemyMovementSystem) Update(deltaMs float64) {
	dt := deltaMs / 1000.0

	// 遍历注册表快照；过程中注销敌人不会破坏遍历
	for _, entityID := range s.registry.ActiveEnemies() {
		enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, entityID)
		if !ok {
			continue
		}
		position, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
		if !ok {
			continue
		}
		velocity, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, entityID)
		if !ok {
			continue
		}

		enemy.TimeAlive += deltaMs

		// 按模式重新计算本帧速度
		vx, vy := patternVelocity(enemy, position)
		velocity.VX = vx
		velocity.VY = vy

		// 积分位置
		position.X += velocity.VX * dt
		position.Y += velocity.VY * dt

		// 越界销毁：离开场地足够远才过期，不在可见边缘就地消失
		if outOfPlayfield(position, config.EnemyDespawnMargin) {
			s.registry.RemoveEnemy(entityID)
			s.entityManager.DestroyEntity(entityID)
			if s.stats != nil {
				s.stats.EnemiesDespawned++
			}
		}
	}
}

// patternVelocity 根据移动模式计算本帧速度向量
//
// 所有公式只依赖 (position, target, TimeAlive, Speed)，
// 同样的输入总是得到同样的速度
func patternVelocity(enemy *components.EnemyComponent, position *components.PositionComponent) (float64, float64) {
	dx := enemy.TargetX - position.X
	dy := enemy.TargetY - position.Y
	dist := math.Hypot(dx, dy)

	// 已在目标点上：没有明确方向，静止等待下一帧
	if dist == 0 {
		return 0, 0
	}

	// 朝目标的单位向量
	ux := dx / dist
	uy := dy / dist

	t := enemy.TimeAlive / 1000.0

	switch enemy.Pattern {
	case types.MoveSineWave:
		// 朝目标移动，叠加垂直方向的正弦振荡
		// 垂直单位向量取 (-uy, ux)
		osc := math.Sin(t*config.SineWaveFrequency) * config.SineWaveAmplitude
		vx := (ux + -uy*osc) * enemy.Speed
		vy := (uy + ux*osc) * enemy.Speed
		return vx, vy

	case types.MoveSpiral:
		// 切向绕行 + 径向逼近
		angle := t * config.SpiralAngularSpeed
		tangentX := -uy*math.Cos(angle) - ux*math.Sin(angle)
		tangentY := ux*math.Cos(angle) - uy*math.Sin(angle)
		vx := (ux*config.SpiralApproachRatio + tangentX) * enemy.Speed
		vy := (uy*config.SpiralApproachRatio + tangentY) * enemy.Speed
		return vx, vy

	case types.MoveHoming:
		// 激进追踪：直扑目标，速度倍率加成
		speed := enemy.Speed * config.HomingSpeedMultiplier
		return ux * speed, uy * speed

	default: // types.MoveStraight
		return ux * enemy.Speed, uy * enemy.Speed
	}
}

// outOfPlayfield 检查位置是否超出场地边界 margin 以上
func outOfPlayfield(position *components.PositionComponent, margin float64) bool {
	return position.X < -margin ||
		position.X > config.PlayfieldWidth+margin ||
		position.Y < -margin ||
		position.Y > config.PlayfieldHeight+margin
}
