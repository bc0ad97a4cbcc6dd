package systems

import (
	"math"

	"github.com/macsampson/keys-to-hell-sub000/pkg/components"
	"github.com/macsampson/keys-to-hell-sub000/pkg/config"
	"github.com/macsampson/keys-to-hell-sub000/pkg/ecs"
	"github.com/macsampson/keys-to-hell-sub000/pkg/game"
)

// ProjectileSystem 子弹飞行系统
//
// 职责：
//   - 追踪：把当前航向按 SeekingStrength 向目标航向线性插值
//     （逐帧修正，不瞬间转向），速度大小保持不变
//   - 弱引用恢复：目标中途消失时清除句柄，沿最后航向直飞
//   - 生命周期：超时或越界的子弹标记 PendingReturn，由回收阶段归还池；
//     检查只做标记，从不抛错
type ProjectileSystem struct {
	entityManager *ecs.EntityManager
	registry      *game.EntityRegistry
	pool          *game.ProjectilePool
	stats         *game.CombatStats
}

// NewProjectileSystem 创建子弹飞行系统
func NewProjectileSystem(em *ecs.EntityManager, registry *game.EntityRegistry, pool *game.ProjectilePool, stats *game.CombatStats) *ProjectileSystem {
	return &ProjectileSystem{
		entityManager: em,
		registry:      registry,
		pool:          pool,
		stats:         stats,
	}
}

// Update 更新所有活跃子弹
//
// 参数:
//   - deltaMs: 自上一帧以来经过的时间（毫秒）
func (s *ProjectileSystem) Update(deltaMs float64) {
	dt := deltaMs / 1000.0

	for _, entityID := range s.registry.ActiveProjectiles() {
		proj, ok := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, entityID)
		if !ok || !proj.Active {
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

		proj.TimeAlive += deltaMs

		// 弱引用解析：目标已销毁时清除句柄，继续沿最后航向飞行
		// 瞬态不一致，就地恢复，绝不传播
		if proj.HasTarget && !s.entityManager.IsAlive(proj.TargetID) {
			proj.TargetID = 0
			proj.HasTarget = false
		}

		s.steer(proj, position, velocity)

		// 积分位置
		position.X += velocity.VX * dt
		position.Y += velocity.VY * dt

		// 超时或越界：标记回收，不抛错
		expired := proj.TimeAlive >= proj.MaxLifetime ||
			outOfPlayfield(position, config.ProjectileBoundsMargin)
		if expired && !proj.PendingReturn {
			proj.PendingReturn = true
			if s.stats != nil {
				s.stats.ProjectilesExpired++
			}
		}
	}
}

// steer 计算子弹本帧的速度向量
//
// 追踪子弹：当前航向向目标航向按 SeekingStrength 插值，速度大小不变；
// 非追踪或失去目标：保持航向，只保证速度大小正确
func (s *ProjectileSystem) steer(proj *components.ProjectileComponent, position *components.PositionComponent, velocity *components.VelocityComponent) {
	// 当前航向；刚发放的槽位速度为零，此时直接取目标方向
	curAngle := math.Atan2(velocity.VY, velocity.VX)
	hasHeading := velocity.VX != 0 || velocity.VY != 0

	if proj.Seeking && proj.HasTarget {
		if targetPos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, proj.TargetID); ok {
			dx := targetPos.X - position.X
			dy := targetPos.Y - position.Y
			if dx != 0 || dy != 0 {
				targetAngle := math.Atan2(dy, dx)
				if !hasHeading {
					curAngle = targetAngle
				} else {
					// 航向线性插值；角差折算到 (-π, π] 避免绕远路
					diff := normalizeAngle(targetAngle - curAngle)
					curAngle += diff * proj.SeekingStrength
				}
				velocity.VX = math.Cos(curAngle) * proj.Speed
				velocity.VY = math.Sin(curAngle) * proj.Speed
				return
			}
		}
	}

	// 直飞：保持航向，速度大小为 Speed
	if hasHeading {
		velocity.VX = math.Cos(curAngle) * proj.Speed
		velocity.VY = math.Sin(curAngle) * proj.Speed
	} else if proj.HasTarget {
		// 非追踪但有目标：发射瞬间取一次目标方向，之后不再修正
		if targetPos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, proj.TargetID); ok {
			dx := targetPos.X - position.X
			dy := targetPos.Y - position.Y
			if dx != 0 || dy != 0 {
				angle := math.Atan2(dy, dx)
				velocity.VX = math.Cos(angle) * proj.Speed
				velocity.VY = math.Sin(angle) * proj.Speed
			}
		}
	}
}

// ReclaimPending 把所有标记 PendingReturn 的子弹归还池
// 模拟帧的回收阶段调用
func (s *ProjectileSystem) ReclaimPending() {
	for _, entityID := range s.registry.ActiveProjectiles() {
		proj, ok := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, entityID)
		if !ok {
			continue
		}
		if proj.PendingReturn {
			s.pool.Release(entityID)
		}
	}
}

// normalizeAngle 把角度折算到 (-π, π]
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
