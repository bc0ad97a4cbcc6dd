package entities

import (
	"fmt"
	"math"

	"github.com/macsampson/keys-to-hell-sub000/pkg/components"
	"github.com/macsampson/keys-to-hell-sub000/pkg/config"
	"github.com/macsampson/keys-to-hell-sub000/pkg/ecs"
	"github.com/macsampson/keys-to-hell-sub000/pkg/game"
	"github.com/macsampson/keys-to-hell-sub000/pkg/types"
)

// NewEnemyEntity 创建敌人实体并登记到注册表
//
// 属性由调用方从 BalanceProvider 解析好传入；
// 畸形坐标（NaN/Inf）钳制到原点，模拟不因畸形生成请求而停止
//
// 参数:
//   - em: 实体管理器
//   - registry: 实体注册表
//   - enemyType: 敌人类型（已解析的封闭枚举）
//   - stats: 已按等级折算的属性
//   - x, y: 生成位置（世界坐标）
//   - targetX, targetY: 追击目标位置（通常为玩家）
//
// 返回:
//   - ecs.EntityID: 创建的敌人实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewEnemyEntity(em *ecs.EntityManager, registry *game.EntityRegistry, enemyType types.EnemyType, stats game.ResolvedEnemyStats, x, y, targetX, targetY float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if registry == nil {
		return 0, fmt.Errorf("entity registry cannot be nil")
	}

	// 畸形输入回退为默认值
	if math.IsNaN(x) || math.IsInf(x, 0) {
		x = 0
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		y = 0
	}

	entityID := em.CreateEntity()

	// 添加位置组件（世界坐标）
	em.AddComponent(entityID, &components.PositionComponent{
		X: x,
		Y: y,
	})

	// 添加速度组件（移动系统每帧按模式重新赋值）
	em.AddComponent(entityID, &components.VelocityComponent{})

	// 添加生命值组件
	em.AddComponent(entityID, &components.HealthComponent{
		CurrentHealth: stats.Health,
		MaxHealth:     stats.Health,
	})

	// 添加碰撞组件
	em.AddComponent(entityID, &components.CollisionComponent{
		Width:  config.EnemyHitboxWidth,
		Height: config.EnemyHitboxHeight,
	})

	// 添加敌人组件（类型在此一次性定型，之后不再按字符串分发）
	em.AddComponent(entityID, &components.EnemyComponent{
		Type:            enemyType,
		Pattern:         stats.Pattern,
		Damage:          stats.Damage,
		ExperienceValue: stats.ExperienceValue,
		Speed:           stats.Speed,
		TargetX:         targetX,
		TargetY:         targetY,
	})

	registry.AddEnemy(entityID)

	return entityID, nil
}
