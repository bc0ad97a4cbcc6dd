package systems

import (
	"math"
	"sort"

	"github.com/macsampson/keys-to-hell-sub000/pkg/components"
	"github.com/macsampson/keys-to-hell-sub000/pkg/ecs"
)

// 目标选择：对活跃敌人快照的纯查询，不做任何修改
//
// 所有函数在没有敌人时返回 (0, false) 或空切片，
// 调用方把它当作"没有有效目标"，而不是错误

// EnemyInRange 带距离的查询结果
type EnemyInRange struct {
	ID       ecs.EntityID
	Distance float64
}

// NearestEnemy 返回距离 origin 最近的敌人
// 距离相同取先遍历到的（快照顺序即注册顺序）
//
// 返回:
//   - ecs.EntityID: 最近敌人的实体ID
//   - bool: 是否存在有效目标
func NearestEnemy(em *ecs.EntityManager, snapshot []ecs.EntityID, originX, originY float64) (ecs.EntityID, bool) {
	var best ecs.EntityID
	bestDist := math.Inf(1)

	for _, id := range snapshot {
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if !ok {
			continue
		}
		d := math.Hypot(pos.X-originX, pos.Y-originY)
		if d < bestDist {
			bestDist = d
			best = id
		}
	}

	return best, best != 0
}

// WeakestEnemy 返回当前生命值最低的敌人；并列取先遍历到的
func WeakestEnemy(em *ecs.EntityManager, snapshot []ecs.EntityID) (ecs.EntityID, bool) {
	var best ecs.EntityID
	bestHealth := math.MaxInt

	for _, id := range snapshot {
		health, ok := ecs.GetComponent[*components.HealthComponent](em, id)
		if !ok {
			continue
		}
		if health.CurrentHealth < bestHealth {
			bestHealth = health.CurrentHealth
			best = id
		}
	}

	return best, best != 0
}

// StrongestEnemy 返回当前生命值最高的敌人；并列取先遍历到的
func StrongestEnemy(em *ecs.EntityManager, snapshot []ecs.EntityID) (ecs.EntityID, bool) {
	var best ecs.EntityID
	bestHealth := -1

	for _, id := range snapshot {
		health, ok := ecs.GetComponent[*components.HealthComponent](em, id)
		if !ok {
			continue
		}
		if health.CurrentHealth > bestHealth {
			bestHealth = health.CurrentHealth
			best = id
		}
	}

	return best, best != 0
}

// EnemiesInRange 返回距离 origin 不超过 radius 的全部敌人，按距离升序
func EnemiesInRange(em *ecs.EntityManager, snapshot []ecs.EntityID, originX, originY, radius float64) []EnemyInRange {
	result := make([]EnemyInRange, 0)

	for _, id := range snapshot {
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if !ok {
			continue
		}
		d := math.Hypot(pos.X-originX, pos.Y-originY)
		if d <= radius {
			result = append(result, EnemyInRange{ID: id, Distance: d})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Distance < result[j].Distance
	})

	return result
}

// CombatPriorityTarget 自动攻击的目标选择
// 取最近的敌人；距离精确相等时优先生命值更低的
func CombatPriorityTarget(em *ecs.EntityManager, snapshot []ecs.EntityID, originX, originY float64) (ecs.EntityID, bool) {
	var best ecs.EntityID
	bestDist := math.Inf(1)
	bestHealth := math.MaxInt

	for _, id := range snapshot {
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if !ok {
			continue
		}
		health, ok := ecs.GetComponent[*components.HealthComponent](em, id)
		if !ok {
			continue
		}

		d := math.Hypot(pos.X-originX, pos.Y-originY)
		switch {
		case d < bestDist:
			bestDist = d
			bestHealth = health.CurrentHealth
			best = id
		case d == bestDist && health.CurrentHealth < bestHealth:
			bestHealth = health.CurrentHealth
			best = id
		}
	}

	return best, best != 0
}
