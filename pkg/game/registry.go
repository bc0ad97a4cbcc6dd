package game

import (
	"github.com/macsampson/keys-to-hell-sub000/pkg/ecs"
)

// EntityRegistry 维护活跃敌人和活跃子弹的规范集合
//
// 职责：
//   - 登记/注销活跃实体；注销不存在的实体是空操作而非错误
//     （双重清理竞争时两条路径都可以安全调用）
//   - 提供点时快照：ActiveEnemies / ActiveProjectiles 返回底层列表的副本，
//     调用方遍历快照期间创建或销毁实体不会破坏遍历
//   - 注册表的大小是人口上限唯一的事实来源
//
// 架构说明：按模拟实例显式构造并传引用给各系统，不使用进程级全局状态
type EntityRegistry struct {
	enemies     []ecs.EntityID
	projectiles []ecs.EntityID
}

// NewEntityRegistry 创建空的实体注册表
func NewEntityRegistry() *EntityRegistry {
	return &EntityRegistry{
		enemies:     make([]ecs.EntityID, 0, 64),
		projectiles: make([]ecs.EntityID, 0, 128),
	}
}

// AddEnemy 登记一个活跃敌人
// 重复登记同一实体是空操作
func (r *EntityRegistry) AddEnemy(id ecs.EntityID) {
	if id == 0 || containsID(r.enemies, id) {
		return
	}
	r.enemies = append(r.enemies, id)
}

// RemoveEnemy 注销一个敌人；实体不在注册表中时为空操作
func (r *EntityRegistry) RemoveEnemy(id ecs.EntityID) {
	r.enemies = removeID(r.enemies, id)
}

// AddProjectile 登记一个活跃子弹
func (r *EntityRegistry) AddProjectile(id ecs.EntityID) {
	if id == 0 || containsID(r.projectiles, id) {
		return
	}
	r.projectiles = append(r.projectiles, id)
}

// RemoveProjectile 注销一个子弹；实体不在注册表中时为空操作
// Release 和生命周期过期可能先后对同一子弹调用，幂等性在此兜底
func (r *EntityRegistry) RemoveProjectile(id ecs.EntityID) {
	r.projectiles = removeID(r.projectiles, id)
}

// ActiveEnemies 返回活跃敌人列表的点时快照
func (r *EntityRegistry) ActiveEnemies() []ecs.EntityID {
	snapshot := make([]ecs.EntityID, len(r.enemies))
	copy(snapshot, r.enemies)
	return snapshot
}

// ActiveProjectiles 返回活跃子弹列表的点时快照
func (r *EntityRegistry) ActiveProjectiles() []ecs.EntityID {
	snapshot := make([]ecs.EntityID, len(r.projectiles))
	copy(snapshot, r.projectiles)
	return snapshot
}

// EnemyCount 返回当前活跃敌人数量（生成系统的人口上限依据）
func (r *EntityRegistry) EnemyCount() int {
	return len(r.enemies)
}

// ProjectileCount 返回当前活跃子弹数量
func (r *EntityRegistry) ProjectileCount() int {
	return len(r.projectiles)
}

// ContainsEnemy 检查敌人是否仍在注册表中
// 碰撞预筛用它拒绝"已被移除但同帧内仍被粗筛报告"的过期配对
func (r *EntityRegistry) ContainsEnemy(id ecs.EntityID) bool {
	return containsID(r.enemies, id)
}

// Clear 清空注册表（不销毁实体本身）
func (r *EntityRegistry) Clear() {
	r.enemies = r.enemies[:0]
	r.projectiles = r.projectiles[:0]
}

func containsID(list []ecs.EntityID, id ecs.EntityID) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(list []ecs.EntityID, id ecs.EntityID) []ecs.EntityID {
	for i, v := range list {
		if v == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
