package game

import (
	"log"
	"math"

	"github.com/macsampson/keys-to-hell-sub000/pkg/components"
	"github.com/macsampson/keys-to-hell-sub000/pkg/config"
	"github.com/macsampson/keys-to-hell-sub000/pkg/ecs"
)

// ProjectilePool 固定容量的子弹池
//
// 实时射速下（攻击间隔 50-1000ms，单次最多9发）每发子弹都走堆分配
// 是可测量的开销，池在启动时一次性预构造全部槽位并循环复用。
//
// 槽位状态机: Free → Active（Acquire 发放）→ PendingReturn（碰撞或超时标记）
// → Free（Release 回收）
//
// 池耗尽不是致命错误：调用方会得到一个溢出分配的实体（无上限），
// 但溢出会计数并打日志，作为容量压力信号
type ProjectilePool struct {
	em       *ecs.EntityManager
	registry *EntityRegistry
	stats    *CombatStats

	slots    []ecs.EntityID // 预分配槽位的实体ID，启动后不变
	capacity int
}

// NewProjectilePool 创建子弹池并立即预构造全部槽位
//
// 参数:
//   - em: 实体管理器
//   - registry: 实体注册表（Acquire/Release 同步维护活跃子弹集合）
//   - stats: 战斗计数器（记录溢出压力信号），可为 nil
//   - capacity: 槽位数量；非正值时使用 config.ProjectilePoolCapacity
func NewProjectilePool(em *ecs.EntityManager, registry *EntityRegistry, stats *CombatStats, capacity int) *ProjectilePool {
	if capacity <= 0 {
		capacity = config.ProjectilePoolCapacity
	}

	pool := &ProjectilePool{
		em:       em,
		registry: registry,
		stats:    stats,
		slots:    make([]ecs.EntityID, 0, capacity),
		capacity: capacity,
	}

	// 启动时预构造所有槽位：空闲、不可见、停放在场景外
	for i := 0; i < capacity; i++ {
		pool.slots = append(pool.slots, pool.newSlotEntity(true))
	}

	return pool
}

// newSlotEntity 构造一个子弹实体（空闲状态）
func (p *ProjectilePool) newSlotEntity(fromPool bool) ecs.EntityID {
	id := p.em.CreateEntity()

	p.em.AddComponent(id, &components.PositionComponent{
		X: config.ProjectileParkX,
		Y: config.ProjectileParkY,
	})
	p.em.AddComponent(id, &components.VelocityComponent{})
	p.em.AddComponent(id, &components.CollisionComponent{
		Width:  config.ProjectileHitboxSize,
		Height: config.ProjectileHitboxSize,
	})

	proj := &components.ProjectileComponent{FromPool: fromPool}
	proj.ResetTransient()
	p.em.AddComponent(id, proj)

	return id
}

// Acquire 发放一个子弹槽位
//
// 返回第一个空闲（Active=false）的槽位，发放前重置全部瞬态状态，
// 保证上一次飞行的碰撞标记、穿透集合、存活时间不会泄漏到新目标上。
// 池耗尽时溢出分配一个新实体（显式允许，但计数并打日志）。
//
// 参数:
//   - x, y: 子弹起始位置（NaN 会被钳制到原点）
//   - damage: 命中伤害
//   - target: 目标敌人的弱引用句柄（0 表示无目标）
//   - piercing: 首个目标之外还可伤害的敌人数
//   - seeking: 是否追踪目标
//   - seekingStrength: 每帧航向插值系数，会被钳制到 [0,1]
//
// 返回:
//   - ecs.EntityID: 发放的子弹实体ID
func (p *ProjectilePool) Acquire(x, y float64, damage int, target ecs.EntityID, piercing int, seeking bool, seekingStrength float64) ecs.EntityID {
	// 畸形输入回退为默认值，绝不拒绝请求
	if math.IsNaN(x) || math.IsInf(x, 0) {
		x = 0
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		y = 0
	}
	if seekingStrength < 0 {
		seekingStrength = 0
	}
	if seekingStrength > 1 {
		seekingStrength = 1
	}
	if piercing < 0 {
		piercing = 0
	}

	id := p.findFreeSlot()
	if id == 0 {
		// 资源耗尽：溢出分配，计数作为压力信号
		id = p.newSlotEntity(false)
		p.slots = append(p.slots, id)
		if p.stats != nil {
			p.stats.PoolOverflows++
		}
		log.Printf("[ProjectilePool] 池已耗尽，溢出分配实体 %d（容量 %d，累计溢出 %d 次）",
			id, p.capacity, p.overflowCount())
	}

	proj, ok := ecs.GetComponent[*components.ProjectileComponent](p.em, id)
	if !ok {
		return 0
	}

	// 发放前重置：槽位不携带任何上一次使用的瞬态状态
	proj.ResetTransient()
	proj.Active = true
	proj.Visible = true
	proj.Damage = damage
	proj.Speed = config.ProjectileDefaultSpeed
	proj.MaxLifetime = config.ProjectileDefaultLifetime
	proj.Seeking = seeking
	proj.SeekingStrength = seekingStrength
	proj.PiercingCount = piercing
	if target != 0 && p.em.IsAlive(target) {
		proj.TargetID = target
		proj.HasTarget = true
	}

	if pos, ok := ecs.GetComponent[*components.PositionComponent](p.em, id); ok {
		pos.X = x
		pos.Y = y
	}
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](p.em, id); ok {
		vel.VX = 0
		vel.VY = 0
	}

	p.registry.AddProjectile(id)
	if p.stats != nil {
		p.stats.ProjectilesFired++
	}

	return id
}

// Release 回收一个子弹槽位
//
// 重置全部瞬态字段：位置停放到场景外、速度清零、Active/Visible 同步清除、
// 碰撞标记与穿透集合清空、存活时间归零，并从注册表的活跃子弹集合注销。
//
// 对同一槽位重复调用是安全的（幂等）：第二次调用时槽位已是空闲状态，
// 所有重置操作都是无害的重复赋值。
//
// Visible 与 Active 同步清除是碰撞正确性的关键：回收中的槽位仍可能
// 留在粗筛结构里，预筛靠这两个标志拒绝它
func (p *ProjectilePool) Release(id ecs.EntityID) {
	proj, ok := ecs.GetComponent[*components.ProjectileComponent](p.em, id)
	if !ok {
		return
	}

	proj.Active = false
	proj.Visible = false
	proj.ResetTransient()

	if pos, ok := ecs.GetComponent[*components.PositionComponent](p.em, id); ok {
		pos.X = config.ProjectileParkX
		pos.Y = config.ProjectileParkY
	}
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](p.em, id); ok {
		vel.VX = 0
		vel.VY = 0
	}

	p.registry.RemoveProjectile(id)
}

// ReleaseAll 回收全部已发放的槽位（ClearAll 使用）
func (p *ProjectilePool) ReleaseAll() {
	for _, id := range p.slots {
		p.Release(id)
	}
}

// Capacity 返回池的预分配容量（不含溢出槽位）
func (p *ProjectilePool) Capacity() int {
	return p.capacity
}

// FreeCount 返回当前空闲槽位数量
func (p *ProjectilePool) FreeCount() int {
	free := 0
	for _, id := range p.slots {
		if proj, ok := ecs.GetComponent[*components.ProjectileComponent](p.em, id); ok && !proj.Active {
			free++
		}
	}
	return free
}

// findFreeSlot 线性扫描第一个空闲槽位；无空闲时返回 0
func (p *ProjectilePool) findFreeSlot() ecs.EntityID {
	for _, id := range p.slots {
		proj, ok := ecs.GetComponent[*components.ProjectileComponent](p.em, id)
		if ok && !proj.Active {
			return id
		}
	}
	return 0
}

func (p *ProjectilePool) overflowCount() int {
	if p.stats == nil {
		return 0
	}
	return p.stats.PoolOverflows
}
