package components

import "github.com/macsampson/keys-to-hell-sub000/pkg/ecs"

// ProjectileComponent 存储子弹的战斗属性和池槽位状态
//
// 池槽位状态机: Free(Active=false) → Active → PendingReturn → Free
// 不变式: Active=false 必然伴随 Visible=false 且位置停放在场景外；
// 碰撞预筛同时检查 Active 和 Visible，保证回收中的槽位绝不会命中
type ProjectileComponent struct {
	Active  bool // 槽位是否已发放（false 表示空闲，可被 Acquire 复用）
	Visible bool // 是否参与渲染和碰撞（与 Active 同步清除）

	Damage int // 命中伤害

	// TargetID 是指向目标敌人的弱引用句柄
	// 不拥有敌人：目标中途消失时清除 HasTarget，子弹沿最后航向直飞
	TargetID  ecs.EntityID
	HasTarget bool

	Speed float64 // 飞行速度（像素/秒）

	// 穿透记账
	// PiercingCount 为首个目标之外还可伤害的敌人数；
	// PiercedEnemies 记录已命中的敌人身份，上限 PiercingCount+1
	PiercingCount  int
	PiercedEnemies map[ecs.EntityID]struct{}

	Seeking         bool    // 是否追踪目标
	SeekingStrength float64 // 每帧向目标航向插值的系数（0-1）

	TimeAlive   float64 // 存活时间（毫秒）
	MaxLifetime float64 // 最大存活时间（毫秒），超时无条件回收

	// HasCollided 防止同一解析批次内的第二次命中申报
	// （非穿透语义；穿透子弹改由 PiercedEnemies 判重）
	HasCollided bool

	PendingReturn bool // 已被标记回收，等待回收阶段归还池
	FromPool      bool // 是否来自预分配池（false 表示溢出分配）
}

// ResetTransient 清除槽位的全部瞬态状态
// Acquire 发放前和 Release 归还时都会调用，保证复用的槽位不携带上一次飞行的痕迹
func (p *ProjectileComponent) ResetTransient() {
	p.Damage = 0
	p.TargetID = 0
	p.HasTarget = false
	p.Speed = 0
	p.PiercingCount = 0
	p.PiercedEnemies = make(map[ecs.EntityID]struct{})
	p.Seeking = false
	p.SeekingStrength = 0
	p.TimeAlive = 0
	p.MaxLifetime = 0
	p.HasCollided = false
	p.PendingReturn = false
}
