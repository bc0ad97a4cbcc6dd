package systems

import (
	"math"
	"testing"

	"github.com/macsampson/keys-to-hell-sub000/pkg/components"
	"github.com/macsampson/keys-to-hell-sub000/pkg/config"
	"github.com/macsampson/keys-to-hell-sub000/pkg/ecs"
	"github.com/macsampson/keys-to-hell-sub000/pkg/game"
)

func newProjectileTestWorld() (*ecs.EntityManager, *game.EntityRegistry, *game.ProjectilePool, *game.CombatStats, *ProjectileSystem) {
	em, registry, stats := newTestWorld()
	pool := game.NewProjectilePool(em, registry, stats, 8)
	system := NewProjectileSystem(em, registry, pool, stats)
	return em, registry, pool, stats, system
}

// TestProjectileFliesTowardTarget 测试非追踪子弹发射瞬间取目标方向
func TestProjectileFliesTowardTarget(t *testing.T) {
	em, registry, pool, _, system := newProjectileTestWorld()

	enemy := spawnTestEnemy(t, em, registry, 500, 100, 30)
	id := pool.Acquire(100, 100, 10, enemy, 0, false, 0)

	system.Update(100) // 0.1秒，速度400 → 前进40像素

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if math.Abs(pos.X-140) > 1e-9 || math.Abs(pos.Y-100) > 1e-9 {
		t.Errorf("子弹应朝目标方向前进40像素, got (%f, %f)", pos.X, pos.Y)
	}
}

// TestNonSeekingKeepsInitialHeading 测试非追踪子弹不跟随目标移动
func TestNonSeekingKeepsInitialHeading(t *testing.T) {
	em, registry, pool, _, system := newProjectileTestWorld()

	enemy := spawnTestEnemy(t, em, registry, 500, 100, 30)
	id := pool.Acquire(100, 100, 10, enemy, 0, false, 0)

	system.Update(50)

	// 目标移动到正下方，非追踪子弹不应转向
	enemyPos, _ := ecs.GetComponent[*components.PositionComponent](em, enemy)
	enemyPos.X = 100
	enemyPos.Y = 600

	system.Update(50)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	if vel.VY != 0 {
		t.Errorf("非追踪子弹不应转向, got VY=%f", vel.VY)
	}
	if vel.VX <= 0 {
		t.Errorf("子弹应保持初始航向, got VX=%f", vel.VX)
	}
}

// TestSeekingTurnsTowardTarget 测试追踪子弹逐帧向目标转向且速度大小不变
func TestSeekingTurnsTowardTarget(t *testing.T) {
	em, registry, pool, _, system := newProjectileTestWorld()

	enemy := spawnTestEnemy(t, em, registry, 500, 100, 30)
	id := pool.Acquire(100, 100, 10, enemy, 0, true, 0.3)

	system.Update(50) // 航向初始化为朝目标（正右方）

	// 目标跳到侧面
	enemyPos, _ := ecs.GetComponent[*components.PositionComponent](em, enemy)
	enemyPos.X = 120
	enemyPos.Y = 600

	system.Update(50)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	if vel.VY <= 0 {
		t.Errorf("追踪子弹应开始向下转向, got VY=%f", vel.VY)
	}
	if vel.VX <= 0 {
		t.Errorf("插值转向不应瞬间掉头, got VX=%f", vel.VX)
	}

	// 速度大小保持为 Speed
	speed := math.Hypot(vel.VX, vel.VY)
	if math.Abs(speed-config.ProjectileDefaultSpeed) > 1e-6 {
		t.Errorf("追踪转向应保持速度大小不变: got %f, want %f", speed, config.ProjectileDefaultSpeed)
	}
}

// TestSeekingStrengthOneSnapsToTarget 测试强度为1时单帧对准目标
func TestSeekingStrengthOneSnapsToTarget(t *testing.T) {
	em, registry, pool, _, system := newProjectileTestWorld()

	enemy := spawnTestEnemy(t, em, registry, 500, 100, 30)
	id := pool.Acquire(100, 100, 10, enemy, 0, true, 1.0)

	system.Update(50) // 前进到 (120, 100)

	// 目标跳到子弹正下方
	enemyPos, _ := ecs.GetComponent[*components.PositionComponent](em, enemy)
	enemyPos.X = 120
	enemyPos.Y = 600

	system.Update(50)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	// 完全插值后航向应正对目标（正下方）
	if math.Abs(vel.VX) > 1e-6 || vel.VY <= 0 {
		t.Errorf("强度1时应单帧对准目标, got (%f, %f)", vel.VX, vel.VY)
	}
}

// TestVanishedTargetFliesStraight 测试目标消失后子弹沿最后航向直飞
func TestVanishedTargetFliesStraight(t *testing.T) {
	em, registry, pool, _, system := newProjectileTestWorld()

	enemy := spawnTestEnemy(t, em, registry, 500, 100, 30)
	id := pool.Acquire(100, 100, 10, enemy, 0, true, 0.5)

	system.Update(50) // 建立航向

	// 目标被销毁
	registry.RemoveEnemy(enemy)
	em.DestroyEntity(enemy)
	em.RemoveMarkedEntities()

	system.Update(50)

	proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
	if proj.HasTarget || proj.TargetID != 0 {
		t.Error("目标消失后弱引用句柄应被清除")
	}

	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	if vel.VX <= 0 || math.Abs(vel.VY) > 1e-6 {
		t.Errorf("失去目标后应沿最后航向直飞, got (%f, %f)", vel.VX, vel.VY)
	}
	if proj.PendingReturn {
		t.Error("失去目标不应标记回收")
	}
}

// TestProjectileLifetimeExpiry 测试超时子弹标记回收并归还池
func TestProjectileLifetimeExpiry(t *testing.T) {
	em, _, pool, stats, system := newProjectileTestWorld()

	id := pool.Acquire(400, 300, 10, 0, 0, false, 0)

	// 无目标无航向的子弹原地悬停，只会因超时过期
	system.Update(config.ProjectileDefaultLifetime + 1)

	proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
	if !proj.PendingReturn {
		t.Fatal("超时子弹应标记回收")
	}
	if stats.ProjectilesExpired != 1 {
		t.Errorf("过期计数应为1, got %d", stats.ProjectilesExpired)
	}

	system.ReclaimPending()

	if proj.Active {
		t.Error("回收阶段后槽位应已归还池")
	}
	if pool.FreeCount() != pool.Capacity() {
		t.Errorf("回收后全部槽位应空闲, got %d", pool.FreeCount())
	}
}

// TestProjectileOutOfBoundsExpiry 测试越界子弹标记回收
func TestProjectileOutOfBoundsExpiry(t *testing.T) {
	em, registry, pool, stats, system := newProjectileTestWorld()

	// 朝左边界外的目标发射
	enemy := spawnTestEnemy(t, em, registry, -400, 300, 30)
	id := pool.Acquire(10, 300, 10, enemy, 0, false, 0)

	// 速度400像素/秒，约0.2秒飞出左边界50像素的裕量
	for i := 0; i < 30; i++ {
		system.Update(16)
	}

	proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
	if !proj.PendingReturn {
		t.Error("越界子弹应标记回收")
	}
	if stats.ProjectilesExpired != 1 {
		t.Errorf("过期计数应为1, got %d", stats.ProjectilesExpired)
	}
}

// TestExpiryCountedOnce 测试同一子弹的过期只计数一次
func TestExpiryCountedOnce(t *testing.T) {
	_, _, pool, stats, system := newProjectileTestWorld()

	pool.Acquire(400, 300, 10, 0, 0, false, 0)

	system.Update(config.ProjectileDefaultLifetime + 1)
	system.Update(16) // 回收前又跑了一帧

	if stats.ProjectilesExpired != 1 {
		t.Errorf("重复标记不应重复计数, got %d", stats.ProjectilesExpired)
	}
}
