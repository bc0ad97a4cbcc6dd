package systems

import (
	"testing"

	"github.com/macsampson/keys-to-hell-sub000/pkg/components"
	"github.com/macsampson/keys-to-hell-sub000/pkg/ecs"
	"github.com/macsampson/keys-to-hell-sub000/pkg/game"
)

func newCollisionTestWorld() (*ecs.EntityManager, *game.EntityRegistry, *game.ProjectilePool, *game.CombatStats, *game.ListenerHub, *CollisionSystem) {
	em, registry, stats := newTestWorld()
	pool := game.NewProjectilePool(em, registry, stats, 8)
	listeners := game.NewListenerHub()
	system := NewCollisionSystem(em, registry, nil, listeners, stats)
	return em, registry, pool, stats, listeners, system
}

// TestResolvePairDamagesEnemy 测试命中扣血
func TestResolvePairDamagesEnemy(t *testing.T) {
	em, registry, pool, _, _, system := newCollisionTestWorld()

	enemy := spawnTestEnemy(t, em, registry, 100, 100, 30)
	proj := pool.Acquire(100, 100, 10, 0, 0, false, 0)

	if !system.ResolvePair(proj, enemy) {
		t.Fatal("有效配对应被接受")
	}

	health, _ := ecs.GetComponent[*components.HealthComponent](em, enemy)
	if health.CurrentHealth != 20 {
		t.Errorf("命中后生命值应为20, got %d", health.CurrentHealth)
	}
	if !registry.ContainsEnemy(enemy) {
		t.Error("未死亡的敌人应仍在注册表中")
	}
}

// TestNonPiercingHitsExactlyOnce 测试非穿透子弹同批次内只命中一次
func TestNonPiercingHitsExactlyOnce(t *testing.T) {
	em, registry, pool, _, _, system := newCollisionTestWorld()

	// 两个重叠的敌人，粗筛会为同一子弹报告两个配对
	a := spawnTestEnemy(t, em, registry, 100, 100, 30)
	b := spawnTestEnemy(t, em, registry, 102, 100, 30)
	proj := pool.Acquire(100, 100, 10, 0, 0, false, 0)

	if !system.ResolvePair(proj, a) {
		t.Fatal("第一个配对应被接受")
	}
	if system.ResolvePair(proj, b) {
		t.Error("非穿透子弹的第二个配对应被拒绝")
	}

	healthB, _ := ecs.GetComponent[*components.HealthComponent](em, b)
	if healthB.CurrentHealth != 30 {
		t.Errorf("第二个敌人不应受伤, got %d", healthB.CurrentHealth)
	}

	projComp, _ := ecs.GetComponent[*components.ProjectileComponent](em, proj)
	if !projComp.PendingReturn {
		t.Error("穿透额度用尽的子弹应标记回收")
	}
}

// TestPiercingHitsDistinctEnemies 测试穿透子弹命中 N+1 个不同敌人后退役
func TestPiercingHitsDistinctEnemies(t *testing.T) {
	em, registry, pool, _, _, system := newCollisionTestWorld()

	a := spawnTestEnemy(t, em, registry, 100, 100, 100)
	b := spawnTestEnemy(t, em, registry, 110, 100, 100)
	c := spawnTestEnemy(t, em, registry, 120, 100, 100)
	proj := pool.Acquire(100, 100, 10, 0, 2, false, 0) // 穿透2 → 最多3个敌人

	projComp, _ := ecs.GetComponent[*components.ProjectileComponent](em, proj)

	if !system.ResolvePair(proj, a) {
		t.Fatal("第1个敌人应被命中")
	}
	if projComp.PendingReturn {
		t.Error("穿透额度未用尽不应标记回收")
	}

	if !system.ResolvePair(proj, b) {
		t.Fatal("第2个敌人应被命中")
	}
	if !system.ResolvePair(proj, c) {
		t.Fatal("第3个敌人应被命中")
	}
	if !projComp.PendingReturn {
		t.Error("命中第3个敌人后穿透额度用尽，应标记回收")
	}

	for i, id := range []ecs.EntityID{a, b, c} {
		health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
		if health.CurrentHealth != 90 {
			t.Errorf("第%d个敌人应受10点伤害, got 生命值%d", i+1, health.CurrentHealth)
		}
	}
}

// TestPiercingBudgetExhaustedRejectsFurtherPairs 测试穿透额度用尽后
// 同一解析批次内的后续配对被拒绝
func TestPiercingBudgetExhaustedRejectsFurtherPairs(t *testing.T) {
	em, registry, pool, _, _, system := newCollisionTestWorld()

	// 四个重叠的敌人，粗筛会为同一子弹报告四个配对
	a := spawnTestEnemy(t, em, registry, 100, 100, 100)
	b := spawnTestEnemy(t, em, registry, 105, 100, 100)
	c := spawnTestEnemy(t, em, registry, 110, 100, 100)
	d := spawnTestEnemy(t, em, registry, 115, 100, 100)
	proj := pool.Acquire(100, 100, 10, 0, 2, false, 0) // 穿透2 → 最多3个敌人

	system.ResolvePair(proj, a)
	system.ResolvePair(proj, b)
	system.ResolvePair(proj, c)

	if system.ResolvePair(proj, d) {
		t.Error("穿透额度用尽后第4个配对应被拒绝")
	}

	healthD, _ := ecs.GetComponent[*components.HealthComponent](em, d)
	if healthD.CurrentHealth != 100 {
		t.Errorf("第4个敌人不应受伤, got 生命值%d", healthD.CurrentHealth)
	}

	// 穿透集合的上限是 PiercingCount+1
	projComp, _ := ecs.GetComponent[*components.ProjectileComponent](em, proj)
	if len(projComp.PiercedEnemies) != 3 {
		t.Errorf("穿透集合不应超出上限3, got %d", len(projComp.PiercedEnemies))
	}
}

// TestExpiredProjectileCannotHitSameTick 测试已标记超时回收的子弹
// 在同帧的碰撞解析中不再命中
func TestExpiredProjectileCannotHitSameTick(t *testing.T) {
	em, registry, pool, _, _, system := newCollisionTestWorld()

	enemy := spawnTestEnemy(t, em, registry, 100, 100, 30)
	proj := pool.Acquire(100, 100, 10, 0, 0, false, 0)

	// 子弹系统在本帧先把超时子弹标记为回收
	projComp, _ := ecs.GetComponent[*components.ProjectileComponent](em, proj)
	projComp.PendingReturn = true

	if system.ResolvePair(proj, enemy) {
		t.Error("已标记回收的子弹的配对应被拒绝")
	}

	health, _ := ecs.GetComponent[*components.HealthComponent](em, enemy)
	if health.CurrentHealth != 30 {
		t.Errorf("已标记回收的子弹不应造成伤害, got %d", health.CurrentHealth)
	}
}

// TestPiercingRejectsDuplicateEnemy 测试穿透子弹对同一敌人只命中一次
func TestPiercingRejectsDuplicateEnemy(t *testing.T) {
	em, registry, pool, _, _, system := newCollisionTestWorld()

	a := spawnTestEnemy(t, em, registry, 100, 100, 100)
	proj := pool.Acquire(100, 100, 10, 0, 2, false, 0)

	system.ResolvePair(proj, a)
	if system.ResolvePair(proj, a) {
		t.Error("同一敌人的重复配对应被拒绝")
	}

	health, _ := ecs.GetComponent[*components.HealthComponent](em, a)
	if health.CurrentHealth != 90 {
		t.Errorf("重复配对不应重复扣血, got %d", health.CurrentHealth)
	}

	// 重复配对不消耗穿透额度
	projComp, _ := ecs.GetComponent[*components.ProjectileComponent](em, proj)
	if len(projComp.PiercedEnemies) != 1 {
		t.Errorf("穿透集合应只有1条记录, got %d", len(projComp.PiercedEnemies))
	}
}

// TestInactiveSlotRejected 测试未发放的池槽位不会命中
func TestInactiveSlotRejected(t *testing.T) {
	em, registry, pool, _, _, system := newCollisionTestWorld()

	enemy := spawnTestEnemy(t, em, registry, 100, 100, 30)

	// 发放后立即回收，槽位回到空闲状态
	proj := pool.Acquire(100, 100, 10, 0, 0, false, 0)
	pool.Release(proj)

	if system.ResolvePair(proj, enemy) {
		t.Error("空闲槽位的配对应被拒绝")
	}

	health, _ := ecs.GetComponent[*components.HealthComponent](em, enemy)
	if health.CurrentHealth != 30 {
		t.Errorf("空闲槽位不应造成伤害, got %d", health.CurrentHealth)
	}
}

// TestStaleEnemyPairRejected 测试已注销敌人的过期配对被拒绝
func TestStaleEnemyPairRejected(t *testing.T) {
	em, registry, pool, _, _, system := newCollisionTestWorld()

	enemy := spawnTestEnemy(t, em, registry, 100, 100, 30)
	proj := pool.Acquire(100, 100, 10, 0, 0, false, 0)

	// 敌人已在本帧被其他子弹击杀并注销
	registry.RemoveEnemy(enemy)

	if system.ResolvePair(proj, enemy) {
		t.Error("已注销敌人的配对应被拒绝")
	}
}

// TestKillEnemyFlow 测试致死命中的完整流程
func TestKillEnemyFlow(t *testing.T) {
	em, registry, pool, stats, listeners, system := newCollisionTestWorld()

	recorder := &recordingCollisionListener{}
	listeners.Add(recorder)

	enemy := spawnTestEnemy(t, em, registry, 100, 100, 30)
	proj := pool.Acquire(100, 100, 50, 0, 0, false, 0) // 伤害50 > 生命30

	if !system.ResolvePair(proj, enemy) {
		t.Fatal("致死配对应被接受")
	}

	if registry.ContainsEnemy(enemy) {
		t.Error("被击杀的敌人应从注册表注销")
	}
	em.RemoveMarkedEntities()
	if em.IsAlive(enemy) {
		t.Error("被击杀的敌人实体应已删除")
	}

	if stats.EnemiesKilled != 1 {
		t.Errorf("击杀计数应为1, got %d", stats.EnemiesKilled)
	}
	if stats.ExperienceCollected != 10 {
		t.Errorf("经验计数应为10, got %d", stats.ExperienceCollected)
	}

	if recorder.kills != 1 || recorder.experience != 10 {
		t.Errorf("击杀事件错误: kills=%d experience=%d", recorder.kills, recorder.experience)
	}
	if recorder.effects != 1 {
		t.Errorf("死亡特效事件数应为1, got %d", recorder.effects)
	}
	if recorder.hits != 1 {
		t.Errorf("命中事件数应为1, got %d", recorder.hits)
	}
	if recorder.killX != 100 || recorder.killY != 100 {
		t.Errorf("击杀事件位置应为死亡位置(100,100), got (%f, %f)", recorder.killX, recorder.killY)
	}
}

// TestBroadPhaseUpdateEndToEnd 测试粗筛+解析的完整一帧
func TestBroadPhaseUpdateEndToEnd(t *testing.T) {
	em, registry, pool, _, _, system := newCollisionTestWorld()

	hit := spawnTestEnemy(t, em, registry, 100, 100, 30)
	miss := spawnTestEnemy(t, em, registry, 500, 500, 30)
	pool.Acquire(100, 100, 10, 0, 0, false, 0)

	system.Update(16)

	hitHealth, _ := ecs.GetComponent[*components.HealthComponent](em, hit)
	if hitHealth.CurrentHealth != 20 {
		t.Errorf("重叠的敌人应受伤, got %d", hitHealth.CurrentHealth)
	}
	missHealth, _ := ecs.GetComponent[*components.HealthComponent](em, miss)
	if missHealth.CurrentHealth != 30 {
		t.Errorf("远处的敌人不应受伤, got %d", missHealth.CurrentHealth)
	}
}

// TestParkedSlotsNeverCollide 测试停放在场景外的空闲槽位不参与碰撞
func TestParkedSlotsNeverCollide(t *testing.T) {
	em, registry, _, _, _, system := newCollisionTestWorld()

	// 敌人故意放在停放点：空闲槽位与它在空间上重叠
	enemy := spawnTestEnemy(t, em, registry, -10000, -10000, 30)

	system.Update(16)

	health, _ := ecs.GetComponent[*components.HealthComponent](em, enemy)
	if health.CurrentHealth != 30 {
		t.Errorf("空闲槽位不应命中任何敌人, got %d", health.CurrentHealth)
	}
}

// recordingCollisionListener 测试用监听器
type recordingCollisionListener struct {
	kills      int
	experience int
	effects    int
	hits       int
	killX      float64
	killY      float64
}

func (l *recordingCollisionListener) EnemyKilled(experienceValue int, x, y float64) {
	l.kills++
	l.experience += experienceValue
	l.killX, l.killY = x, y
}

func (l *recordingCollisionListener) EnemyDeathEffect(x, y float64) {
	l.effects++
}

func (l *recordingCollisionListener) ProjectileHit(x, y float64) {
	l.hits++
}
