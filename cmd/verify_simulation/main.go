// 模拟核心的无头验证工具
//
// 不启动窗口，直接以固定步长推进模拟并打印关键阶段的状态，
// 用于快速验证生成节奏、目标选择、穿透和池回收的行为。
//
// 用法:
//
//	go run ./cmd/verify_simulation -seconds 30 -level 5 -verbose
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/macsampson/keys-to-hell-sub000/pkg/config"
	"github.com/macsampson/keys-to-hell-sub000/pkg/simulation"
)

var (
	seconds = flag.Int("seconds", 30, "模拟时长（秒）")
	level   = flag.Int("level", 1, "玩家等级")
	verbose = flag.Bool("verbose", false, "显示每秒状态")
)

// 验证用的攻击参数
const (
	fireIntervalMs = 400
	fireDamage     = 15
	firePiercing   = 1
)

// verifyListener 统计事件回调次数
type verifyListener struct {
	kills int
	hits  int
}

func (l *verifyListener) EnemyKilled(experienceValue int, x, y float64) { l.kills++ }
func (l *verifyListener) EnemyDeathEffect(x, y float64)                 {}
func (l *verifyListener) ProjectileHit(x, y float64)                    { l.hits++ }

func main() {
	flag.Parse()
	// 非详细模式下静默系统日志，只保留结果输出
	if !*verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sim := simulation.New(nil)
	listener := &verifyListener{}
	sim.AddListener(listener)

	sim.SetPlayerLevel(*level)

	// 玩家固定在场地中心
	playerX := config.PlayfieldWidth / 2.0
	playerY := config.PlayfieldHeight / 2.0
	sim.SetPlayerPosition(playerX, playerY)

	const deltaMs = 1000.0 / 60.0
	totalFrames := *seconds * 60

	var nowMs, lastFireMs float64
	for frame := 0; frame < totalFrames; frame++ {
		nowMs += deltaMs

		// 周期性朝优先目标发射追踪弹
		if nowMs-lastFireMs >= fireIntervalMs {
			if target, ok := sim.CombatPriorityTarget(playerX, playerY); ok {
				sim.CreateProjectile(playerX, playerY, fireDamage, target, firePiercing, true, 0.3)
				lastFireMs = nowMs
			}
		}

		sim.Tick(nowMs, deltaMs)

		if *verbose && frame%60 == 59 {
			fmt.Printf("[%3.0fs] 敌人 %2d | 子弹 %2d | 击杀 %3d | 池空闲 %3d\n",
				nowMs/1000, sim.Registry().EnemyCount(), sim.Registry().ProjectileCount(),
				listener.kills, sim.Pool().FreeCount())
		}
	}

	stats := sim.Stats()
	fmt.Println("==== 模拟结束 ====")
	fmt.Printf("时长:       %d 秒（等级 %d）\n", *seconds, *level)
	fmt.Printf("生成敌人:   %d\n", stats.EnemiesSpawned)
	fmt.Printf("击杀:       %d（事件回调 %d 次）\n", stats.EnemiesKilled, listener.kills)
	fmt.Printf("越界销毁:   %d\n", stats.EnemiesDespawned)
	fmt.Printf("发射子弹:   %d（命中 %d 次，过期 %d 发）\n", stats.ProjectilesFired, listener.hits, stats.ProjectilesExpired)
	fmt.Printf("获得经验:   %d\n", stats.ExperienceCollected)
	fmt.Printf("池溢出:     %d 次\n", stats.PoolOverflows)

	ok := true

	// 守恒检查：生成 = 击杀 + 越界 + 场上存量
	remaining := sim.Registry().EnemyCount()
	if stats.EnemiesSpawned != stats.EnemiesKilled+stats.EnemiesDespawned+remaining {
		fmt.Printf("FAIL: 敌人数量不守恒: 生成%d != 击杀%d + 越界%d + 场上%d\n",
			stats.EnemiesSpawned, stats.EnemiesKilled, stats.EnemiesDespawned, remaining)
		ok = false
	}

	// 事件回调与计数器必须一致
	if listener.kills != stats.EnemiesKilled {
		fmt.Printf("FAIL: 击杀事件回调 %d 次与计数器 %d 不一致\n", listener.kills, stats.EnemiesKilled)
		ok = false
	}

	// 清场后池必须完整回收
	sim.ClearAll()
	if free := sim.Pool().FreeCount(); free != sim.Pool().Capacity() {
		fmt.Printf("FAIL: 清场后池未完整回收: 空闲 %d / 容量 %d\n", free, sim.Pool().Capacity())
		ok = false
	}
	if sim.Registry().EnemyCount() != 0 {
		fmt.Printf("FAIL: 清场后仍有敌人: %d\n", sim.Registry().EnemyCount())
		ok = false
	}

	if !ok {
		os.Exit(1)
	}
	fmt.Println("PASS: 所有一致性检查通过")
}
