package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/macsampson/keys-to-hell-sub000/pkg/components"
	"github.com/macsampson/keys-to-hell-sub000/pkg/config"
	"github.com/macsampson/keys-to-hell-sub000/pkg/ecs"
	"github.com/macsampson/keys-to-hell-sub000/pkg/game"
	"github.com/macsampson/keys-to-hell-sub000/pkg/simulation"
)

// 自动攻击间隔（毫秒）
const fireIntervalMs = 400

// Game 演示用的 ebiten 包装器
// 模拟核心本身不依赖渲染，这里只负责驱动 Tick、转发输入和画调试图形
type Game struct {
	sim     *simulation.Simulation
	records *game.RecordManager

	nowMs        float64
	lastFireMs   float64
	playerLevel  int
	enemySprite  *ebiten.Image
	bulletSprite *ebiten.Image
	playerSprite *ebiten.Image
}

// Update 更新游戏逻辑
// 每个逻辑帧（通常每秒60次）调用一次
func (g *Game) Update() error {
	deltaMs := 1000.0 / float64(ebiten.TPS())
	g.nowMs += deltaMs

	// 玩家位置跟随鼠标
	mx, my := ebiten.CursorPosition()
	g.sim.SetPlayerPosition(float64(mx), float64(my))

	// 数字键调整难度等级
	for key := ebiten.Key1; key <= ebiten.Key9; key++ {
		if inpututil.IsKeyJustPressed(key) {
			g.playerLevel = int(key-ebiten.Key1)*2 + 1
			g.sim.SetPlayerLevel(g.playerLevel)
		}
	}

	// R 键提交本局成绩并清场重开
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		stats := g.sim.Stats()
		if updated, err := g.records.SubmitRun(stats.EnemiesKilled, stats.ExperienceCollected, g.nowMs); err != nil {
			log.Printf("[Demo] 保存成绩失败: %v", err)
		} else if updated {
			log.Printf("[Demo] 新的最佳成绩: %d 击杀", stats.EnemiesKilled)
		}
		g.sim.ClearAll()
		g.sim.Stats().Reset()
		g.nowMs = 0
		g.lastFireMs = 0
	}

	// 自动攻击：周期性朝优先目标发射追踪弹
	if g.nowMs-g.lastFireMs >= fireIntervalMs {
		if target, ok := g.sim.CombatPriorityTarget(float64(mx), float64(my)); ok {
			g.sim.CreateProjectile(float64(mx), float64(my), 15, target, 1, true, 0.25)
			g.lastFireMs = g.nowMs
		}
	}

	g.sim.Tick(g.nowMs, deltaMs)
	return nil
}

// Draw 渲染画面
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 24, B: 32, A: 255})

	em := g.sim.EntityManager()

	for _, id := range g.sim.Registry().ActiveEnemies() {
		g.drawSprite(screen, em, id, g.enemySprite)
	}
	for _, id := range g.sim.Registry().ActiveProjectiles() {
		g.drawSprite(screen, em, id, g.bulletSprite)
	}

	// 玩家
	mx, my := ebiten.CursorPosition()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(mx)-8, float64(my)-8)
	screen.DrawImage(g.playerSprite, op)

	stats := g.sim.Stats()
	debugText := fmt.Sprintf("等级 %d | 击杀 %d | 经验 %d | 场上敌人 %d | 池空闲 %d/%d",
		g.playerLevel, stats.EnemiesKilled, stats.ExperienceCollected,
		g.sim.Registry().EnemyCount(), g.sim.Pool().FreeCount(), g.sim.Pool().Capacity())
	ebitenutil.DebugPrintAt(screen, debugText, 10, 10)

	if best := g.records.Best(); best != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("最佳 %d 击杀", best.Kills), 10, 26)
	}
	ebitenutil.DebugPrintAt(screen, "1-9 调整等级 | R 重开", 10, 42)
}

// drawSprite 按实体位置绘制一个方块
func (g *Game) drawSprite(screen *ebiten.Image, em *ecs.EntityManager, id ecs.EntityID, sprite *ebiten.Image) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return
	}
	w, h := sprite.Bounds().Dx(), sprite.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(pos.X-float64(w)/2, pos.Y-float64(h)/2)
	screen.DrawImage(sprite, op)
}

// Layout 返回逻辑屏幕尺寸
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.PlayfieldWidth, config.PlayfieldHeight
}

// solidImage 创建纯色方块图片
func solidImage(w, h int, c color.Color) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	return img
}

// loadBalance 加载数值配置表；文件缺失时使用内置默认值
func loadBalance() *game.ConfigBalanceProvider {
	enemyStats, err := config.LoadEnemyStats("assets/config/enemy_stats.yaml")
	if err != nil {
		log.Printf("[Demo] 敌人属性配置加载失败，使用内置默认: %v", err)
		enemyStats = config.DefaultEnemyStats()
	}
	spawnSettings, err := config.LoadSpawnSettings("assets/config/spawn_settings.yaml")
	if err != nil {
		log.Printf("[Demo] 生成参数配置加载失败，使用内置默认: %v", err)
		spawnSettings = config.DefaultSpawnSettings()
	}
	return game.NewConfigBalanceProvider(enemyStats, spawnSettings)
}

func main() {
	// 跨平台存储；打开失败时降级为仅内存记录
	gdataManager, err := gdata.Open(gdata.Config{
		AppName: "keys-to-hell",
	})
	if err != nil {
		log.Printf("[Demo] 持久化存储不可用: %v", err)
		gdataManager = nil
	}

	sim := simulation.New(loadBalance())

	demo := &Game{
		sim:          sim,
		records:      game.NewRecordManager(gdataManager),
		playerLevel:  1,
		enemySprite:  solidImage(24, 24, color.RGBA{R: 200, G: 60, B: 60, A: 255}),
		bulletSprite: solidImage(8, 8, color.RGBA{R: 255, G: 230, B: 80, A: 255}),
		playerSprite: solidImage(16, 16, color.RGBA{R: 80, G: 200, B: 255, A: 255}),
	}

	ebiten.SetWindowSize(config.PlayfieldWidth, config.PlayfieldHeight)
	ebiten.SetWindowTitle("波次生存战斗模拟")

	if err := ebiten.RunGame(demo); err != nil {
		log.Fatal(err)
	}
}
