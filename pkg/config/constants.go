package config

// 游戏场地与模拟核心的可调常量
//
// 屏外过期边距是策略值而非硬性规则：只要求实体在离开可见区域
// 足够远之后才过期，具体像素数可按平台调整

const (
	// PlayfieldWidth 场地逻辑宽度（像素）
	PlayfieldWidth = 800.0

	// PlayfieldHeight 场地逻辑高度（像素）
	PlayfieldHeight = 600.0

	// EnemyDespawnMargin 敌人离开场地多远后销毁（像素）
	EnemyDespawnMargin = 100.0

	// ProjectileBoundsMargin 子弹离开场地多远后回收（像素）
	ProjectileBoundsMargin = 50.0

	// ProjectilePoolCapacity 子弹池的预分配容量
	// 攻击间隔 50-1000ms、单次最多9发的射速下，100 个槽位足以覆盖
	// 正常负载；耗尽时允许溢出分配并计数
	ProjectilePoolCapacity = 100

	// ProjectileParkX 空闲槽位的停放X坐标（远离场景，避免参与任何检测）
	ProjectileParkX = -10000.0

	// ProjectileParkY 空闲槽位的停放Y坐标
	ProjectileParkY = -10000.0

	// ProjectileDefaultLifetime 子弹默认最大存活时间（毫秒）
	ProjectileDefaultLifetime = 5000.0

	// ProjectileDefaultSpeed 子弹默认飞行速度（像素/秒）
	ProjectileDefaultSpeed = 400.0

	// ProjectileHitboxSize 子弹碰撞盒边长（像素）
	ProjectileHitboxSize = 12.0

	// EnemyHitboxWidth 敌人碰撞盒宽度（像素）
	EnemyHitboxWidth = 40.0

	// EnemyHitboxHeight 敌人碰撞盒高度（像素）
	EnemyHitboxHeight = 40.0

	// DefaultSpawnIntervalMs 默认敌人生成间隔（毫秒）
	DefaultSpawnIntervalMs = 2000.0

	// DefaultMaxEnemies 默认场上敌人数量上限
	DefaultMaxEnemies = 20

	// SineWaveFrequency 正弦摆动模式的振荡频率（弧度/秒）
	SineWaveFrequency = 4.0

	// SineWaveAmplitude 正弦摆动模式的横向速度幅值（占基础速度的比例）
	SineWaveAmplitude = 0.6

	// SpiralAngularSpeed 螺旋模式的角速度（弧度/秒）
	SpiralAngularSpeed = 2.0

	// SpiralApproachRatio 螺旋模式中径向逼近速度占基础速度的比例
	SpiralApproachRatio = 0.45

	// HomingSpeedMultiplier 激进追踪模式的速度倍率
	HomingSpeedMultiplier = 1.5
)
