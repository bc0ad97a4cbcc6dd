package game

// CombatStats 一局模拟的运行计数器
//
// 核心自身不做任何指标上报，只维护计数；
// 上层（HUD、验证工具）按需读取。PoolOverflows 是子弹池的容量压力信号
type CombatStats struct {
	EnemiesSpawned      int // 生成的敌人总数（含直接 SpawnEnemy 调用）
	EnemiesKilled       int // 被击杀的敌人总数
	EnemiesDespawned    int // 因越界被销毁的敌人总数
	ProjectilesFired    int // 发射的子弹总数
	ProjectilesExpired  int // 因超时/越界回收的子弹总数
	PoolOverflows       int // 池耗尽导致的溢出分配次数
	ExperienceCollected int // 累计获得的经验值
}

// Reset 清零全部计数器
func (s *CombatStats) Reset() {
	*s = CombatStats{}
}
