package game

// CombatListener 战斗核心对外发布事件的协作方接口
//
// 进度系统、音效、粒子特效等都通过该接口接收通知。
// 所有回调都是即发即弃：无返回值、不允许阻塞模拟帧，
// 监听方失败只能自行消化，不会传播回核心
type CombatListener interface {
	// EnemyKilled 敌人被击杀（经验值与死亡位置）
	EnemyKilled(experienceValue int, x, y float64)

	// EnemyDeathEffect 敌人死亡的视觉/音效副通道
	EnemyDeathEffect(x, y float64)

	// ProjectileHit 子弹命中（命中位置）
	ProjectileHit(x, y float64)
}

// ListenerHub 监听器集合，把事件扇出给全部已注册的协作方
type ListenerHub struct {
	listeners []CombatListener
}

// NewListenerHub 创建空的监听器集合
func NewListenerHub() *ListenerHub {
	return &ListenerHub{}
}

// Add 注册一个监听器；nil 会被忽略
func (h *ListenerHub) Add(l CombatListener) {
	if l == nil {
		return
	}
	h.listeners = append(h.listeners, l)
}

// EnemyKilled 扇出敌人击杀事件
func (h *ListenerHub) EnemyKilled(experienceValue int, x, y float64) {
	for _, l := range h.listeners {
		l.EnemyKilled(experienceValue, x, y)
	}
}

// EnemyDeathEffect 扇出死亡特效事件
func (h *ListenerHub) EnemyDeathEffect(x, y float64) {
	for _, l := range h.listeners {
		l.EnemyDeathEffect(x, y)
	}
}

// ProjectileHit 扇出子弹命中事件
func (h *ListenerHub) ProjectileHit(x, y float64) {
	for _, l := range h.listeners {
		l.ProjectileHit(x, y)
	}
}
