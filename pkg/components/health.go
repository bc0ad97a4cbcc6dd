package components

// HealthComponent 存储实体的生命值信息
// 用于敌人等可被攻击的实体；CurrentHealth 始终被钳制在 [0, MaxHealth]
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}

// ApplyDamage 扣除伤害并把生命值钳制在 0
//
// 返回:
//   - bool: 扣除后生命值是否归零（即实体死亡）
func (h *HealthComponent) ApplyDamage(damage int) bool {
	h.CurrentHealth -= damage
	if h.CurrentHealth < 0 {
		h.CurrentHealth = 0
	}
	return h.CurrentHealth <= 0
}
