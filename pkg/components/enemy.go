package components

import "github.com/macsampson/keys-to-hell-sub000/pkg/types"

// EnemyComponent 存储敌人的战斗属性和移动状态
//
// 敌人类型在生成时一次性解析为封闭枚举并查表得到属性，
// 之后每帧只读这些已解析的数值，不再按字符串分发
type EnemyComponent struct {
	Type            types.EnemyType       // 敌人类型（生成时解析，之后不变）
	Pattern         types.MovementPattern // 移动模式
	Damage          int                   // 接触伤害
	ExperienceValue int                   // 击杀获得的经验值
	Speed           float64               // 基础移动速度（像素/秒）
	TargetX         float64               // 追击目标X（通常为玩家位置）
	TargetY         float64               // 追击目标Y
	TimeAlive       float64               // 存活时间（毫秒，单调递增）
}
