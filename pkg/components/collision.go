package components

// CollisionComponent 定义实体的碰撞检测边界框
// 用于碰撞系统的粗筛阶段（子弹与敌人的AABB重叠检测）
type CollisionComponent struct {
	Width  float64 // 碰撞盒宽度（像素）
	Height float64 // 碰撞盒高度（像素）
}
