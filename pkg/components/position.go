package components

// PositionComponent 存储实体的世界坐标位置
type PositionComponent struct {
	X float64 // 世界坐标X（像素）
	Y float64 // 世界坐标Y（像素）
}
