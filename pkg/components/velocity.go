package components

// VelocityComponent 存储实体的速度向量
// 移动系统每帧根据移动模式重新计算，不做刚体积分
type VelocityComponent struct {
	VX float64 // X方向速度（像素/秒）
	VY float64 // Y方向速度（像素/秒）
}
