// Package types 定义共享的基础类型
package types

// EnemyType 定义敌人的类型
// 枚举顺序即解锁顺序：越靠后的类型解锁等级越高
type EnemyType int

const (
	// EnemyUnknown 未知敌人类型
	EnemyUnknown EnemyType = iota

	// EnemyBasic 基础敌人（1级解锁）
	EnemyBasic
	// EnemyFast 快速敌人（3级解锁）
	EnemyFast
	// EnemyTank 重甲敌人（5级解锁）
	EnemyTank
	// EnemySpiral 螺旋敌人（8级解锁）
	EnemySpiral
	// EnemyHunter 猎手敌人（12级解锁）
	EnemyHunter
)

// AllEnemyTypes 按解锁等级排序的全部敌人类型
// 生成系统依赖该顺序："特殊"替换总是选取已解锁列表中的最后一个
var AllEnemyTypes = []EnemyType{
	EnemyBasic,
	EnemyFast,
	EnemyTank,
	EnemySpiral,
	EnemyHunter,
}

// enemyTypeStringMap 敌人类型到配置字符串的映射
var enemyTypeStringMap = map[EnemyType]string{
	EnemyBasic:  "basic",
	EnemyFast:   "fast",
	EnemyTank:   "tank",
	EnemySpiral: "spiral",
	EnemyHunter: "hunter",
}

// enemyTypeUnlockLevelMap 敌人类型到解锁等级的映射
var enemyTypeUnlockLevelMap = map[EnemyType]int{
	EnemyBasic:  1,
	EnemyFast:   3,
	EnemyTank:   5,
	EnemySpiral: 8,
	EnemyHunter: 12,
}

// stringToEnemyTypeMap 配置字符串到敌人类型的反向映射
var stringToEnemyTypeMap map[string]EnemyType

func init() {
	stringToEnemyTypeMap = make(map[string]EnemyType)
	for et, s := range enemyTypeStringMap {
		stringToEnemyTypeMap[s] = et
	}
	// 别名映射（处理历史命名不一致）
	stringToEnemyTypeMap["normal"] = EnemyBasic
	stringToEnemyTypeMap["speedy"] = EnemyFast
	stringToEnemyTypeMap["heavy"] = EnemyTank
}

// String 返回敌人类型的配置字符串表示（用于配置文件匹配）
func (e EnemyType) String() string {
	if s, ok := enemyTypeStringMap[e]; ok {
		return s
	}
	return "unknown"
}

// UnlockLevel 返回敌人类型的解锁等级
// 未知类型返回 1（视同基础敌人）
func (e EnemyType) UnlockLevel() int {
	if lvl, ok := enemyTypeUnlockLevelMap[e]; ok {
		return lvl
	}
	return 1
}

// EnemyTypeFromString 将配置字符串转换为 EnemyType
// 未知字符串回退为 EnemyBasic：模拟不能因为畸形的生成请求而停止，
// 宁可生成一个基础敌人也不拒绝请求
func EnemyTypeFromString(s string) EnemyType {
	if et, ok := stringToEnemyTypeMap[s]; ok {
		return et
	}
	return EnemyBasic
}

// MovementPattern 定义敌人的移动模式
type MovementPattern int

const (
	// MoveStraight 直线追击：径直朝目标移动
	MoveStraight MovementPattern = iota
	// MoveSineWave 正弦摆动：朝目标移动的同时做垂直方向的正弦振荡
	MoveSineWave
	// MoveSpiral 螺旋接近：绕目标旋转并逐渐逼近
	MoveSpiral
	// MoveHoming 激进追踪：以速度倍率直扑目标
	MoveHoming
)

// movementPatternStringMap 移动模式到配置字符串的映射
var movementPatternStringMap = map[MovementPattern]string{
	MoveStraight: "straight",
	MoveSineWave: "sine_wave",
	MoveSpiral:   "spiral",
	MoveHoming:   "homing",
}

// stringToMovementPatternMap 配置字符串到移动模式的反向映射
var stringToMovementPatternMap map[string]MovementPattern

func init() {
	stringToMovementPatternMap = make(map[string]MovementPattern)
	for mp, s := range movementPatternStringMap {
		stringToMovementPatternMap[s] = mp
	}
}

// String 返回移动模式的配置字符串表示
func (m MovementPattern) String() string {
	if s, ok := movementPatternStringMap[m]; ok {
		return s
	}
	return "straight"
}

// MovementPatternFromString 将配置字符串转换为 MovementPattern
// 未知字符串回退为 MoveStraight
func MovementPatternFromString(s string) MovementPattern {
	if mp, ok := stringToMovementPatternMap[s]; ok {
		return mp
	}
	return MoveStraight
}
